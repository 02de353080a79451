package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squarelake/paydesk/internal/xlsx"
	"github.com/squarelake/paydesk/pkg/api"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append ascii", "ab", "c", "abc"},
		{"append wide rune", "工", "资", "工资"},
		{"backspace", "abc", "backspace", "ab"},
		{"backspace rune aware", "a资", "backspace", "a"},
		{"backspace empty", "", "backspace", ""},
		{"space", "a b", " ", "a b "},
		{"ignores control keys", "ab", "ctrl+t", "ab"},
		{"ignores esc", "ab", "esc", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editRune(tt.text, tt.key))
		})
	}
}

func TestEditRune_ClampsLength(t *testing.T) {
	long := strings.Repeat("x", maxInputLen)
	assert.Equal(t, long, editRune(long, "y"))
}

func TestTruncStr(t *testing.T) {
	assert.Equal(t, "short", truncStr("short", 10))
	assert.Equal(t, "lon…", truncStr("longer", 4))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "2450.50", formatCents(245050))
	assert.Equal(t, "0.05", formatCents(5))
	assert.Equal(t, "-12.00", formatCents(-1200))
}

func TestErrText_APIMessagesVerbatim(t *testing.T) {
	err := fmt.Errorf("api.CreateCompany: %w", &api.Error{
		Kind: api.ErrKindBadRequest, StatusCode: 400, Message: "tax number already registered",
	})
	assert.Equal(t, "tax number already registered", errText(err))
}

func TestErrText_WorkbookErrorsKeepTheirText(t *testing.T) {
	err := fmt.Errorf("%w: workbook has 3 sheets and none is named %q", xlsx.ErrSheetMissing, "employees")
	assert.Contains(t, errText(err), "required sheet missing")
}

func TestErrText_UnknownErrorsDegrade(t *testing.T) {
	assert.Equal(t, "something went wrong", errText(errors.New("panic: nil map")))
	assert.Empty(t, errText(nil))
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"2450", 245000, false},
		{"2450.50", 245050, false},
		{" 12.3 ", 1230, false},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePct(t *testing.T) {
	var v float64
	assert.NoError(t, parsePct("12.5", &v))
	assert.Equal(t, 12.5, v)
	assert.Error(t, parsePct("101", &v))
	assert.Error(t, parsePct("-1", &v))
	assert.Error(t, parsePct("pct", &v))
}
