package xlsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates a temp xlsx with the given sheet names.
func writeWorkbook(t *testing.T, sheets ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			continue
		}
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRequireSheet_SingleSheetAnyName(t *testing.T) {
	path := writeWorkbook(t, "whatever")
	assert.NoError(t, RequireSheet(path, "invoices"))
}

func TestRequireSheet_MultiSheetNamedPresent(t *testing.T) {
	path := writeWorkbook(t, "summary", "invoices")
	assert.NoError(t, RequireSheet(path, "invoices"))
}

func TestRequireSheet_MultiSheetNamedMissing(t *testing.T) {
	path := writeWorkbook(t, "summary", "raw data")
	err := RequireSheet(path, "invoices")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetMissing)
}

func TestRequireSheet_UnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-workbook.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	err := RequireSheet(path, "invoices")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotWorkbook)
}

func TestSheets_ListsAll(t *testing.T) {
	path := writeWorkbook(t, "a", "b", "c")
	sheets, err := Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, sheets)
}
