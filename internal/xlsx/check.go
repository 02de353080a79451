// Package xlsx pre-validates workbooks before they go over the wire, so a
// mis-assembled file fails fast instead of after an upload round trip.
package xlsx

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetMissing marks a multi-sheet workbook that lacks the named sheet.
var ErrSheetMissing = errors.New("required sheet missing")

// ErrNotWorkbook marks a file that could not be opened as an xlsx workbook.
var ErrNotWorkbook = errors.New("not a readable workbook")

// Sheets returns the sheet names of the workbook at path.
func Sheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}
	defer f.Close() //nolint:errcheck // read-only open

	return f.GetSheetList(), nil
}

// RequireSheet checks that the workbook at path carries the sheet the
// import endpoint expects. A single-sheet workbook passes regardless of its
// sheet's name; when several sheets are present the named one must exist,
// because the importer cannot guess which sheet was meant.
func RequireSheet(path, name string) error {
	sheets, err := Sheets(path)
	if err != nil {
		return err
	}
	if len(sheets) <= 1 {
		return nil
	}
	for _, s := range sheets {
		if s == name {
			return nil
		}
	}
	return fmt.Errorf("%w: workbook has %d sheets and none is named %q", ErrSheetMissing, len(sheets), name)
}
