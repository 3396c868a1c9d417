package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/agenthands/tagtally/internal/core/model"
)

const (
	FileName    = "tag_counts.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName   = "Tag Counts"
)

// ExportError means the spreadsheet could not be produced. The counts
// themselves are unaffected.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export spreadsheet: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// WriteTable renders counts as a two-column fixed-width table.
func WriteTable(w io.Writer, counts []model.TagCount) error {
	tagWidth := utf8.RuneCountInString("Tag")
	countWidth := utf8.RuneCountInString("Count")
	for _, c := range counts {
		tagWidth = max(tagWidth, utf8.RuneCountInString(c.Tag))
		countWidth = max(countWidth, len(strconv.Itoa(c.Count)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %*s\n", tagWidth, "Tag", countWidth, "Count")
	fmt.Fprintf(&b, "%s  %s\n", strings.Repeat("-", tagWidth), strings.Repeat("-", countWidth))
	for _, c := range counts {
		fmt.Fprintf(&b, "%-*s  %*d\n", tagWidth, c.Tag, countWidth, c.Count)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteXLSX writes counts as a single-sheet workbook with a Tag/Count header.
// Tags are stored as text so values like "0012" keep their leading zeros. A
// tag the cell cannot hold verbatim fails the export instead of being altered.
func WriteXLSX(w io.Writer, counts []model.TagCount) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return &ExportError{Err: err}
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"Tag", "Count"}); err != nil {
		return &ExportError{Err: err}
	}
	for i, c := range counts {
		row := i + 2
		if err := checkTag(c.Tag); err != nil {
			return &ExportError{Err: err}
		}
		if err := f.SetCellStr(SheetName, cell("A", row), c.Tag); err != nil {
			return &ExportError{Err: err}
		}
		if err := f.SetCellInt(SheetName, cell("B", row), c.Count); err != nil {
			return &ExportError{Err: err}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return &ExportError{Err: err}
	}

	if _, err := f.WriteTo(w); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

// checkTag rejects tags excelize would silently truncate or rewrite: text
// over the cell limit, invalid UTF-8 and characters XML 1.0 cannot carry.
func checkTag(tag string) error {
	if n := utf8.RuneCountInString(tag); n > excelize.TotalCellChars {
		return fmt.Errorf("tag is %d characters long (cell limit %d)", n, excelize.TotalCellChars)
	}
	if !utf8.ValidString(tag) {
		return fmt.Errorf("tag %q is not valid UTF-8", tag)
	}
	for _, r := range tag {
		if !xmlChar(r) {
			return fmt.Errorf("tag %q contains character %U that a spreadsheet cell cannot hold", tag, r)
		}
	}
	return nil
}

func xmlChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}
