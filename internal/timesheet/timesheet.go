// Package timesheet edits one day's row of an xlsx timesheet workbook laid
// out as one row per date: date in column A, start/break_start/break_end/end
// times in columns B–E.
package timesheet

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Field identifies one of the four time columns of a timesheet row.
type Field int

const (
	FieldStart Field = iota
	FieldBreakStart
	FieldBreakEnd
	FieldEnd
	numFields
)

var fieldNames = [numFields]string{"start", "break_start", "break_end", "end"}

func (f Field) String() string { return fieldNames[f] }

// dateColumn is the 1-based column holding the date that identifies a row.
const dateColumn = 1

// Timesheet is an opened workbook bound to a single sheet. It is owned by
// one invocation for its whole lifetime; mutations stay in memory until
// Save.
type Timesheet struct {
	path  string
	file  *excelize.File
	sheet string
	cols  [numFields]int
	dirty bool
}

// Open opens the workbook at path for editing and binds to the named
// sheet, or the active sheet when name is empty. The field→column mapping
// is fixed here for the lifetime of the Timesheet.
func Open(path, sheet string) (*Timesheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening timesheet %s: %w", path, err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("no sheet %q in %s", sheet, path)
	}
	t := &Timesheet{path: path, file: f, sheet: sheet}
	for i := range t.cols {
		t.cols[i] = dateColumn + 1 + i // B through E, in Field order
	}
	return t, nil
}

// Close releases the workbook handle without saving.
func (t *Timesheet) Close() error { return t.file.Close() }

// Path is the path the workbook was opened from.
func (t *Timesheet) Path() string { return t.path }

// Sheet is the name of the bound sheet.
func (t *Timesheet) Sheet() string { return t.sheet }

// Dirty reports whether any field has been written since open or the last
// successful save.
func (t *Timesheet) Dirty() bool { return t.dirty }

// Locate scans the date column top to bottom and returns the 1-based index
// of the first row whose date equals day. Only date-typed (numeric serial)
// cells participate; when a day appears twice the first row wins.
// A missing day is reported via ok, not an error.
func (t *Timesheet) Locate(day time.Time) (row int, ok bool, err error) {
	rows, err := t.file.GetRows(t.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, false, fmt.Errorf("reading sheet %s: %w", t.sheet, err)
	}
	for i, cells := range rows {
		if len(cells) < dateColumn || cells[dateColumn-1] == "" {
			continue
		}
		serial, err := strconv.ParseFloat(cells[dateColumn-1], 64)
		if err != nil {
			continue // text cell, e.g. a header row
		}
		d, err := dayFromSerial(serial)
		if err != nil {
			continue
		}
		if d.Equal(day) {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

// Set writes a time value into the given row and field column and marks
// the timesheet dirty. The write is unconditional: no ordering or overlap
// checks, an end before the start is stored as-is.
func (t *Timesheet) Set(row int, field Field, c Clock) error {
	cell, err := excelize.CoordinatesToCellName(t.cols[field], row)
	if err != nil {
		return err
	}
	if err := t.file.SetCellValue(t.sheet, cell, c.Duration()); err != nil {
		return fmt.Errorf("writing %s for row %d: %w", field, row, err)
	}
	t.dirty = true
	return nil
}

// Get reads the time value for the given row and field. ok is false when
// the cell is empty or not time-typed.
func (t *Timesheet) Get(row int, field Field) (Clock, bool) {
	serial, ok := t.serialAt(t.cols[field], row)
	if !ok {
		return Clock{}, false
	}
	return clockFromSerial(serial), true
}

// Day reads the date cell for a row.
func (t *Timesheet) Day(row int) (time.Time, bool) {
	serial, ok := t.serialAt(dateColumn, row)
	if !ok {
		return time.Time{}, false
	}
	d, err := dayFromSerial(serial)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (t *Timesheet) serialAt(col, row int) (float64, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, false
	}
	raw, err := t.file.GetCellValue(t.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return 0, false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return serial, true
}

// Entry holds the optional time values for one Enter call. Nil fields are
// left untouched.
type Entry struct {
	Start      *Clock
	BreakStart *Clock
	BreakEnd   *Clock
	End        *Clock
}

func (e Entry) fields() [numFields]*Clock {
	return [numFields]*Clock{e.Start, e.BreakStart, e.BreakEnd, e.End}
}

// Result reports the outcome of Enter.
type Result struct {
	Row   int
	Found bool
	Dirty bool
}

// Enter resolves day to a row and writes every present entry field into
// it, in the fixed order start, break_start, break_end, end. A missing row
// is a soft outcome: no cell is touched and Result.Found is false.
func (t *Timesheet) Enter(day time.Time, entry Entry) (Result, error) {
	row, found, err := t.Locate(day)
	if err != nil || !found {
		return Result{}, err
	}
	for i, c := range entry.fields() {
		if c == nil {
			continue
		}
		if err := t.Set(row, Field(i), *c); err != nil {
			return Result{}, err
		}
	}
	return Result{Row: row, Found: true, Dirty: t.dirty}, nil
}

// Row reads all five fields of the given row for rendering.
func (t *Timesheet) Row(index int) Row {
	var r Row
	if d, ok := t.Day(index); ok {
		r.Date = d
	}
	dests := [numFields]**Clock{&r.Start, &r.BreakStart, &r.BreakEnd, &r.End}
	for i, dest := range dests {
		if c, ok := t.Get(index, Field(i)); ok {
			clock := c
			*dest = &clock
		}
	}
	return r
}

// Save persists the workbook back to the path it was opened from and
// clears the dirty flag. Saving with nothing changed is a harmless
// re-save.
func (t *Timesheet) Save() error {
	if err := t.file.Save(); err != nil {
		return fmt.Errorf("saving timesheet %s: %w", t.path, err)
	}
	t.dirty = false
	return nil
}

// SaveAs persists the workbook to an alternate path.
func (t *Timesheet) SaveAs(path string) error {
	if err := t.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving timesheet %s: %w", path, err)
	}
	t.dirty = false
	return nil
}
