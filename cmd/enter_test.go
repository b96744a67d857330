package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tsheet/tsheet-cli/internal/timesheet"
)

// writeFixture builds a workbook with one date-typed cell per row in
// column A and returns its path.
func writeFixture(t *testing.T, days ...time.Time) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, d := range days {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, d); err != nil {
			t.Fatalf("setting date cell: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "timesheet.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}

func resetFlags() {
	dateArg = ""
	startArg = ""
	endArg = ""
	breakStartArg = ""
	breakEndArg = ""
	prettyOutput = false
	jsonOutput = false
	sheetName = ""
}

// resetCommandState clears package-level flag values between runs and
// isolates the config directory.
func resetCommandState(t *testing.T) {
	t.Helper()
	resetFlags()
	t.Setenv("TSHEET_CONFIG_DIR", t.TempDir())
}

// executeInPlace runs the root command with fresh flag values but without
// touching the environment, so consecutive runs share one config
// directory.
func executeInPlace(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(normalizeArgs(args))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// execute runs the root command with fresh flag state and isolated config,
// returning captured stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetCommandState(t)
	t.Setenv("TSHEET_FILE", "")
	return executeInPlace(t, args...)
}

func marchFirst() time.Time {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestEnterWritesTimesAndSaves(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, errOut, err := execute(t, path, "--date", "2024-03-01", "--start", "09:00", "--end", "17:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "2024-03-01 -> start@09:00:00, end@17:30:00\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "Timesheet updated: "+path) {
		t.Errorf("stderr = %q, want save confirmation", errOut)
	}

	ts, err := timesheet.Open(path, "")
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer ts.Close()
	row, ok, err := ts.Locate(marchFirst())
	if err != nil || !ok {
		t.Fatalf("Locate after run = (%d, %v, %v)", row, ok, err)
	}
	if got, ok := ts.Get(row, timesheet.FieldStart); !ok || got.String() != "09:00:00" {
		t.Errorf("persisted start = %v (%v), want 09:00:00", got, ok)
	}
	if got, ok := ts.Get(row, timesheet.FieldEnd); !ok || got.String() != "17:30:00" {
		t.Errorf("persisted end = %v (%v), want 17:30:00", got, ok)
	}
	if _, ok := ts.Get(row, timesheet.FieldBreakStart); ok {
		t.Error("break_start written without being specified")
	}
	if _, ok := ts.Get(row, timesheet.FieldBreakEnd); ok {
		t.Error("break_end written without being specified")
	}
}

func TestEnterMissingRowIsSoftNoop(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, errOut, err := execute(t, path, "--date", "2030-01-01", "--start", "09:00")
	if err != nil {
		t.Fatalf("lookup miss must not be an error, got %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want no rendering", out)
	}
	if !strings.Contains(errOut, "Could not find row for day 2030-01-01 in "+path) {
		t.Errorf("stderr = %q, want a diagnostic naming day and file", errOut)
	}
	if strings.Contains(errOut, "Timesheet updated") {
		t.Errorf("stderr = %q: nothing must be saved", errOut)
	}
}

func TestEnterInvalidTime(t *testing.T) {
	path := writeFixture(t, marchFirst())

	_, errOut, err := execute(t, path, "--date", "2024-03-01", "--start", "9am")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code == 0 {
		t.Fatalf("err = %v, want non-zero ExitError", err)
	}
	if !strings.Contains(errOut, "Invalid time: 9am") {
		t.Errorf("stderr = %q, want the offending literal", errOut)
	}

	// The file must be untouched.
	ts, err := timesheet.Open(path, "")
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer ts.Close()
	if _, ok := ts.Get(1, timesheet.FieldStart); ok {
		t.Error("file was modified despite the input error")
	}
}

func TestEnterInvalidDate(t *testing.T) {
	path := writeFixture(t, marchFirst())

	_, errOut, err := execute(t, path, "--date", "03/01/2024")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want ExitError", err)
	}
	if !strings.Contains(errOut, "Invalid day: 03/01/2024") {
		t.Errorf("stderr = %q, want the offending literal", errOut)
	}
}

func TestEnterWithoutTimesDoesNotSave(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, errOut, err := execute(t, path, "--date", "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "2024-03-01 -> \n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
	if strings.Contains(errOut, "Timesheet updated") {
		t.Errorf("stderr = %q: nothing changed, nothing must be saved", errOut)
	}
}

func TestEnterBareStartFlagMeansNow(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, errOut, err := execute(t, path, "--date", "2024-03-01", "--start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "start@") {
		t.Errorf("stdout = %q, want a start value", out)
	}
	if !strings.Contains(errOut, "Timesheet updated") {
		t.Errorf("stderr = %q, want a save confirmation", errOut)
	}
}

func TestEnterBreakShorthands(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, _, err := execute(t, path, "--date", "2024-03-01", "-bs", "12:00", "-be", "12:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "2024-03-01 -> break_start@12:00:00, break_end@12:45:00\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}

	ts, err := timesheet.Open(path, "")
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer ts.Close()
	if got, ok := ts.Get(1, timesheet.FieldBreakStart); !ok || got.String() != "12:00:00" {
		t.Errorf("persisted break_start = %v (%v), want 12:00:00", got, ok)
	}
	if got, ok := ts.Get(1, timesheet.FieldBreakEnd); !ok || got.String() != "12:45:00" {
		t.Errorf("persisted break_end = %v (%v), want 12:45:00", got, ok)
	}
}

func TestEnterOpenFailure(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "nope.xlsx"), "--date", "2024-03-01")
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatal("open failure must surface as a printable error, not a bare ExitError")
	}
}

func TestEnterJSONOutput(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, _, err := execute(t, path, "--date", "2024-03-01", "--start", "09:00", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Date  string `json:"date"`
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if got.Date != "2024-03-01" || got.Start != "09:00:00" || got.End != "" {
		t.Errorf("row JSON = %+v", got)
	}
}

func TestEnterPrettyOutput(t *testing.T) {
	path := writeFixture(t, marchFirst())

	out, _, err := execute(t, path, "--date", "2024-03-01", "--start", "09:00", "--pretty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"break_start", "2024-03-01", "09:00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
}

func TestEnterResolvesFileFromEnv(t *testing.T) {
	path := writeFixture(t, marchFirst())

	resetCommandState(t)
	t.Setenv("TSHEET_FILE", path)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--date", "2024-03-01"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "2024-03-01 -> \n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestEnterNoFileAnywhere(t *testing.T) {
	_, _, err := execute(t, "--date", "2024-03-01")
	if err == nil || !strings.Contains(err.Error(), "no timesheet file") {
		t.Fatalf("err = %v, want a remedy-naming error", err)
	}
}
