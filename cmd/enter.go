package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tsheet/tsheet-cli/internal/timesheet"
)

func runEnter(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	day, err := parseDayArg(cmd, dateArg)
	if err != nil {
		return err
	}

	var entry timesheet.Entry
	for _, f := range []struct {
		arg  string
		dest **timesheet.Clock
	}{
		{startArg, &entry.Start},
		{breakStartArg, &entry.BreakStart},
		{breakEndArg, &entry.BreakEnd},
		{endArg, &entry.End},
	} {
		if f.arg == "" {
			continue
		}
		c, err := parseClockArg(cmd, f.arg)
		if err != nil {
			return err
		}
		*f.dest = &c
	}

	file, err := resolveFile(args)
	if err != nil {
		return err
	}
	sheet, err := resolveSheet()
	if err != nil {
		return err
	}

	ts, err := timesheet.Open(file, sheet)
	if err != nil {
		return err
	}
	defer ts.Close()

	res, err := ts.Enter(day, entry)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not find row for day %s in %s\n",
			day.Format("2006-01-02"), ts.Path())
		return nil
	}

	if err := printRow(cmd, ts.Row(res.Row)); err != nil {
		return err
	}

	if ts.Dirty() {
		if err := ts.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Timesheet updated: %s\n", ts.Path())
	}
	return nil
}

// parseDayArg resolves a date argument; the empty string and "today" mean
// the current date. A malformed date is fatal: the offending literal goes
// to stderr and the process exits non-zero.
func parseDayArg(cmd *cobra.Command, s string) (time.Time, error) {
	if s == "" || s == "today" {
		return timesheet.Today(), nil
	}
	day, err := timesheet.ParseDay(s)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid day: %s\n", s)
		return time.Time{}, &ExitError{Code: 2}
	}
	return day, nil
}

// parseClockArg resolves a time argument; "now" means the current time at
// minute precision.
func parseClockArg(cmd *cobra.Command, s string) (timesheet.Clock, error) {
	if s == "now" {
		return timesheet.Now(), nil
	}
	c, err := timesheet.ParseClock(s)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid time: %s\n", s)
		return timesheet.Clock{}, &ExitError{Code: 2}
	}
	return c, nil
}

// printRow renders one row to stdout in the selected output mode.
func printRow(cmd *cobra.Command, row timesheet.Row) error {
	if jsonOutput {
		return jsonPrint(cmd.OutOrStdout(), rowJSON(row))
	}
	fmt.Fprintln(cmd.OutOrStdout(), timesheet.NewFormatter(prettyOutput).Format(row))
	return nil
}

func rowJSON(r timesheet.Row) any {
	out := struct {
		Date       string `json:"date"`
		Start      string `json:"start,omitempty"`
		BreakStart string `json:"break_start,omitempty"`
		BreakEnd   string `json:"break_end,omitempty"`
		End        string `json:"end,omitempty"`
	}{Date: r.Date.Format("2006-01-02")}
	if r.Start != nil {
		out.Start = r.Start.String()
	}
	if r.BreakStart != nil {
		out.BreakStart = r.BreakStart.String()
	}
	if r.BreakEnd != nil {
		out.BreakEnd = r.BreakEnd.String()
	}
	if r.End != nil {
		out.End = r.End.String()
	}
	return out
}
