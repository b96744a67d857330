package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsheet/tsheet-cli/internal/timesheet"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the row for a day without editing it",
	Long: `Locate the row for a date (default: today) and print it without
writing anything.

Examples:
  tsheet show report.xlsx
  tsheet show report.xlsx -d 2024-03-01 -p`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	addRowFlags(showCmd.Flags())
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	day, err := parseDayArg(cmd, dateArg)
	if err != nil {
		return err
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

	row, found, err := ts.Locate(day)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not find row for day %s in %s\n",
			day.Format("2006-01-02"), ts.Path())
		return nil
	}
	return printRow(cmd, ts.Row(row))
}
