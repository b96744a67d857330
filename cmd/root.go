package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tsheet/tsheet-cli/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	dateArg       string
	startArg      string
	endArg        string
	breakStartArg string
	breakEndArg   string
	prettyOutput  bool
	jsonOutput    bool
	sheetName     string
)

var rootCmd = &cobra.Command{
	Use:   "tsheet [file]",
	Short: "Edit one day's row of an xlsx timesheet",
	Long: `Edit a single row of an xlsx timesheet identified by a calendar date.

The workbook is laid out one row per day: date in column A, start,
break_start, break_end and end times in columns B–E. tsheet locates the
row for the given date (default: today), writes the given times into it,
prints the resulting row, and saves the workbook only if something
changed.

Time flags accept hh:mm; a bare flag means the current time at minute
precision. A date not present in the sheet is reported to stderr and
nothing is written.

Examples:
  tsheet report.xlsx -s 09:00                  # set today's start time
  tsheet report.xlsx -s                        # ...to right now
  tsheet report.xlsx -d 2024-03-01 -s 09:00 -e 17:30
  tsheet report.xlsx -d 2024-03-01 --break-start 12:00 --break-end 12:45
  tsheet report.xlsx -d 2024-03-01 -p          # boxed rendering, no edit`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	RunE:          runEnter,
}

func init() {
	addRowFlags(rootCmd.Flags())
	f := rootCmd.Flags()
	f.StringVarP(&startArg, "start", "s", "", "Start time (hh:mm; bare flag: now)")
	f.StringVarP(&endArg, "end", "e", "", "End time (hh:mm; bare flag: now)")
	f.StringVar(&breakStartArg, "break-start", "", "Start time of the break (hh:mm; bare flag: now)")
	f.StringVar(&breakEndArg, "break-end", "", "End time of the break (hh:mm; bare flag: now)")
}

// addRowFlags registers the flags shared by every command that addresses
// and renders a row.
func addRowFlags(f *pflag.FlagSet) {
	f.StringVarP(&dateArg, "date", "d", "", "The date to address (yyyy-MM-dd; default: today)")
	f.BoolVarP(&prettyOutput, "pretty", "p", false, "Pretty-print the row as a boxed table")
	f.BoolVar(&jsonOutput, "json", false, "Output the row as JSON instead of a formatted line")
	f.StringVar(&sheetName, "sheet", "", "Sheet to address (default: the workbook's active sheet)")
}

// resolveFile picks the timesheet path: positional argument, then
// TSHEET_FILE, then the configured default.
func resolveFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if v := os.Getenv("TSHEET_FILE"); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	if cfg.DefaultFile == "" {
		return "", fmt.Errorf("no timesheet file: pass a path, set TSHEET_FILE, or run 'tsheet config set-file'")
	}
	return cfg.DefaultFile, nil
}

// resolveSheet picks the sheet name: --sheet, then the configured sheet.
// Empty means the workbook's active sheet.
func resolveSheet() (string, error) {
	if sheetName != "" {
		return sheetName, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	return cfg.Sheet, nil
}

func Execute() error {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	return rootCmd.Execute()
}
