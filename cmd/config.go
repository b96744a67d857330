package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsheet/tsheet-cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored defaults",
}

var configSetFileCmd = &cobra.Command{
	Use:   "set-file <path>",
	Short: "Store the default timesheet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.DefaultFile = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default timesheet file set to %s\n", args[0])
		return nil
	},
}

var configSetSheetCmd = &cobra.Command{
	Use:   "set-sheet <name>",
	Short: "Store the sheet to address instead of the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Sheet = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sheet set to %s\n", args[0])
		return nil
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := config.Delete(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration cleared")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetFileCmd)
	configCmd.AddCommand(configSetSheetCmd)
	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configCmd)
}
