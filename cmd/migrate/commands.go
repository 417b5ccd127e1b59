package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := openMigrator()
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Up(); err != nil {
			return err
		}
		return printVersion(cmd, m.Version)
	},
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations",
	Long:  "Rolls back the given number of migrations, one when omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		m, err := openMigrator()
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Down(steps); err != nil {
			return err
		}
		return printVersion(cmd, m.Version)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := openMigrator()
		if err != nil {
			return err
		}
		defer m.Close()

		return printVersion(cmd, m.Version)
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

func printVersion(cmd *cobra.Command, version func() (uint, bool, error)) error {
	v, dirty, err := version()
	if err != nil {
		return err
	}

	if dirty {
		cmd.Printf("schema version %d (dirty)\n", v)
		return nil
	}
	cmd.Printf("schema version %d\n", v)
	return nil
}
