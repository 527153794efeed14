package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plenum/internal/presentation"
)

var showCmd = &cobra.Command{
	Use:   "show COLLECTION ID",
	Short: "Show one record with its resolved relations",
	Long: `Show one record as a view object. Related records that are not in the
snapshot are left out.

Example:
  plenum show assignments/assignment 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[1])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[1])
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		view, err := a.View(cmd.Context(), args[0], id)
		if err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOutput)
		return formatter.FormatView(presentation.FromView(view))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
