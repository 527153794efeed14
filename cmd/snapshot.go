package cmd

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/presentation"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import records into the snapshot",
	Long: `Import a JSON bundle into the snapshot. The bundle maps collection names
to record lists:

  {"users/user": [{"id": 1, "first_name": "Alice"}], "core/tag": [...]}

Records with an existing collection and id are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		n, err := a.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", n, cfg.SnapshotPath)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the replica whenever the snapshot changes",
	Long: `Watch the snapshot file and reload the replica after other processes
write to it. Runs until interrupted. Does nothing when auto_reload is off.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if !cfg.AutoReload {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "auto_reload is disabled")
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", cfg.SnapshotPath)
		log.Info(log.CatWatcher, "Watching snapshot", "path", cfg.SnapshotPath)
		return a.Watch(ctx)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove COLLECTION ID...",
	Short: "Remove records from the snapshot",
	Long: `Remove records from the snapshot and the replica. Views that refer to a
removed record leave it out from then on.

Example:
  plenum remove users/user 4 5`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.Atoi(arg)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", arg)
			}
			ids = append(ids, id)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		n, err := a.Remove(cmd.Context(), args[0], ids...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of %d records from %s\n", n, len(ids), args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot, record counts and repository dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		st, err := a.Status(cmd.Context())
		if err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOutput)
		return formatter.FormatStatus(presentation.FromStatus(st))
	},
}

func init() {
	rootCmd.AddCommand(importCmd, removeCmd, statusCmd, watchCmd)
}
