package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plenum/internal/config"
)

var forceInit bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [PATH]",
	Short: "Write a commented default config file",
	Long: `Write the default configuration with comments to PATH
(default: .plenum/config.yaml). Refuses to overwrite without --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var localeCmd = &cobra.Command{
	Use:   "locale LANG",
	Short: "Set the display language in the config file",
	Long: `Set the language used for record type names (for example en, de, fr).
Other settings and comments in the config file are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := cfg
		next.Locale = args[0]
		if err := next.Validate(); err != nil {
			return err
		}
		path := configPath()
		if err := config.SaveLocale(path, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Locale set to %s in %s\n", args[0], path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd, localeCmd)
}
