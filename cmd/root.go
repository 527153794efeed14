package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/plenum/internal/app"
	"github.com/zjrosen/plenum/internal/config"
	"github.com/zjrosen/plenum/internal/log"
)

const localConfigPath = ".plenum/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	logFile    string
	jsonOutput bool
	cfg        config.Config

	closeLog func()
)

var rootCmd = &cobra.Command{
	Use:   "plenum",
	Short: "Search and inspect a local replica of assembly records",
	Long: `plenum keeps a local snapshot of assembly records (elections, agenda items,
participants, tags, motions and categories), resolves their relations into
view objects and searches across them.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: startLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
			closeLog = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/plenum/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by PLENUM_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "plenum-debug.log",
		"debug log path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"print results as JSON")
	rootCmd.PersistentFlags().String("snapshot", "",
		"snapshot database path (overrides snapshot_path)")

	_ = viper.BindPFlag("snapshot_path", rootCmd.PersistentFlags().Lookup("snapshot"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("locale", defaults.Locale)
	viper.SetDefault("snapshot_path", defaults.SnapshotPath)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("cache.expiration", defaults.Cache.Expiration)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .plenum/config.yaml (current directory)
		// 2. ~/.config/plenum/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "plenum"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", viper.ConfigFileUsed())
		}
	}

	// Keys missing from the file keep their defaults.
	cfg = defaults
	if err := viper.Unmarshal(&cfg); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to decode config", err)
	}
}

func startLogging(cmd *cobra.Command, args []string) error {
	if !debugFlag && os.Getenv("PLENUM_DEBUG") == "" {
		return nil
	}
	cleanup, err := log.Init(logFile)
	if err != nil {
		return fmt.Errorf("initializing debug log: %w", err)
	}
	closeLog = cleanup
	log.Info(log.CatConfig, "Debug logging enabled", "config", viper.ConfigFileUsed(), "version", version)
	return nil
}

// openApp builds the application from the loaded config.
func openApp() (*app.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	return a, nil
}

// configPath is the file config edits go to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return localConfigPath
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
