package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plenum/internal/config"
	"github.com/zjrosen/plenum/internal/presentation"
)

var (
	searchIn     []string
	hideModels   []string
	unhideModels []string
)

var searchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Search registered collections",
	Long: `Search the registered collections for records containing QUERY.

Matching ignores case. An empty query lists every record. Results are grouped
per collection in display order; a group is named in the singular when it
holds exactly one match.

Examples:
  # Search everything
  plenum search smith

  # Restrict to participants and elections
  plenum search smith --in users/user,assignments/assignment

  # Machine readable
  plenum search budget --json | jq '.[].matches'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		results := a.Search(cmd.Context(), query, searchIn)
		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOutput)
		return formatter.FormatSearchResults(presentation.FromSearchResults(results))
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List searchable collections in display order",
	Long: `List the collections search runs over, in display order.

--hide and --unhide change which collections are searched and save the
result to the config file.

Examples:
  plenum models
  plenum models --hide core/tag,motions/category
  plenum models --unhide core/tag`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(hideModels) > 0 || len(unhideModels) > 0 {
			updated, err := setHidden(cfg.Search.Models, hideModels, unhideModels)
			if err != nil {
				return err
			}
			if err := config.SaveSearchModels(configPath(), updated); err != nil {
				return err
			}
			cfg.Search.Models = updated
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOutput)
		return formatter.FormatModels(presentation.FromModels(a.Registry().RegisteredModels()))
	},
}

// setHidden returns a copy of models with the named collections hidden or
// shown again.
func setHidden(models []config.SearchModelConfig, hide, unhide []string) ([]config.SearchModelConfig, error) {
	updated := slices.Clone(models)
	apply := func(names []string, hidden bool) error {
		for _, name := range names {
			i := slices.IndexFunc(updated, func(m config.SearchModelConfig) bool { return m.Collection == name })
			if i < 0 {
				return fmt.Errorf("%q is not a configured search collection", name)
			}
			updated[i].Hidden = hidden
		}
		return nil
	}
	if err := apply(hide, true); err != nil {
		return nil, err
	}
	if err := apply(unhide, false); err != nil {
		return nil, err
	}
	return updated, config.ValidateSearch(config.SearchConfig{Models: updated})
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchIn, "in", nil,
		"collections to search (default: all registered)")
	modelsCmd.Flags().StringSliceVar(&hideModels, "hide", nil,
		"leave collections out of search and save to the config file")
	modelsCmd.Flags().StringSliceVar(&unhideModels, "unhide", nil,
		"search hidden collections again and save to the config file")
	rootCmd.AddCommand(searchCmd, modelsCmd)
}
