// Package main is the entrypoint for the sitegen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/collection"
	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/content"
)

// Version is set at build time via ldflags.
var Version = "dev"

// contentOverride is the global --content flag value.
var contentOverride string

func main() {
	root := &cobra.Command{
		Use:   "sitegen",
		Short: "Markdown content pipeline for static sites",
		Long:  "sitegen — slug resolution, collection assembly, tag indexing, and search for markdown content trees.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(versionCmd())
	root.AddCommand(scanCmd())
	root.AddCommand(listCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(tagsCmd())
	root.AddCommand(sidebarCmd())
	root.AddCommand(sectionsCmd())
	root.AddCommand(serveCmd())

	// Global --content flag
	root.PersistentFlags().StringVar(&contentOverride, "content", "", "Content directory (overrides config)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sitegen version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("sitegen %s\n", Version)
			return nil
		},
	}
}

// loadConfig merges runtime configuration with the --content override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if contentOverride != "" {
		cfg.Content.Dir = contentOverride
	}
	return cfg, nil
}

// openContent builds the repository and site config for a command run.
func openContent() (*config.Config, *content.Repository, *config.SiteConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if info, err := os.Stat(cfg.Content.Dir); err != nil || !info.IsDir() {
		return nil, nil, nil, userError(
			fmt.Sprintf("Content directory not found: %s", cfg.Content.Dir),
			"Pass --content <dir>, set SITEGEN_CONTENT_DIR, or add [content] dir to .sitegen/config.toml")
	}

	repo := content.NewRepository(cfg.Content.Dir,
		content.WithTTL(cfg.CacheTTL()),
		content.WithSkipDirs(cfg.SkipDirSet()))

	site, err := config.LoadSite(cfg.Content.Dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load site.yaml: %w", err)
	}
	return cfg, repo, site, nil
}

func newPreparer(repo *content.Repository, site *config.SiteConfig) *collection.Preparer {
	return &collection.Preparer{Repo: repo, Site: site}
}

// ---------- error helpers ----------

type cliError struct {
	message string
	hint    string
}

func (e *cliError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &cliError{message: message, hint: hint}
}
