package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/watcher"
	"github.com/supernalintelligence/sitegen/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the content API on localhost",
		Long: `Start a local JSON API over the content tree.

The server is read-only and only accessible from localhost.

Examples:
  sitegen serve                      # Listen on the configured address
  sitegen serve --addr 127.0.0.1:9000
  sitegen serve --watch              # Refresh content on file changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, site, err := openContent()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Serve.Addr
			}

			if watch {
				go func() {
					if err := watcher.Watch(repo, cfg.SkipDirSet()); err != nil {
						fmt.Printf("watcher stopped: %v\n", err)
					}
				}()
			}

			return web.Serve(addr, repo, site, Version)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch the content tree and refresh on changes")
	return cmd
}
