package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
	"github.com/supernalintelligence/sitegen/internal/collection"
)

func listCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list [section] [path]",
		Short: "List a section or collection as assembled items",
		Long:  "Resolve a section (and optional slug path beneath it) and print the assembled collection: folders first, then posts, in display order.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slugPath := ""
			if len(args) == 2 {
				slugPath = args[1]
			}
			return runList(args[0], slugPath, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runList(sectionID, slugPath string, jsonOut bool) error {
	_, repo, site, err := openContent()
	if err != nil {
		return err
	}

	data, err := newPreparer(repo, site).Prepare(sectionID, slugPath)
	if err != nil {
		return fmt.Errorf("prepare %s/%s: %w", sectionID, slugPath, err)
	}

	if jsonOut {
		out, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	if data.IndexPost == nil && slugPath != "" {
		fmt.Printf("Not found: %s/%s\n", sectionID, slugPath)
		return nil
	}

	crumbs := make([]string, 0, len(data.Breadcrumbs))
	for _, c := range data.Breadcrumbs {
		crumbs = append(crumbs, c.Name)
	}
	fmt.Printf("\n%s%s%s\n", cli.Bold, strings.Join(crumbs, " > "), cli.Reset)
	if data.IndexPost != nil && data.IndexPost.Meta.Description != "" {
		fmt.Printf("%s%s%s\n", cli.Dim, data.IndexPost.Meta.Description, cli.Reset)
	}

	if !data.IsCollection {
		fmt.Printf("\n  %s (%d min read)\n\n", data.IndexPost.Title(), data.IndexPost.ReadingTime)
		return nil
	}

	if len(data.Items) == 0 {
		fmt.Println("\n  (empty collection)")
		fmt.Println()
		return nil
	}

	fmt.Println()
	for _, item := range data.Items {
		switch item.Kind {
		case collection.KindFolder:
			fmt.Printf("  %s%s/%s  %s%d post(s)%s\n",
				cli.Cyan, item.Folder.Title, cli.Reset,
				cli.Dim, len(item.Folder.Posts), cli.Reset)
		case collection.KindPost:
			fmt.Printf("  %s  %s/%s%s\n",
				item.Post.Title(), cli.Dim, item.Post.Slug, cli.Reset)
		}
	}
	fmt.Println()
	return nil
}
