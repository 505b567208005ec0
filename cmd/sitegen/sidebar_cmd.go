package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
	"github.com/supernalintelligence/sitegen/internal/nav"
)

func sidebarCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "sidebar [section]",
		Short: "Print the navigation tree for a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSidebar(args[0], jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runSidebar(sectionID string, jsonOut bool) error {
	cfg, _, _, err := openContent()
	if err != nil {
		return err
	}

	items, err := nav.BuildSidebar(cfg.Content.Dir, sectionID)
	if err != nil {
		return fmt.Errorf("build sidebar: %w", err)
	}

	if jsonOut {
		data, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Printf("Section %q has no navigable content.\n", sectionID)
		return nil
	}

	fmt.Println()
	printSidebarItems(items, 0)
	fmt.Println()
	return nil
}

func printSidebarItems(items []nav.SidebarItem, depth int) {
	indent := strings.Repeat("  ", depth+1)
	for _, item := range items {
		if len(item.Children) > 0 {
			fmt.Printf("%s%s%s%s  %s%s%s\n",
				indent, cli.Bold, item.Title, cli.Reset, cli.Dim, item.Path, cli.Reset)
			printSidebarItems(item.Children, depth+1)
		} else {
			fmt.Printf("%s%s  %s%s%s\n",
				indent, item.Title, cli.Dim, item.Path, cli.Reset)
		}
	}
}
