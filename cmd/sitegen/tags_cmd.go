package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
	"github.com/supernalintelligence/sitegen/internal/query"
	"github.com/supernalintelligence/sitegen/internal/tags"
)

func tagsCmd() *cobra.Command {
	var (
		minFreq      int
		preserveCase bool
		jsonOut      bool
	)
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show the tag index",
		Long:  "Collect tags and categories across visible posts, sorted by frequency then name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(minFreq, preserveCase, jsonOut)
		},
	}
	cmd.Flags().IntVar(&minFreq, "min", 1, "Minimum post count per tag")
	cmd.Flags().BoolVar(&preserveCase, "preserve-case", false, "Keep original tag casing instead of title-casing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runTags(minFreq int, preserveCase, jsonOut bool) error {
	_, repo, _, err := openContent()
	if err != nil {
		return err
	}

	posts, err := repo.All()
	if err != nil {
		return fmt.Errorf("scan content: %w", err)
	}

	index := tags.CollectWithOptions(query.VisibleOnly(posts), minFreq, tags.Options{
		PreserveCase: preserveCase,
	})

	if jsonOut {
		data, _ := json.MarshalIndent(index, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(index) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	fmt.Printf("\n%d tag(s):\n\n", len(index))
	for _, info := range index {
		fmt.Printf("  %-24s %s%4d  /tags/%s%s\n",
			info.Name, cli.Dim, info.Count, info.Slug, cli.Reset)
	}
	fmt.Println()
	return nil
}
