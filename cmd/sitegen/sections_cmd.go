package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
)

type sectionInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

func sectionsCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List content sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runSections(jsonOut bool) error {
	_, repo, site, err := openContent()
	if err != nil {
		return err
	}

	ids, err := repo.Sections()
	if err != nil {
		return fmt.Errorf("scan content: %w", err)
	}

	infos := make([]sectionInfo, 0, len(ids))
	for _, id := range ids {
		posts, err := repo.Section(id)
		if err != nil {
			return err
		}
		infos = append(infos, sectionInfo{
			ID:    id,
			Name:  site.SectionName(id),
			Posts: len(posts),
		})
	}

	if jsonOut {
		data, _ := json.MarshalIndent(infos, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(infos) == 0 {
		fmt.Println("No sections found.")
		return nil
	}

	fmt.Println()
	for _, info := range infos {
		fmt.Printf("  %-20s %s%s post(s)%s\n",
			info.ID, cli.Dim, cli.FormatNumber(info.Posts), cli.Reset)
		if info.Name != info.ID {
			fmt.Printf("    %s%s%s\n", cli.Dim, info.Name, cli.Reset)
		}
	}
	fmt.Println()
	return nil
}
