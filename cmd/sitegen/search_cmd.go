package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
	"github.com/supernalintelligence/sitegen/internal/query"
)

func searchCmd() *cobra.Command {
	var (
		limit   int
		page    int
		tagList []string
		section string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search posts from the command line",
		Long:  "Rank visible posts against a search query. Tags filter with AND semantics; all query terms must match somewhere in a post.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			if strings.TrimSpace(q) == "" && len(tagList) == 0 {
				return fmt.Errorf("a query or --tag filter is required")
			}
			return runSearch(q, limit, page, tagList, section, jsonOut)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Results per page")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-indexed)")
	cmd.Flags().StringArrayVar(&tagList, "tag", nil, "Filter by tag (repeatable, AND semantics)")
	cmd.Flags().StringVar(&section, "section", "", "Restrict to one section")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runSearch(q string, limit, page int, tagList []string, section string, jsonOut bool) error {
	_, repo, _, err := openContent()
	if err != nil {
		return err
	}

	posts, err := repo.All()
	if err != nil {
		return fmt.Errorf("scan content: %w", err)
	}
	posts = query.VisibleOnly(posts)
	if section != "" {
		kept := posts[:0:0]
		for _, p := range posts {
			if p.Section() == section {
				kept = append(kept, p)
			}
		}
		posts = kept
	}

	result := query.FilterAndPaginate(posts, query.Params{
		Page:        page,
		Limit:       limit,
		SearchQuery: q,
		Tags:        tagList,
	})

	if jsonOut {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(result.Posts) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("\n%d result(s), page %d of %d:\n",
		result.Pagination.TotalPosts, result.Pagination.Page, result.Pagination.TotalPages)
	for i, p := range result.Posts {
		rank := (result.Pagination.Page-1)*result.Pagination.Limit + i + 1
		fmt.Printf("\n%d. %s\n", rank, p.Title())
		fmt.Printf("   /%s\n", p.Slug)
		if len(p.Meta.Tags) > 0 {
			fmt.Printf("   %stags: %s%s\n", cli.Dim, strings.Join(p.Meta.Tags, ", "), cli.Reset)
		}
		if p.Excerpt != "" {
			fmt.Printf("   %s\n", cli.Truncate(strings.ReplaceAll(p.Excerpt, "\n", " "), 150))
		}
	}
	fmt.Println()
	if result.Pagination.HasMore {
		fmt.Printf("%sMore results: --page %d%s\n\n", cli.Dim, page+1, cli.Reset)
	}
	return nil
}
