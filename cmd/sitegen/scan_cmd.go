package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/supernalintelligence/sitegen/internal/cli"
	"github.com/supernalintelligence/sitegen/internal/slug"
	"github.com/supernalintelligence/sitegen/internal/tags"
)

type scanStats struct {
	ContentDir string  `json:"contentDir"`
	Files      int     `json:"files"`
	Posts      int     `json:"posts"`
	Skipped    int     `json:"skipped"`
	IndexPosts int     `json:"indexPosts"`
	Hidden     int     `json:"hidden"`
	Sections   int     `json:"sections"`
	Tags       int     `json:"tags"`
	ElapsedMS  float64 `json:"elapsedMs"`
}

func scanCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the content tree and show statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runScan(jsonOut bool) error {
	cfg, repo, _, err := openContent()
	if err != nil {
		return err
	}

	start := time.Now()
	posts, err := repo.All()
	if err != nil {
		return fmt.Errorf("scan content: %w", err)
	}
	sections, err := repo.Sections()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := scanStats{
		ContentDir: cfg.Content.Dir,
		Files:      countMarkdownFiles(cfg.Content.Dir, cfg.SkipDirSet()),
		Posts:      len(posts),
		Sections:   len(sections),
		Tags:       len(tags.Collect(posts, 1)),
		ElapsedMS:  float64(elapsed.Microseconds()) / 1000.0,
	}
	stats.Skipped = stats.Files - stats.Posts
	for _, p := range posts {
		if p.IsIndex {
			stats.IndexPosts++
		}
		if p.Hidden() {
			stats.Hidden++
		}
	}

	if jsonOut {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	cli.Header("Content Scan")
	fmt.Printf("\n  Content:  %s\n", cli.ShortenHome(stats.ContentDir))
	fmt.Printf("  Files:    %s markdown (%s skipped)\n",
		cli.FormatNumber(stats.Files), cli.FormatNumber(stats.Skipped))
	fmt.Printf("  Posts:    %s (%s index, %s hidden)\n",
		cli.FormatNumber(stats.Posts),
		cli.FormatNumber(stats.IndexPosts),
		cli.FormatNumber(stats.Hidden))
	fmt.Printf("  Sections: %d\n", stats.Sections)
	fmt.Printf("  Tags:     %d\n", stats.Tags)
	fmt.Printf("  Elapsed:  %.1f ms\n\n", stats.ElapsedMS)
	return nil
}

// countMarkdownFiles walks the tree the same way a scan does, so the delta
// against parsed posts is the number of rejected or shadowed files.
func countMarkdownFiles(root string, skipDirs map[string]bool) int {
	count := 0
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if slug.LooksLikeFile(d.Name()) {
			count++
		}
		return nil
	})
	return count
}
