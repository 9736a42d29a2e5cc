// Command generate snapshots the backend's content into the bundled
// fallback data files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
)

// snapshot is one data file and how to fetch its content
type snapshot struct {
	File  string
	Fetch func(ctx context.Context, c *gateway.Client) (any, int, error)
}

var snapshots = []snapshot{
	{
		File: "site.json",
		Fetch: func(ctx context.Context, c *gateway.Client) (any, int, error) {
			site, err := c.FetchSiteInfo(ctx)
			if err != nil {
				return nil, 0, err
			}
			site = site.Public()
			site.ID = ""
			return site, 1, nil
		},
	},
	{
		File: "experience.json",
		Fetch: func(ctx context.Context, c *gateway.Client) (any, int, error) {
			list, err := c.FetchExperience(ctx)
			return list, len(list), err
		},
	},
	{
		File: "projects.json",
		Fetch: func(ctx context.Context, c *gateway.Client) (any, int, error) {
			list, err := c.FetchProjects(ctx)
			if err != nil {
				return nil, 0, err
			}
			for i := range list {
				list[i].TechnologyIDs = nil
				if list[i].Tech == nil {
					list[i].Tech = []models.Technology{}
				}
			}
			return list, len(list), nil
		},
	},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir>")
		fmt.Println("       generate <output-dir> <api-base-url>  (override API_BASE_URL)")
		os.Exit(1)
	}

	outputDir := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	baseURL := cfg.APIBaseURL
	if len(os.Args) > 2 {
		baseURL = os.Args[2]
	}

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	client := gateway.New(baseURL, nil,
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithLogger(observability.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	failed := false
	for _, s := range snapshots {
		fmt.Printf("Fetching %s from %s...\n", s.File, baseURL)

		content, count, err := s.Fetch(ctx, client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			failed = true
			continue
		}

		data, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR marshaling JSON: %v\n", err)
			failed = true
			continue
		}

		path := filepath.Join(outputDir, s.File)
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("  Created %s (%d entries)\n", s.File, count)
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("Done!")
}
