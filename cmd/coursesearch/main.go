// Copyright 2025 Manhaj Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/manhaj/coursesearch"
	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/reindex"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
	embeddingHostFlag := &cli.StringFlag{
		Name:  "embedding-host",
		Usage: "Embedding service host URL",
		Value: "http://localhost:11434/v1",
	}
	embeddingModelFlag := &cli.StringFlag{
		Name:  "embedding-model",
		Usage: "Embedding model name",
		Value: "multilingual-e5-base",
	}

	app := &cli.App{
		Name:  "coursesearch",
		Usage: "Bilingual course catalog search and routing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Load catalog entries from a JSON file and embed them",
				ArgsUsage: "<catalog.json>",
				Action:    seedCommand,
				Flags:     []cli.Flag{dbFlag, embeddingHostFlag, embeddingModelFlag},
			},
			{
				Name:      "route",
				Usage:     "Run the full routing chain for a query",
				ArgsUsage: "<query>",
				Action:    routeCommand,
				Flags:     []cli.Flag{dbFlag, embeddingHostFlag, embeddingModelFlag},
			},
			{
				Name:      "search",
				Usage:     "Run a plain semantic search over the catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag, embeddingHostFlag, embeddingModelFlag,
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 5,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed the entire catalog with the configured model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					dbFlag, embeddingHostFlag, embeddingModelFlag,
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*coursesearch.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := coursesearch.NewEngine(c.String("db"), coursesearch.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func seedCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: coursesearch seed <catalog.json>")
	}

	entries, err := loadCatalogFile(c.Args().First())
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	added, err := engine.CatalogRepository().AddEntries(ctx, entries...)
	if err != nil {
		return fmt.Errorf("failed to store entries: %w", err)
	}

	embedded, err := engine.EmbedPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to embed entries: %w", err)
	}

	fmt.Printf("Seeded %d entries, embedded %d\n", len(added), embedded)
	return nil
}

func routeCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: coursesearch route <query>")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	decision, err := engine.Route(context.Background(), query)
	if err != nil {
		return err
	}

	printDecision(decision)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: coursesearch search <query>")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(context.Background(), query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s, %s)[%0.3f]\n", i, hit.Entry.Title, hit.Entry.Category, hit.Entry.Level, hit.Score)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if _, err := engine.Reindex(context.Background(), config, os.Stderr); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	return nil
}

func printDecision(decision *core.RouteDecision) {
	fmt.Printf("status=%s route=%s level_mode=%s", decision.Status, decision.Route, decision.LevelMode)
	if decision.Reason != "" {
		fmt.Printf(" reason=%s", decision.Reason)
	}
	fmt.Println()

	printBucket := func(name string, results []*core.CandidateResult) {
		if len(results) == 0 {
			return
		}
		fmt.Printf("%s:\n", name)
		for _, hit := range results {
			fmt.Printf("  '%s' (%s)[%0.3f]\n", hit.Entry.Title, hit.Entry.Category, hit.Score)
		}
	}
	printBucket("Beginner", decision.Results.Beginner)
	printBucket("Intermediate", decision.Results.Intermediate)
	printBucket("Advanced", decision.Results.Advanced)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
