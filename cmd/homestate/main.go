// Copyright 2025 Bloop16
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

	"github.com/bloop16/homestate"
	"github.com/bloop16/homestate/ai"
	"github.com/bloop16/homestate/retention"
	"github.com/bloop16/homestate/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "homestate",
		Usage: "Semantic retrieval and resolution over smart-home state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "qdrant-host",
				Usage: "Qdrant gRPC host",
				Value: "localhost",
			},
			&cli.IntFlag{
				Name:  "qdrant-port",
				Usage: "Qdrant gRPC port",
				Value: 6334,
			},
			&cli.StringFlag{
				Name:  "ollama-host",
				Usage: "Ollama server URL",
				Value: "http://localhost:11434",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "nomic-embed-text",
			},
			&cli.StringFlag{
				Name:  "chat-model",
				Usage: "Chat model name for answer generation",
				Value: "llama3.2",
			},
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Vector store collection name",
				Value: "homestate",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Directory for the write-suppression cache",
				Value: "./homestate_cache",
			},
			&cli.StringSliceFlag{
				Name:  "readable",
				Usage: "Datapoint IDs the resolver may return (repeatable)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Show the stored states most similar to a query",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of hits",
						Value:   5,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question grounded in stored device state",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of states in the context block",
						Value:   5,
					},
				},
			},
			{
				Name:      "resolve",
				Usage:     "Resolve a free-text reference to a full datapoint ID",
				ArgsUsage: "<reference...>",
				Action:    resolveCommand,
			},
			{
				Name:   "prune",
				Usage:  "Prune stored history by age and count",
				Action: pruneCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-age-days",
						Usage: "Delete points older than this many days",
						Value: retention.DefaultMaxAgeDays,
					},
					&cli.IntFlag{
						Name:  "max-entries",
						Usage: "Keep at most this many points per datapoint",
						Value: retention.DefaultMaxEntries,
					},
				},
			},
			{
				Name:   "prune-disabled",
				Usage:  "Delete the full history of datapoints not listed as readable",
				Action: pruneDisabledCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show collection statistics",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
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

func openSystem(c *cli.Context) (*homestate.System, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	sys, err := homestate.NewSystem(c.String("cache-dir"),
		homestate.WithAIConfig(aiConfig),
		homestate.WithQdrant(c.String("qdrant-host"), c.Int("qdrant-port")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open system: %w", err)
	}

	sys.Registry().Update(c.StringSlice("readable"), nil)
	return sys, nil
}

func queryFromArgs(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("a query is required")
	}
	return query, nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher(search.WithSearcherCollection(c.String("collection")))
	if err != nil {
		return err
	}

	hits, err := searcher.Search(context.Background(), query, c.Int("max-results"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d: %s [%0.3f]\n", i, hit.Record.FormattedText, hit.Score)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher(search.WithSearcherCollection(c.String("collection")))
	if err != nil {
		return err
	}

	answer, err := searcher.Answer(context.Background(), question, c.Int("max-results"))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func resolveCommand(c *cli.Context) error {
	reference, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	resolver, err := sys.NewResolver(search.WithResolverCollection(c.String("collection")))
	if err != nil {
		return err
	}

	id, ok, err := resolver.Resolve(context.Background(), reference)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no match")
		return nil
	}

	fmt.Println(id)
	return nil
}

func pruneCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	manager, err := sys.NewRetentionManager(
		retention.WithCollection(c.String("collection")),
		retention.WithPolicy(retention.Policy{
			MaxAgeDays: c.Int("max-age-days"),
			MaxEntries: c.Int("max-entries"),
		}),
	)
	if err != nil {
		return err
	}

	report := manager.PruneAll(context.Background(), c.StringSlice("readable"))
	fmt.Printf("Processed %d datapoints, removed %d points, %d failures\n",
		report.Processed, report.Removed, report.Failed)
	return nil
}

func pruneDisabledCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	manager, err := sys.NewRetentionManager(retention.WithCollection(c.String("collection")))
	if err != nil {
		return err
	}

	report, err := manager.PruneDisabled(context.Background(), c.StringSlice("readable"))
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d datapoints with %d points\n", report.Processed, report.Removed)
	return nil
}

func statsCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	stats, err := sys.Store().Stats(context.Background(), c.String("collection"))
	if err != nil {
		return err
	}

	fmt.Printf("Collection %s: %d points, status %s\n", c.String("collection"), stats.Points, stats.Status)
	return nil
}
