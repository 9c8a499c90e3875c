// Copyright 2025 The ai-job-assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
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

	assistant "github.com/A-makarim/ai-job-assistant"
	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/ingest"
	"github.com/A-makarim/ai-job-assistant/reembed"
	"github.com/A-makarim/ai-job-assistant/retrieve"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "assistant",
		Usage: "On-device hybrid retrieval over personal job-application documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "reindex",
				Usage:  "Rebuild lane indexes from source text files",
				Action: reindexCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "facts",
						Usage: "Path to experience notes text file",
					},
					&cli.StringFlag{
						Name:  "resume",
						Usage: "Path to resume text file",
					},
					&cli.StringFlag{
						Name:  "voice",
						Usage: "Path to writing samples text file",
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "Path to professional profile text file",
					},
					&cli.StringFlag{
						Name:  "company",
						Usage: "Path to employer/job text file",
					},
					&cli.BoolFlag{
						Name:  "external",
						Usage: "Replace local vectors with external embeddings after each build",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of lanes rebuilt concurrently",
					},
				}, aiFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Search one lane index directly",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "lane",
						Usage: "Lane to search (facts, resume, voice, profile, company)",
						Value: "facts",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum number of hits",
						Value: bank.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum cosine similarity for a hit",
						Value: float64(bank.DefaultMinScore),
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Run a full retrieval call: lane search, rerank, grounding",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "context",
						Usage: "Role or page context for the question",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Job posting URL",
					},
					&cli.StringFlag{
						Name:  "job-text",
						Usage: "Path to a file with the full job posting text",
					},
					&cli.BoolFlag{
						Name:  "no-ground",
						Usage: "Skip the grounding pass and keep the reranker selection",
					},
				}, aiFlags()...),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed persisted lane indexes with an external model",
				Action: reembedCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "lane",
						Usage: "Lane to reembed (all lanes when omitted)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, aiFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "reasoner-model",
			Usage: "Reasoning model name for the grounding pass",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "API token (local servers accept any value)",
			Value: "none",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithReasonerModel(c.String("reasoner-model")),
		ai.WithToken(c.String("token")),
	)
}

func openDatabase(c *cli.Context) (*assistant.Database, error) {
	db, err := assistant.NewDatabase(c.String("db"), assistant.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	sources := make(map[core.Lane]string)
	for lane, flag := range map[core.Lane]string{
		core.LaneFacts:   "facts",
		core.LaneResume:  "resume",
		core.LaneVoice:   "voice",
		core.LaneProfile: "profile",
		core.LaneCompany: "company",
	} {
		path := c.String(flag)
		if path == "" {
			continue
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s source: %w", flag, err)
		}
		sources[lane] = string(text)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no lane sources given: pass at least one of --facts, --resume, --voice, --profile, --company")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingest.Option
	if c.Bool("external") {
		opts = append(opts, db.WithExternalEmbeddings())
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingest.WithPoolSize(size))
	}

	pipeline, err := db.NewIngestPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	if err := pipeline.RebuildAll(ctx, sources); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	for lane := range sources {
		index, err := db.IndexRepository().LoadIndex(ctx, lane)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d chunks (exact dropped %d, near dropped %d)\n",
			lane, index.ChunkCount, index.Dedup.ExactDropped, index.Dedup.NearDropped)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	lane := core.Lane(c.String("lane"))
	if !lane.Valid() {
		return fmt.Errorf("unknown lane %q", c.String("lane"))
	}

	db, err := assistant.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	index, err := db.IndexRepository().LoadIndex(context.Background(), lane)
	if err != nil {
		return fmt.Errorf("loading lane %q: %w", lane, err)
	}

	hits := bank.Search(*index, query, c.Int("top-k"), float32(c.Float64("min-score")))
	fmt.Printf("Found %d hits in lane %s\n", len(hits), lane)
	for i, hit := range hits {
		fmt.Printf("%d: [%.3f] %s (%s)\n", i+1, hit.Score, hit.Text, hit.Id)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("question is required")
	}

	query := retrieve.Query{
		Question:    strings.Join(c.Args().Slice(), " "),
		PageContext: c.String("context"),
		PageURL:     c.String("url"),
	}
	if path := c.String("job-text"); path != "" {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading job posting text: %w", err)
		}
		query.JobPageText = string(text)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []retrieve.Option
	if c.Bool("no-ground") {
		opts = append(opts, retrieve.WithGrounder(nil))
	}

	retriever, err := db.NewRetriever(opts...)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}
	defer retriever.Release()

	result, err := retriever.Retrieve(context.Background(), query)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	fmt.Printf("Status: %s\n", result.Status)
	if len(result.RoleKeywords) > 0 {
		fmt.Printf("Role keywords: %s\n", strings.Join(result.RoleKeywords, ", "))
	}
	printSnippets("Facts", result.FactSnippets)
	printSnippets("Company", result.CompanySnippets)
	printSnippets("Voice", result.VoiceSnippets)
	printSnippets("Profile", result.ProfileSnippets)
	fmt.Printf("\nEvidence:\n%s\n", result.EvidenceBlock)
	return nil
}

func printSnippets(label string, snippets []core.Snippet) {
	if len(snippets) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", label)
	for i, snippet := range snippets {
		fmt.Printf("%d: [%.3f] %s\n", i+1, snippet.Score, snippet.Text)
	}
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &reembed.Config{
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

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if laneName := c.String("lane"); laneName != "" {
		lane := core.Lane(laneName)
		if !lane.Valid() {
			return fmt.Errorf("unknown lane %q", laneName)
		}
		if err := reembedder.Run(ctx, lane); err != nil {
			return fmt.Errorf("reembedding failed: %w", err)
		}
		return nil
	}

	if err := reembedder.RunAll(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
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
