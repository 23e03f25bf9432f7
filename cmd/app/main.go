package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/starford/ladle/internal"
	"github.com/starford/ladle/internal/index"
	"github.com/starford/ladle/internal/mcpserver"
	pkgconfig "github.com/starford/ladle/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if p := cmd.String("corpus"); p != "" {
		cfg.Corpus.Path = p
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runGenerate(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	res, err := internal.Generate(cfg, logger)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"分类", "数量"})
	cats := make([]string, 0, len(res.Stats.Categories))
	for c := range res.Stats.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		t.AppendRow(table.Row{c, res.Stats.Categories[c]})
	}
	t.AppendFooter(table.Row{"总计", res.Stats.Total})
	t.Render()

	if res.FirstRun {
		fmt.Printf("首次生成，共 %d 个菜谱。\n", res.Stats.Total)
	} else if res.Delta.Empty() {
		fmt.Println("菜谱数据无变化。")
	} else {
		fmt.Printf("新增 %d 个，移除 %d 个，总数变化 %+d。\n",
			len(res.Delta.Added), len(res.Delta.Removed), res.Delta.TotalChange)
	}
	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Stdout carries the MCP protocol, so logging goes to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	return mcpserver.New(db).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "ladle",
		Usage: "Recipe corpus tooling: generate normalized records, serve a search API, or expose an MCP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "Path to the recipe corpus root (overrides config)",
				Sources: cli.EnvVars("APP_CORPUS_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Parse the corpus and write records, snapshot, and changelog",
				Action: runGenerate,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with live corpus watching",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the recipe index over the Model Context Protocol on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
