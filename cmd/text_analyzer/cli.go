package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/firefly/text-analyzer/internal/analyzer"
	"github.com/firefly/text-analyzer/internal/config"
	"github.com/firefly/text-analyzer/internal/fetcher"
	"github.com/firefly/text-analyzer/internal/parser"
	"github.com/firefly/text-analyzer/internal/source"
)

// CLI encapsulates the command-line interface with its dependencies
type CLI struct {
	version    string
	cfg        *config.Config
	configPath string
	stderr     io.Writer
	logger     *slog.Logger
	rootCmd    *cobra.Command
}

func newCLI(version string, stdout, stderr io.Writer) *CLI {
	c := &CLI{
		version: version,
		cfg:     config.Default(),
		stderr:  stderr,
		logger:  slog.Default(),
	}
	c.setupCommands(stdout)
	return c
}

func (c *CLI) setupCommands(stdout io.Writer) {
	c.rootCmd = &cobra.Command{
		Use:          "text-analyzer",
		Short:        "Text statistics and case-aware word replacement",
		Version:      c.version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initApp(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(c.stderr)

	flags := c.rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Path to a YAML or TOML (.toml) config file; flags override its values")
	c.cfg.BindFlags(flags)

	c.rootCmd.AddCommand(c.newStatsCommand())
	c.rootCmd.AddCommand(c.newCountCommand())
	c.rootCmd.AddCommand(c.newReplaceCommand())
	c.rootCmd.AddCommand(c.newBatchCommand())
}

// Run executes the CLI, cancelling work on SIGINT or SIGTERM
func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.rootCmd.ExecuteContext(ctx)
}

// initApp loads the config file, validates the result and sets up logging
func (c *CLI) initApp(cmd *cobra.Command) error {
	if c.configPath != "" {
		fileCfg, err := config.LoadFile(c.configPath)
		if err != nil {
			return err
		}
		if err := fileCfg.ApplyChanged(cmd.Flags()); err != nil {
			return err
		}
		c.cfg = fileCfg
	}

	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	level := slog.LevelInfo
	if c.cfg.Verbose {
		level = slog.LevelDebug
	}
	if c.cfg.Silent {
		level = slog.Level(100)
	}
	c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)

	c.logger.Debug("Configuration loaded",
		"config_file", c.configPath,
		"order", c.cfg.Order,
		"sentence_rule", c.cfg.SentenceRule,
		"format", c.cfg.Format,
		"workers", c.cfg.Workers,
		"rate_limit", c.cfg.RateLimit)

	return nil
}

func (c *CLI) newLoader(stdin io.Reader) *source.Loader {
	fetch := fetcher.New(c.cfg.RateLimit, c.cfg.UserAgent, c.logger)
	loader := source.NewLoader(fetch, parser.New(c.cfg.HTMLSelectors, c.logger))
	loader.SetStdin(stdin)
	return loader
}

func (c *CLI) analyzerOptions() ([]analyzer.Option, error) {
	rule, err := c.cfg.Rule()
	if err != nil {
		return nil, err
	}
	return []analyzer.Option{analyzer.WithSentenceRule(rule)}, nil
}

// newAnalyzer loads target and builds an analyzer over its text
func (c *CLI) newAnalyzer(cmd *cobra.Command, target string) (*analyzer.Analyzer, source.Document, error) {
	doc, err := c.newLoader(cmd.InOrStdin()).Load(cmd.Context(), target)
	if err != nil {
		return nil, source.Document{}, err
	}

	opts, err := c.analyzerOptions()
	if err != nil {
		return nil, source.Document{}, err
	}

	a, err := analyzer.New(doc.Text, opts...)
	if err != nil {
		return nil, source.Document{}, fmt.Errorf("analyzing %s: %w", doc.Name, err)
	}

	c.logger.Debug("Document loaded", "source", doc.Name, "html", doc.HTML, "characters", a.CharacterCount())
	return a, doc, nil
}
