package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/config"
	"github.com/firefly/text-analyzer/internal/mutator"
	"github.com/firefly/text-analyzer/internal/report"
)

func (c *CLI) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file|url|->",
		Short: "Print character, word, line, paragraph and sentence statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, doc, err := c.newAnalyzer(cmd, args[0])
			if err != nil {
				return err
			}

			order, err := c.cfg.FrequencyOrder()
			if err != nil {
				return err
			}

			summary, err := a.Summary(order)
			if err != nil {
				return fmt.Errorf("summarizing %s: %w", doc.Name, err)
			}

			return report.WriteAnalysis(cmd.OutOrStdout(), c.cfg.Format,
				report.Analysis{Source: doc.Name, Summary: summary}, c.cfg.TopWords)
		},
	}
}

func (c *CLI) newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file|url|-> <word>",
		Short: "Count case-insensitive whole-word occurrences of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, doc, err := c.newAnalyzer(cmd, args[0])
			if err != nil {
				return err
			}

			n, err := a.SpecificWordCount(args[1])
			if err != nil {
				return err
			}

			return report.WriteWordCount(cmd.OutOrStdout(), c.cfg.Format,
				report.WordCount{Source: doc.Name, Word: args[1], Count: n})
		},
	}
}

func (c *CLI) newReplaceCommand() *cobra.Command {
	var (
		from  []string
		to    []string
		cased bool
	)

	cmd := &cobra.Command{
		Use:   "replace <file|url|-> --from word --to word [--cased]",
		Short: "Replace whole words and report how the length changed",
		Long: `Replace whole words in a document. Repeat --from/--to to apply several
replacements in order; each one operates on the result of the previous one.
With --cased the target must be lowercase or capitalized and both its
lowercase and capitalized forms are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(from) != len(to) {
				return fmt.Errorf("got %d --from values but %d --to values", len(from), len(to))
			}

			doc, err := c.newLoader(cmd.InOrStdin()).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			m, err := mutator.New(doc.Text)
			if err != nil {
				return fmt.Errorf("loading %s: %w", doc.Name, err)
			}

			for i := range from {
				if cased {
					_, err = m.ReplaceCasedVariants(from[i], to[i])
				} else {
					_, err = m.ReplaceExact(from[i], to[i])
				}
				if err != nil {
					return fmt.Errorf("replacing %q: %w", from[i], err)
				}
				c.logger.Debug("Replacement applied", "from", from[i], "to", to[i], "state", m.State())
			}

			return report.WriteReplacement(cmd.OutOrStdout(), c.cfg.Format, report.Replacement{
				Source:           doc.Name,
				From:             joinWords(from),
				To:               joinWords(to),
				CasedVariants:    cased,
				Replacements:     m.Replacements(),
				HasBeenUpdated:   m.HasBeenUpdated(),
				LengthDelta:      m.LengthDelta(),
				SignedDelta:      m.SignedLengthDelta(),
				OriginalIsLonger: m.OriginalIsLonger(),
				Description:      m.DifferenceDescription(),
				UpdatedText:      m.Updated(),
			})
		},
	}

	cmd.Flags().StringArrayVar(&from, "from", nil, "Word to replace (repeatable)")
	cmd.Flags().StringArrayVar(&to, "to", nil, "Replacement word (repeatable, paired with --from)")
	cmd.Flags().BoolVar(&cased, "cased", false, "Replace the lowercase and capitalized variants of the word")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) newBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|url>...",
		Short: "Analyze many documents concurrently and report corpus-wide word frequencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateFiles(args); err != nil {
				return fmt.Errorf("file validation error: %w", err)
			}

			rule, err := c.cfg.Rule()
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger := c.logger.With("run_id", runID)

			workerCfg := calculateWorkerDistribution(c.cfg.Workers)
			logger.Info("Starting batch analysis",
				"documents", len(args),
				"loaders", workerCfg.Loaders,
				"analyzers", workerCfg.Analyzers)

			agg := aggregator.New()
			loader := c.newLoader(cmd.InOrStdin())
			errs := runPipeline(cmd.Context(), logger, loader, rule, args, agg, workerCfg)
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			stats := agg.Stats()
			logger.Info("Batch analysis complete",
				"documents", stats.Documents,
				"failed", stats.Failed,
				"html_extraction_failures", loader.HTMLFailures(),
				"elapsed_seconds", stats.ElapsedSeconds)

			return report.WriteBatch(cmd.OutOrStdout(), c.cfg.Format, report.Batch{
				RunID:                  runID,
				Stats:                  stats,
				HTMLExtractionFailures: loader.HTMLFailures(),
				TopWords:               agg.TopWords(c.cfg.TopWords),
				Errors:                 errs,
			})
		},
	}
}

func joinWords(words []string) string {
	return strings.Join(words, ", ")
}
