package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/analyzer"
	"github.com/firefly/text-analyzer/internal/frequency"
	"github.com/firefly/text-analyzer/internal/source"
	"github.com/firefly/text-analyzer/internal/tokenizer"
)

// queueTargets sends each target to the job channel
func queueTargets(ctx context.Context, logger *slog.Logger, targets []string, jobCh chan<- DocumentJob) {
	for i, target := range targets {
		select {
		case jobCh <- DocumentJob{Target: target}:
			if (i+1)%1000 == 0 {
				logger.Debug("Queued documents", "count", i+1)
			}
		case <-ctx.Done():
			return
		}
	}
	logger.Debug("Finished queueing documents", "count", len(targets))
}

// loaderWorker reads, fetches or parses each target into a document
func loaderWorker(
	ctx context.Context,
	id int,
	logger *slog.Logger,
	loader *source.Loader,
	jobCh <-chan DocumentJob,
	loadCh chan<- LoadResult,
) {
	for {
		select {
		case job, ok := <-jobCh:
			if !ok {
				return
			}

			doc, err := loader.Load(ctx, job.Target)
			logger.Debug("Document loaded", "worker", id, "target", job.Target, "error", err)

			select {
			case loadCh <- LoadResult{Target: job.Target, Document: doc, Error: err}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// analyzerWorker builds an independent analyzer per document
func analyzerWorker(
	ctx context.Context,
	id int,
	logger *slog.Logger,
	rule tokenizer.SentenceRule,
	loadCh <-chan LoadResult,
	resultsCh chan<- aggregator.DocumentResult,
	errorCh chan<- error,
) {
	for {
		select {
		case loaded, ok := <-loadCh:
			if !ok {
				return
			}

			var result aggregator.DocumentResult
			err := loaded.Error
			if err == nil {
				result, err = analyzeDocument(loaded.Document, rule)
			}

			if err != nil {
				select {
				case errorCh <- fmt.Errorf("%s: %w", loaded.Target, err):
				case <-ctx.Done():
					return
				}
				continue
			}

			logger.Debug("Document analyzed", "worker", id, "source", result.Name, "words", result.Words)

			select {
			case resultsCh <- result:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// analyzeDocument computes the per-document figures the aggregator merges.
// A document without words still counts, with zero words and sentences.
func analyzeDocument(doc source.Document, rule tokenizer.SentenceRule) (aggregator.DocumentResult, error) {
	a, err := analyzer.New(doc.Text, analyzer.WithSentenceRule(rule))
	if err != nil {
		return aggregator.DocumentResult{}, err
	}

	result := aggregator.DocumentResult{
		Name:       doc.Name,
		Characters: a.CharacterCount(),
	}

	table, err := a.WordFrequency(frequency.OrderAlphabetical)
	if errors.Is(err, analyzer.ErrNoWords) {
		return result, nil
	}
	if err != nil {
		return aggregator.DocumentResult{}, err
	}
	result.WordCounts = table
	result.Words = table.Total()

	result.Sentences, err = a.SentenceCount()
	if err != nil {
		return aggregator.DocumentResult{}, err
	}

	return result, nil
}

// aggregatorWorker collects results into the aggregator
func aggregatorWorker(ctx context.Context, agg *aggregator.Aggregator, resultsCh <-chan aggregator.DocumentResult) {
	for {
		select {
		case result, ok := <-resultsCh:
			if !ok {
				return
			}
			agg.AddResult(result)

		case <-ctx.Done():
			return
		}
	}
}
