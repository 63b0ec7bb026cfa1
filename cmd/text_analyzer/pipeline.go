package main

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/source"
	"github.com/firefly/text-analyzer/internal/tokenizer"
)

// Pipeline data structures for passing data between stages
type DocumentJob struct {
	Target string
}

type LoadResult struct {
	Target   string
	Document source.Document
	Error    error
}

// WorkerConfig holds configuration for worker pool sizes
type WorkerConfig struct {
	Loaders   int
	Analyzers int
}

// runPipeline loads and analyzes every target concurrently, feeding the
// aggregator. It returns one message per failed document, sorted.
func runPipeline(
	ctx context.Context,
	logger *slog.Logger,
	loader *source.Loader,
	rule tokenizer.SentenceRule,
	targets []string,
	agg *aggregator.Aggregator,
	workerCfg WorkerConfig,
) []string {
	jobCh := make(chan DocumentJob, len(targets))
	loadCh := make(chan LoadResult, 50)
	resultsCh := make(chan aggregator.DocumentResult, 100)
	errorCh := make(chan error, 100)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobCh)
		queueTargets(ctx, logger, targets, jobCh)
	}()

	// Separate wait groups per stage so channels close in cascade
	loaderWg := &sync.WaitGroup{}
	analyzerWg := &sync.WaitGroup{}

	for i := 0; i < workerCfg.Loaders; i++ {
		wg.Add(1)
		loaderWg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer loaderWg.Done()
			loaderWorker(ctx, id, logger, loader, jobCh, loadCh)
		}(i)
	}

	for i := 0; i < workerCfg.Analyzers; i++ {
		wg.Add(1)
		analyzerWg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer analyzerWg.Done()
			analyzerWorker(ctx, id, logger, rule, loadCh, resultsCh, errorCh)
		}(i)
	}

	go func() {
		loaderWg.Wait()
		close(loadCh)
	}()

	go func() {
		analyzerWg.Wait()
		close(resultsCh)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		aggregatorWorker(ctx, agg, resultsCh)
	}()

	var messages []string
	errorWg := sync.WaitGroup{}
	errorWg.Add(1)
	go func() {
		defer errorWg.Done()
		for err := range errorCh {
			agg.AddFailure()
			messages = append(messages, err.Error())
			logger.Warn("Document failed", "error", err, "failures", len(messages))
		}
	}()

	wg.Wait()

	close(errorCh)
	errorWg.Wait()

	sort.Strings(messages)
	return messages
}

// calculateWorkerDistribution splits workers between loading (I/O bound)
// and analysis (CPU bound)
func calculateWorkerDistribution(totalWorkers int) WorkerConfig {
	loaders := max(1, (totalWorkers*60)/100)
	analyzers := max(1, totalWorkers-loaders)

	return WorkerConfig{
		Loaders:   loaders,
		Analyzers: analyzers,
	}
}
