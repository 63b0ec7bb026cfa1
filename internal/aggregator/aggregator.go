package aggregator

import (
	"sync"
	"time"

	"github.com/firefly/text-analyzer/internal/frequency"
)

// DocumentResult represents the analysis of a single document
type DocumentResult struct {
	Name       string
	Words      int
	Sentences  int
	Characters int
	WordCounts frequency.Table
}

// Aggregator merges per-document results into corpus-wide totals.
// It is safe for concurrent use.
type Aggregator struct {
	mu               sync.RWMutex
	globalWordCounts map[string]int
	totalWords       int
	totalSentences   int
	totalCharacters  int
	documents        int
	failed           int
	startTime        time.Time
}

// Stats is a snapshot of the aggregated totals
type Stats struct {
	Documents      int     `json:"documents"`
	Failed         int     `json:"failed"`
	TotalWords     int     `json:"total_words"`
	UniqueWords    int     `json:"unique_words"`
	TotalSentences int     `json:"total_sentences"`
	Characters     int     `json:"characters"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// New creates a new Aggregator
func New() *Aggregator {
	return &Aggregator{
		globalWordCounts: make(map[string]int),
		startTime:        time.Now(),
	}
}

// AddResult adds a document result to the aggregate
func (a *Aggregator) AddResult(result DocumentResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range result.WordCounts.Entries {
		a.globalWordCounts[e.Key] += e.Count
	}

	a.totalWords += result.Words
	a.totalSentences += result.Sentences
	a.totalCharacters += result.Characters
	a.documents++
}

// AddFailure records a document that could not be analyzed
func (a *Aggregator) AddFailure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failed++
}

// TopWords returns the n most frequent words, count descending then word
// ascending. n <= 0 returns every word.
func (a *Aggregator) TopWords(n int) frequency.Table {
	a.mu.RLock()
	tokens := make([]frequency.Entry, 0, len(a.globalWordCounts))
	for word, count := range a.globalWordCounts {
		tokens = append(tokens, frequency.Entry{Key: word, Count: count})
	}
	a.mu.RUnlock()

	table := frequency.Apply(frequency.OrderOccurrence, frequency.Table{Entries: tokens})
	if n <= 0 {
		return table
	}
	return table.Top(n)
}

// Stats returns current aggregate statistics
func (a *Aggregator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Stats{
		Documents:      a.documents,
		Failed:         a.failed,
		TotalWords:     a.totalWords,
		UniqueWords:    len(a.globalWordCounts),
		TotalSentences: a.totalSentences,
		Characters:     a.totalCharacters,
		ElapsedSeconds: time.Since(a.startTime).Seconds(),
	}
}
