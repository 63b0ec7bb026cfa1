// Package report renders analysis, replacement and batch results as JSON or
// as styled plain text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/analyzer"
	"github.com/firefly/text-analyzer/internal/frequency"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// Analysis is the result of analyzing one document
type Analysis struct {
	Source  string           `json:"source"`
	Summary analyzer.Summary `json:"summary"`
}

// WordCount is the result of counting one word in a document
type WordCount struct {
	Source string `json:"source"`
	Word   string `json:"word"`
	Count  int    `json:"count"`
}

// Replacement is the result of replacing words in a document
type Replacement struct {
	Source           string `json:"source"`
	From             string `json:"from"`
	To               string `json:"to"`
	CasedVariants    bool   `json:"cased_variants"`
	Replacements     int    `json:"replacements"`
	HasBeenUpdated   bool   `json:"has_been_updated"`
	LengthDelta      string `json:"length_delta"`
	SignedDelta      int    `json:"signed_delta"`
	OriginalIsLonger bool   `json:"original_is_longer"`
	Description      string `json:"description"`
	UpdatedText      string `json:"updated_text"`
}

// Batch is the aggregate of analyzing many documents
type Batch struct {
	RunID                  string           `json:"run_id"`
	Stats                  aggregator.Stats `json:"stats"`
	HTMLExtractionFailures int64            `json:"html_extraction_failures"`
	TopWords               frequency.Table  `json:"top_words"`
	Errors                 []string         `json:"errors,omitempty"`
}

// WriteAnalysis renders an analysis, limiting each table to top entries
// (0 keeps all)
func WriteAnalysis(w io.Writer, format string, a Analysis, top int) error {
	s := a.Summary
	s.LetterFrequency = limit(s.LetterFrequency, top)
	s.WordFrequency = limit(s.WordFrequency, top)
	s.FirstWordFrequency = limit(s.FirstWordFrequency, top)
	a.Summary = s

	if isJSON(format) {
		return writeJSON(w, a)
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Text statistics: "+a.Source) + "\n")
	row(&b, "Characters (excluding newlines)", s.Characters)
	row(&b, "Lines", s.Lines)
	row(&b, "Non-empty lines", s.NonEmptyLines)
	row(&b, "Non-empty, non-comment lines", s.NonEmptyNonCommentLines)
	row(&b, "Paragraphs", s.Paragraphs)

	if !s.HasWords {
		b.WriteString(mutedStyle.Render(analyzer.ErrNoWords.Error()) + "\n")
	} else {
		row(&b, "Words", s.Words)
		row(&b, "Sentences", s.Sentences)
		row(&b, "Average words per sentence", s.AverageWordsPerSentence)
		row(&b, "Average sentences per paragraph", s.AverageSentencesPerParagraph)
	}

	tableSection(&b, "Letter frequency ("+s.Order+")", s.LetterFrequency)
	tableSection(&b, "Word frequency ("+s.Order+")", s.WordFrequency)
	tableSection(&b, "First words of sentences ("+s.Order+")", s.FirstWordFrequency)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteWordCount renders a single word count
func WriteWordCount(w io.Writer, format string, c WordCount) error {
	if isJSON(format) {
		return writeJSON(w, c)
	}
	_, err := fmt.Fprintf(w, "%q appears %d time(s) in %s\n", c.Word, c.Count, c.Source)
	return err
}

// WriteReplacement renders the updated text and how its length changed
func WriteReplacement(w io.Writer, format string, r Replacement) error {
	if isJSON(format) {
		return writeJSON(w, r)
	}

	var b strings.Builder
	b.WriteString(r.UpdatedText)
	if !strings.HasSuffix(r.UpdatedText, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d replacement(s). %s", r.Replacements, r.Description)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBatch renders corpus-wide totals and the most frequent words
func WriteBatch(w io.Writer, format string, batch Batch) error {
	if isJSON(format) {
		return writeJSON(w, batch)
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Batch statistics") + "\n")
	if batch.RunID != "" {
		b.WriteString(mutedStyle.Render("run "+batch.RunID) + "\n")
	}
	row(&b, "Documents analyzed", batch.Stats.Documents)
	row(&b, "Documents failed", batch.Stats.Failed)
	row(&b, "Total words", batch.Stats.TotalWords)
	row(&b, "Unique words", batch.Stats.UniqueWords)
	row(&b, "Total sentences", batch.Stats.TotalSentences)
	row(&b, "Characters", batch.Stats.Characters)
	row(&b, "HTML pages without text", batch.HTMLExtractionFailures)
	row(&b, "Processing time (seconds)", fmt.Sprintf("%.2f", batch.Stats.ElapsedSeconds))

	tableSection(&b, "Top words", &batch.TopWords)

	for _, msg := range batch.Errors {
		b.WriteString(mutedStyle.Render("error: "+msg) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func row(b *strings.Builder, label string, value any) {
	fmt.Fprintf(b, "%-34s %v\n", label, value)
}

func tableSection(b *strings.Builder, title string, t *frequency.Table) {
	if t == nil || t.Len() == 0 {
		return
	}
	b.WriteString("\n" + headingStyle.Render(title) + "\n")
	for _, e := range t.Entries {
		row(b, "  "+e.Key, e.Count)
	}
}

func limit(t *frequency.Table, n int) *frequency.Table {
	if t == nil || n <= 0 {
		return t
	}
	top := t.Top(n)
	return &top
}

func isJSON(format string) bool {
	return strings.EqualFold(format, FormatJSON)
}

func writeJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result to JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
