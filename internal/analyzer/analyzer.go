// Package analyzer computes whole-text statistics: counts, averages and
// frequency tables over one immutable text.
//
// An Analyzer caches derived token sequences on first use. It is not safe for
// concurrent use; independent texts should each get their own Analyzer.
package analyzer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/firefly/text-analyzer/internal/frequency"
	"github.com/firefly/text-analyzer/internal/tokenizer"
	"github.com/firefly/text-analyzer/internal/validator"
)

var (
	// ErrEmptyInput is returned when an analyzer is built from an empty text
	ErrEmptyInput = errors.New("invalid input: there are no characters in the string")

	// ErrNoWords is returned when an operation needs at least one word
	ErrNoWords = errors.New("there are no words in the string")

	// ErrNoLetters is returned when an operation needs at least one letter
	ErrNoLetters = errors.New("there are no letters in the string")
)

// Option configures an Analyzer
type Option func(*Analyzer)

// WithSentenceRule selects how the text is split into sentences
func WithSentenceRule(rule tokenizer.SentenceRule) Option {
	return func(a *Analyzer) {
		a.sentenceRule = rule
	}
}

// Analyzer exposes statistics about a single text
type Analyzer struct {
	text         string
	sentenceRule tokenizer.SentenceRule

	// Lazily computed token sequences, nil until first use
	words     []string
	letters   []string
	sentences []string
	lines     []string
}

// New creates an Analyzer for text
func New(text string, opts ...Option) (*Analyzer, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	a := &Analyzer{
		text:         text,
		sentenceRule: tokenizer.SentenceRuleBoundary,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Text returns the analyzed text
func (a *Analyzer) Text() string {
	return a.text
}

// SentenceRule returns the rule used to split sentences
func (a *Analyzer) SentenceRule() tokenizer.SentenceRule {
	return a.sentenceRule
}

// CharacterCount returns the number of characters, newlines excluded
func (a *Analyzer) CharacterCount() int {
	return utf8.RuneCountInString(a.text) - strings.Count(a.text, "\n")
}

// WordCount returns the number of words in the text
func (a *Analyzer) WordCount() (int, error) {
	words, err := a.requireWords()
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// LetterFrequency counts every letter, case-insensitively, in the given order
func (a *Analyzer) LetterFrequency(order frequency.Order) (frequency.Table, error) {
	letters := a.cachedLetters()
	if len(letters) == 0 {
		return frequency.Table{}, ErrNoLetters
	}
	return frequency.Apply(order, frequency.Count(letters)), nil
}

// WordFrequency counts every word, case-insensitively, in the given order
func (a *Analyzer) WordFrequency(order frequency.Order) (frequency.Table, error) {
	words, err := a.requireWords()
	if err != nil {
		return frequency.Table{}, err
	}
	return frequency.Apply(order, frequency.Count(tokenizer.NormalizeAll(words))), nil
}

// SpecificWordCount counts the words of the text equal to word, ignoring case
// and Unicode composition the same way WordFrequency does. The word is
// validated first; zero is returned when it does not occur.
func (a *Analyzer) SpecificWordCount(word string) (int, error) {
	if err := validator.Validate(word); err != nil {
		return 0, err
	}
	return tokenizer.CountWholeWord(a.text, word, true), nil
}

// LineCount returns the number of lines, empty lines included
func (a *Analyzer) LineCount() int {
	return len(a.cachedLines())
}

// NonEmptyLineCount returns the number of lines holding non-whitespace content
func (a *Analyzer) NonEmptyLineCount() int {
	return a.countLines(func(trimmed string) bool {
		return trimmed != ""
	})
}

// NonEmptyNonCommentLineCount returns the number of non-empty lines that do
// not start with / or *, a heuristic for source code comment lines
func (a *Analyzer) NonEmptyNonCommentLineCount() int {
	return a.countLines(func(trimmed string) bool {
		return trimmed != "" &&
			!strings.HasPrefix(trimmed, "/") &&
			!strings.HasPrefix(trimmed, "*")
	})
}

// ParagraphCount returns the number of paragraphs, at least 1
func (a *Analyzer) ParagraphCount() int {
	return max(1, len(tokenizer.Paragraphs(a.text)))
}

// SentenceCount returns the number of sentences. Sentences are only counted
// in text that holds words.
func (a *Analyzer) SentenceCount() (int, error) {
	sentences, err := a.requireSentences()
	if err != nil {
		return 0, err
	}
	return len(sentences), nil
}

// AverageWordsPerSentence returns words per sentence rounded half away from zero
func (a *Analyzer) AverageWordsPerSentence() (int, error) {
	words, err := a.WordCount()
	if err != nil {
		return 0, err
	}
	sentences, err := a.SentenceCount()
	if err != nil {
		return 0, err
	}
	return roundedRatio(words, sentences), nil
}

// AverageSentencesPerParagraph returns sentences per paragraph rounded half
// away from zero
func (a *Analyzer) AverageSentencesPerParagraph() (int, error) {
	sentences, err := a.SentenceCount()
	if err != nil {
		return 0, err
	}
	return roundedRatio(sentences, a.ParagraphCount()), nil
}

// FirstWordFrequency counts the first word of every sentence, keeping the
// original casing
func (a *Analyzer) FirstWordFrequency(order frequency.Order) (frequency.Table, error) {
	sentences, err := a.requireSentences()
	if err != nil {
		return frequency.Table{}, err
	}

	firstWords := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		word, err := tokenizer.FirstWordOf(sentence)
		if err != nil {
			return frequency.Table{}, fmt.Errorf("collecting first words: %w", err)
		}
		firstWords = append(firstWords, word)
	}

	return frequency.Apply(order, frequency.Count(firstWords)), nil
}

func (a *Analyzer) requireWords() ([]string, error) {
	words := a.cachedWords()
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

func (a *Analyzer) requireSentences() ([]string, error) {
	if _, err := a.requireWords(); err != nil {
		return nil, err
	}
	if a.sentences == nil {
		a.sentences = tokenizer.Sentences(a.text, a.sentenceRule)
	}
	return a.sentences, nil
}

func (a *Analyzer) cachedWords() []string {
	if a.words == nil {
		a.words = tokenizer.Words(a.text)
	}
	return a.words
}

func (a *Analyzer) cachedLetters() []string {
	if a.letters == nil {
		a.letters = tokenizer.LettersLowercased(a.text)
	}
	return a.letters
}

func (a *Analyzer) cachedLines() []string {
	if a.lines == nil {
		a.lines = tokenizer.Lines(a.text)
	}
	return a.lines
}

func (a *Analyzer) countLines(keep func(trimmed string) bool) int {
	count := 0
	for _, line := range a.cachedLines() {
		if keep(strings.TrimSpace(line)) {
			count++
		}
	}
	return count
}

func roundedRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den)))
}
