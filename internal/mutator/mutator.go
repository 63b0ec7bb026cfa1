// Package mutator replaces whole words in a text while keeping the original
// text around for comparison.
package mutator

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/firefly/text-analyzer/internal/analyzer"
	"github.com/firefly/text-analyzer/internal/tokenizer"
	"github.com/firefly/text-analyzer/internal/validator"
)

// ErrEmptyInput is returned when a mutator is built from an empty text
var ErrEmptyInput = analyzer.ErrEmptyInput

// ErrInvalidCaseFormat is returned by ReplaceCasedVariants when the word to
// replace is neither all lower case nor capitalized
var ErrInvalidCaseFormat = errors.New("the word to replace does not match the correct format: " +
	"all letters need to be lower case or the first letter needs to be upper case " +
	"and the rest of the letters be lower case")

// State tells whether the updated text has diverged from the original
type State int

const (
	StateUnmodified State = iota
	StateModified
)

func (s State) String() string {
	if s == StateModified {
		return "modified"
	}
	return "unmodified"
}

// Mutator holds an original text and an updated copy that successive
// replacements are applied to. It is not safe for concurrent use.
type Mutator struct {
	original     string
	updated      string
	state        State
	replacements int
}

// New creates a Mutator whose updated text starts equal to text
func New(text string) (*Mutator, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	return &Mutator{original: text, updated: text}, nil
}

// Original returns the text the mutator was created with
func (m *Mutator) Original() string {
	return m.original
}

// Updated returns the text with all replacements applied
func (m *Mutator) Updated() string {
	return m.updated
}

// State returns StateModified once any replacement changed the text
func (m *Mutator) State() State {
	return m.state
}

// Replacements returns the number of substitutions made so far
func (m *Mutator) Replacements() int {
	return m.replacements
}

// ReplaceExact replaces every case-sensitive whole-word occurrence of
// wordToReplace with newWord and returns the updated text
func (m *Mutator) ReplaceExact(wordToReplace, newWord string) (string, error) {
	if err := validator.ValidateAll(wordToReplace, newWord); err != nil {
		return "", err
	}

	m.replace(wordToReplace, newWord)
	return m.updated, nil
}

// ReplaceCasedVariants replaces the lower case and the capitalized form of
// wordToReplace with the matching form of newWord. wordToReplace itself must
// be in one of those two forms. Other casings in the text, such as all
// capitals, are left alone.
func (m *Mutator) ReplaceCasedVariants(wordToReplace, newWord string) (string, error) {
	if err := validator.ValidateAll(wordToReplace, newWord); err != nil {
		return "", err
	}

	lowerTarget, capitalTarget := casedVariants(wordToReplace)
	if wordToReplace != lowerTarget && wordToReplace != capitalTarget {
		return "", fmt.Errorf("%w: got %q", ErrInvalidCaseFormat, wordToReplace)
	}

	lowerNew, capitalNew := casedVariants(newWord)

	// Two independent passes; the second runs on the output of the first
	m.replace(lowerTarget, lowerNew)
	m.replace(capitalTarget, capitalNew)

	return m.updated, nil
}

// HasBeenUpdated reports whether the updated text differs from the original
func (m *Mutator) HasBeenUpdated() bool {
	return m.updated != m.original
}

// OriginalIsLonger reports whether the original text has more characters
// than the updated text
func (m *Mutator) OriginalIsLonger() bool {
	return m.SignedLengthDelta() < 0
}

// SignedLengthDelta returns the character count of the updated text minus
// that of the original text
func (m *Mutator) SignedLengthDelta() int {
	return utf8.RuneCountInString(m.updated) - utf8.RuneCountInString(m.original)
}

// LengthDelta returns the size of the length difference without its sign.
// Use OriginalIsLonger or SignedLengthDelta for the direction.
func (m *Mutator) LengthDelta() string {
	delta := m.SignedLengthDelta()
	if delta < 0 {
		delta = -delta
	}
	return strconv.Itoa(delta)
}

// DifferenceDescription describes the length difference in a sentence
func (m *Mutator) DifferenceDescription() string {
	delta := m.SignedLengthDelta()

	switch {
	case m.replacements == 0:
		return "No words have been replaced."
	case delta == 0 && !m.HasBeenUpdated():
		return "The replacements did not change the text."
	case delta == 0:
		return "The original text and the updated text are the same length."
	case delta > 0:
		return fmt.Sprintf("The updated text is %d character(s) longer than the original text.", delta)
	default:
		return fmt.Sprintf("The original text is %d character(s) longer than the updated text.", -delta)
	}
}

func (m *Mutator) replace(word, repl string) {
	updated, n := tokenizer.ReplaceWholeWord(m.updated, word, repl)
	m.replacements += n
	if updated != m.updated {
		m.updated = updated
		m.state = StateModified
	}
}

// casedVariants returns word in all lower case and with only its first
// letter in upper case
func casedVariants(word string) (lower, capitalized string) {
	lower = cases.Lower(language.Und).String(word)

	r, size := utf8.DecodeRuneInString(lower)
	capitalized = string(unicode.ToUpper(r)) + lower[size:]

	return lower, capitalized
}
