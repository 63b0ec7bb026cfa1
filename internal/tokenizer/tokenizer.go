// Package tokenizer derives words, letters, sentences, lines and paragraphs
// from raw text. All functions are pure and safe for concurrent use.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNoWordInSentence is returned when a sentence fragment holds no word
var ErrNoWordInSentence = errors.New("there is no word in the sentence")

// SentenceRule selects how text is split into sentences
type SentenceRule int

const (
	// SentenceRuleBoundary splits at terminal punctuation followed by
	// whitespace or end of text, and at newlines
	SentenceRuleBoundary SentenceRule = iota

	// SentenceRulePunctuation splits at every run of . ! or ?
	SentenceRulePunctuation
)

// String returns the configuration name of the rule
func (r SentenceRule) String() string {
	switch r {
	case SentenceRuleBoundary:
		return "boundary"
	case SentenceRulePunctuation:
		return "punctuation"
	default:
		return fmt.Sprintf("SentenceRule(%d)", int(r))
	}
}

// ParseSentenceRule maps a configuration name to a SentenceRule
func ParseSentenceRule(name string) (SentenceRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "boundary":
		return SentenceRuleBoundary, nil
	case "punctuation":
		return SentenceRulePunctuation, nil
	default:
		return 0, fmt.Errorf("unknown sentence rule %q (want boundary or punctuation)", name)
	}
}

// Words returns the words of text in original casing and appearance order.
// The result is never nil.
func Words(text string) []string {
	spans := wordSpans(text)
	words := make([]string, len(spans))
	for i, span := range spans {
		words[i] = text[span[0]:span[1]]
	}
	return words
}

// LettersLowercased case-folds text and returns every letter as its own token
func LettersLowercased(text string) []string {
	folded := Normalize(text)
	letters := make([]string, 0, len(folded))

	for _, r := range folded {
		if unicode.IsLetter(r) {
			letters = append(letters, string(r))
		}
	}

	return letters
}

// Normalize lowercases s and puts it in Unicode NFC form so that composed and
// decomposed spellings count as the same key
func Normalize(s string) string {
	return norm.NFC.String(cases.Lower(language.Und).String(s))
}

// NormalizeAll applies Normalize to every token
func NormalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = Normalize(tok)
	}
	return out
}

// Sentences splits text by rule, trims every fragment and drops empty ones
func Sentences(text string, rule SentenceRule) []string {
	pattern := boundarySentencePattern
	if rule == SentenceRulePunctuation {
		pattern = punctuationSentencePattern
	}

	return trimmedNonEmpty(pattern.Split(text, -1))
}

// Lines splits text on newlines. Content is kept as is apart from a trailing
// carriage return.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Paragraphs splits text on blank lines and drops empty paragraphs
func Paragraphs(text string) []string {
	return trimmedNonEmpty(paragraphPattern.Split(text, -1))
}

// FirstWordOf returns the first word of sentence
func FirstWordOf(sentence string) (string, error) {
	if spans := wordSpans(sentence); len(spans) > 0 {
		return sentence[spans[0][0]:spans[0][1]], nil
	}
	return "", fmt.Errorf("%w: %q", ErrNoWordInSentence, sentence)
}

func trimmedNonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// isConnectorOrOther reports runes that may not start or end a word
func isConnectorOrOther(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsNumber(r)
}
