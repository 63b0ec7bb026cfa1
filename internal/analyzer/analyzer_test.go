package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly/text-analyzer/internal/frequency"
	"github.com/firefly/text-analyzer/internal/tokenizer"
	"github.com/firefly/text-analyzer/internal/validator"
)

const severalSentences = "This is a sentence. This is yet another sentence. And this is a third one."

func mustNew(t *testing.T, text string, opts ...Option) *Analyzer {
	t.Helper()
	a, err := New(text, opts...)
	require.NoError(t, err)
	return a
}

func TestNew_EmptyInput(t *testing.T) {
	a, err := New("")

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, a)
}

func TestSingleWord(t *testing.T) {
	a := mustNew(t, "Word.")

	words, err := a.WordCount()
	require.NoError(t, err)
	assert.Equal(t, 1, words)
	assert.Equal(t, 5, a.CharacterCount())

	letters, err := a.LetterFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, []frequency.Entry{{Key: "d", Count: 1}, {Key: "o", Count: 1}, {Key: "r", Count: 1}, {Key: "w", Count: 1}}, letters.Entries)

	avg, err := a.AverageWordsPerSentence()
	require.NoError(t, err)
	assert.Equal(t, 1, avg)
}

func TestOnlyPunctuation(t *testing.T) {
	a := mustNew(t, ".")

	_, err := a.WordCount()
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = a.LetterFrequency(frequency.OrderAlphabetical)
	assert.ErrorIs(t, err, ErrNoLetters)

	_, err = a.WordFrequency(frequency.OrderAlphabetical)
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = a.SentenceCount()
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = a.AverageWordsPerSentence()
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = a.AverageSentencesPerParagraph()
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = a.FirstWordFrequency(frequency.OrderAlphabetical)
	assert.ErrorIs(t, err, ErrNoWords)

	assert.Equal(t, 1, a.LineCount())
	assert.Equal(t, 1, a.ParagraphCount())
	assert.Equal(t, 1, a.CharacterCount())
}

func TestNoWords_BlankAndNumbers(t *testing.T) {
	for _, text := range []string{" ", "123", "12 34\n56", "!?"} {
		a := mustNew(t, text)

		_, err := a.WordCount()
		assert.ErrorIs(t, err, ErrNoWords, "text %q", text)

		_, err = a.LetterFrequency(frequency.OrderOccurrence)
		assert.ErrorIs(t, err, ErrNoLetters, "text %q", text)
	}
}

func TestWordFrequency(t *testing.T) {
	a := mustNew(t, severalSentences)

	alpha, err := a.WordFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, []frequency.Entry{
		{Key: "a", Count: 2}, {Key: "and", Count: 1}, {Key: "another", Count: 1}, {Key: "is", Count: 3}, {Key: "one", Count: 1},
		{Key: "sentence", Count: 2}, {Key: "third", Count: 1}, {Key: "this", Count: 3}, {Key: "yet", Count: 1},
	}, alpha.Entries)

	occurrence, err := a.WordFrequency(frequency.OrderOccurrence)
	require.NoError(t, err)
	assert.Equal(t, []frequency.Entry{
		{Key: "is", Count: 3}, {Key: "this", Count: 3}, {Key: "a", Count: 2}, {Key: "sentence", Count: 2}, {Key: "and", Count: 1},
		{Key: "another", Count: 1}, {Key: "one", Count: 1}, {Key: "third", Count: 1}, {Key: "yet", Count: 1},
	}, occurrence.Entries)

	again, err := a.WordFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, alpha, again)
}

func TestSentenceMetrics(t *testing.T) {
	a := mustNew(t, severalSentences)

	sentences, err := a.SentenceCount()
	require.NoError(t, err)
	assert.Equal(t, 3, sentences)

	avg, err := a.AverageWordsPerSentence()
	require.NoError(t, err)
	assert.Equal(t, 5, avg)

	perParagraph, err := a.AverageSentencesPerParagraph()
	require.NoError(t, err)
	assert.Equal(t, 3, perParagraph)
}

func TestAverageWordsPerSentence_RoundsHalfUp(t *testing.T) {
	a := mustNew(t, "a b c. d e.")

	avg, err := a.AverageWordsPerSentence()
	require.NoError(t, err)
	assert.Equal(t, 3, avg)
}

func TestParagraphMetrics(t *testing.T) {
	a := mustNew(t, "One. Two. Three.\n\nFour.\n\nFive. Six.")

	assert.Equal(t, 3, a.ParagraphCount())

	avg, err := a.AverageSentencesPerParagraph()
	require.NoError(t, err)
	assert.Equal(t, 2, avg)

	assert.Equal(t, 1, mustNew(t, "\n\n").ParagraphCount())
}

func TestFirstWordFrequency(t *testing.T) {
	a := mustNew(t, severalSentences)

	alpha, err := a.FirstWordFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, []frequency.Entry{{Key: "And", Count: 1}, {Key: "This", Count: 2}}, alpha.Entries)

	occurrence, err := a.FirstWordFrequency(frequency.OrderOccurrence)
	require.NoError(t, err)
	assert.Equal(t, []string{"This", "And"}, occurrence.Keys())
}

func TestFirstWordFrequency_SentenceWithoutWord(t *testing.T) {
	a := mustNew(t, "Hello. 123.")

	_, err := a.FirstWordFrequency(frequency.OrderAlphabetical)
	assert.ErrorIs(t, err, tokenizer.ErrNoWordInSentence)
}

func TestSpecificWordCount(t *testing.T) {
	a := mustNew(t, severalSentences)

	tests := []struct {
		word string
		want int
	}{
		{"this", 3},
		{"IS", 3},
		{"sentence", 2},
		{"sent", 0},
		{"hello", 0},
	}
	for _, tt := range tests {
		got, err := a.SpecificWordCount(tt.word)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "word %q", tt.word)
	}
}

// TestSpecificWordCount_MatchesWordFrequency tests that counts agree with the
// words WordFrequency reports, connector-joined and decomposed ones included
func TestSpecificWordCount_MatchesWordFrequency(t *testing.T) {
	a := mustNew(t, "I don't send e-mail. Cafe\u0301 or café?")

	table, err := a.WordFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, []string{"café", "don't", "e-mail", "i", "or", "send"}, table.Keys())

	for _, e := range table.Entries {
		got, err := a.SpecificWordCount(e.Key)
		require.NoError(t, err)
		assert.Equal(t, e.Count, got, "word %q", e.Key)
	}

	for _, piece := range []string{"mail", "don", "t"} {
		got, err := a.SpecificWordCount(piece)
		require.NoError(t, err)
		assert.Zero(t, got, "word %q", piece)
	}
}

// TestSpecificWordCount_ValidatesFirst tests that the word is checked even
// when the text has no words at all
func TestSpecificWordCount_ValidatesFirst(t *testing.T) {
	a := mustNew(t, ".")

	count, err := a.SpecificWordCount("word")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = a.SpecificWordCount("a!c")
	assert.ErrorIs(t, err, validator.ErrInvalidFormat)

	_, err = a.SpecificWordCount("")
	assert.ErrorIs(t, err, validator.ErrEmptyWord)
}

func TestLineCounts(t *testing.T) {
	a := mustNew(t, "first line\n\n  // comment\n * star\ncode();\n   ")

	assert.Equal(t, 6, a.LineCount())
	assert.Equal(t, 4, a.NonEmptyLineCount())
	assert.Equal(t, 2, a.NonEmptyNonCommentLineCount())

	blank := mustNew(t, " ")
	assert.Equal(t, 1, blank.LineCount())
	assert.Equal(t, 0, blank.NonEmptyLineCount())
}

func TestCharacterCount_ExcludesNewlines(t *testing.T) {
	for _, text := range []string{"a\nb\n", "café\n", "\n\n\n", severalSentences} {
		a := mustNew(t, text)
		runes := []rune(text)
		newlines := 0
		for _, r := range runes {
			if r == '\n' {
				newlines++
			}
		}
		assert.Equal(t, len(runes)-newlines, a.CharacterCount(), "text %q", text)
	}
}

func TestLetterFrequency_Unicode(t *testing.T) {
	a := mustNew(t, "Éé e")

	letters, err := a.LetterFrequency(frequency.OrderAlphabetical)
	require.NoError(t, err)
	assert.Equal(t, []frequency.Entry{{Key: "e", Count: 1}, {Key: "é", Count: 2}}, letters.Entries)

	occurrence, err := a.LetterFrequency(frequency.OrderOccurrence)
	require.NoError(t, err)
	assert.Equal(t, []string{"é", "e"}, occurrence.Keys())
}

func TestWithSentenceRule(t *testing.T) {
	text := "Version 1.5 is out."

	boundary := mustNew(t, text)
	n, err := boundary.SentenceCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	punctuation := mustNew(t, text, WithSentenceRule(tokenizer.SentenceRulePunctuation))
	assert.Equal(t, tokenizer.SentenceRulePunctuation, punctuation.SentenceRule())
	n, err = punctuation.SentenceCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
