package analyzer

import (
	"errors"

	"github.com/firefly/text-analyzer/internal/frequency"
	"github.com/firefly/text-analyzer/internal/tokenizer"
)

// Summary gathers every metric of a text for reporting. Word-derived fields
// are zero and tables nil when the text holds no words; HasWords tells the
// two cases apart.
type Summary struct {
	Characters                   int              `json:"characters"`
	Lines                        int              `json:"lines"`
	NonEmptyLines                int              `json:"non_empty_lines"`
	NonEmptyNonCommentLines      int              `json:"non_empty_non_comment_lines"`
	Paragraphs                   int              `json:"paragraphs"`
	HasWords                     bool             `json:"has_words"`
	Words                        int              `json:"words"`
	Sentences                    int              `json:"sentences"`
	AverageWordsPerSentence      int              `json:"average_words_per_sentence"`
	AverageSentencesPerParagraph int              `json:"average_sentences_per_paragraph"`
	Order                        string           `json:"order"`
	LetterFrequency              *frequency.Table `json:"letter_frequency,omitempty"`
	WordFrequency                *frequency.Table `json:"word_frequency,omitempty"`
	FirstWordFrequency           *frequency.Table `json:"first_word_frequency,omitempty"`
}

// Summary computes all statistics with tables in the given order. Missing
// words or letters leave the matching fields empty instead of failing.
func (a *Analyzer) Summary(order frequency.Order) (Summary, error) {
	s := Summary{
		Characters:              a.CharacterCount(),
		Lines:                   a.LineCount(),
		NonEmptyLines:           a.NonEmptyLineCount(),
		NonEmptyNonCommentLines: a.NonEmptyNonCommentLineCount(),
		Paragraphs:              a.ParagraphCount(),
		Order:                   order.String(),
	}

	letters, err := a.LetterFrequency(order)
	switch {
	case err == nil:
		s.LetterFrequency = &letters
	case !errors.Is(err, ErrNoLetters):
		return Summary{}, err
	}

	words, err := a.WordCount()
	if errors.Is(err, ErrNoWords) {
		return s, nil
	}
	if err != nil {
		return Summary{}, err
	}
	s.HasWords = true
	s.Words = words

	if s.Sentences, err = a.SentenceCount(); err != nil {
		return Summary{}, err
	}
	if s.AverageWordsPerSentence, err = a.AverageWordsPerSentence(); err != nil {
		return Summary{}, err
	}
	if s.AverageSentencesPerParagraph, err = a.AverageSentencesPerParagraph(); err != nil {
		return Summary{}, err
	}

	wordTable, err := a.WordFrequency(order)
	if err != nil {
		return Summary{}, err
	}
	s.WordFrequency = &wordTable

	// A sentence made only of numbers has no first word; the table is left
	// out rather than failing the whole summary
	firstWords, err := a.FirstWordFrequency(order)
	switch {
	case err == nil:
		s.FirstWordFrequency = &firstWords
	case !errors.Is(err, tokenizer.ErrNoWordInSentence):
		return Summary{}, err
	}

	return s, nil
}
