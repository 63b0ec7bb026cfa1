package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/analyzer"
	"github.com/firefly/text-analyzer/internal/frequency"
)

func summaryOf(t *testing.T, text string, order frequency.Order) analyzer.Summary {
	t.Helper()
	a, err := analyzer.New(text)
	require.NoError(t, err)
	s, err := a.Summary(order)
	require.NoError(t, err)
	return s
}

func TestWriteAnalysis_JSONKeepsTableOrder(t *testing.T) {
	s := summaryOf(t, "b a b. c b a.", frequency.OrderOccurrence)

	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, FormatJSON, Analysis{Source: "inline", Summary: s}, 2))

	out := buf.String()
	assert.Contains(t, out, `"source": "inline"`)
	assert.Less(t, strings.Index(out, `"b": 3`), strings.Index(out, `"a": 2`))

	var decoded struct {
		Summary struct {
			WordFrequency frequency.Table `json:"word_frequency"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"b", "a"}, decoded.Summary.WordFrequency.Keys())
}

func TestWriteAnalysis_Text(t *testing.T) {
	s := summaryOf(t, "Word.", frequency.OrderAlphabetical)

	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, FormatText, Analysis{Source: "inline", Summary: s}, 0))

	out := buf.String()
	assert.Contains(t, out, "Text statistics: inline")
	assert.Contains(t, out, "Words")
	assert.Contains(t, out, "Letter frequency (alphabetical)")
	assert.Contains(t, out, "word")
}

func TestWriteAnalysis_TextNoWords(t *testing.T) {
	s := summaryOf(t, "...", frequency.OrderAlphabetical)

	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, FormatText, Analysis{Source: "dots", Summary: s}, 0))

	assert.Contains(t, buf.String(), analyzer.ErrNoWords.Error())
	assert.NotContains(t, buf.String(), "Word frequency")
}

func TestWriteReplacement(t *testing.T) {
	r := Replacement{
		Source:       "inline",
		From:         "is",
		To:           "was",
		Replacements: 1,
		LengthDelta:  "1",
		Description:  "The updated text is 1 character(s) longer than the original text.",
		UpdatedText:  "This was a sentence.",
	}

	var text bytes.Buffer
	require.NoError(t, WriteReplacement(&text, FormatText, r))
	assert.True(t, strings.HasPrefix(text.String(), "This was a sentence.\n"))
	assert.Contains(t, text.String(), "1 replacement(s).")

	var js bytes.Buffer
	require.NoError(t, WriteReplacement(&js, FormatJSON, r))
	assert.Contains(t, js.String(), `"updated_text": "This was a sentence."`)
	assert.Contains(t, js.String(), `"length_delta": "1"`)
}

func TestWriteWordCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWordCount(&buf, FormatText, WordCount{Source: "inline", Word: "is", Count: 3}))
	assert.Equal(t, "\"is\" appears 3 time(s) in inline\n", buf.String())
}

func TestWriteBatch(t *testing.T) {
	batch := Batch{
		Stats:                  aggregator.Stats{Documents: 2, TotalWords: 7, UniqueWords: 3},
		HTMLExtractionFailures: 1,
		TopWords:               frequency.Table{Entries: []frequency.Entry{{Key: "the", Count: 4}, {Key: "fox", Count: 2}}},
		Errors:                 []string{"reading input file: missing.txt"},
	}

	var js bytes.Buffer
	require.NoError(t, WriteBatch(&js, FormatJSON, batch))
	assert.Contains(t, js.String(), `"documents": 2`)
	assert.Contains(t, js.String(), `"html_extraction_failures": 1`)
	assert.Less(t, strings.Index(js.String(), `"the": 4`), strings.Index(js.String(), `"fox": 2`))

	var text bytes.Buffer
	require.NoError(t, WriteBatch(&text, FormatText, batch))
	assert.Contains(t, text.String(), "Top words")
	assert.Regexp(t, `HTML pages without text\s+1`, text.String())
	assert.Contains(t, text.String(), "error: reading input file: missing.txt")
}
