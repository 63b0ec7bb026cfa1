package tokenizer

import (
	"strings"
)

// CountWholeWord counts the words of text equal to word. With foldCase the
// comparison is case-insensitive and ignores Unicode composition.
func CountWholeWord(text, word string, foldCase bool) int {
	return len(findWholeWord(text, word, foldCase))
}

// ReplaceWholeWord replaces every word of text equal to word, case-sensitively,
// with repl and returns the new text and the number of replacements
func ReplaceWholeWord(text, word, repl string) (string, int) {
	matches := findWholeWord(text, word, false)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*(len(repl)-len(word)))

	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String(), len(matches)
}

// findWholeWord returns the byte ranges of the words of text, as Words sees
// them, that equal word. A piece of a connector-joined word such as the
// "mail" in "e-mail" is never a match.
func findWholeWord(text, word string, foldCase bool) [][2]int {
	if word == "" {
		return nil
	}
	if foldCase {
		word = Normalize(word)
	}

	var matches [][2]int
	for _, span := range wordSpans(text) {
		candidate := text[span[0]:span[1]]
		if foldCase {
			candidate = Normalize(candidate)
		}
		if candidate == word {
			matches = append(matches, span)
		}
	}

	return matches
}

// wordSpans returns the byte range of every word of text in appearance order
func wordSpans(text string) [][2]int {
	var spans [][2]int

	for _, loc := range wordRunPattern.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]
		trimmed := strings.TrimLeftFunc(run, isConnectorOrOther)
		start := loc[0] + len(run) - len(trimmed)
		trimmed = strings.TrimRightFunc(trimmed, isConnectorOrOther)

		if containsLetter(trimmed) {
			spans = append(spans, [2]int{start, start + len(trimmed)})
		}
	}

	return spans
}
