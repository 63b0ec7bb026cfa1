package tokenizer

import "regexp"

// Connectors are the punctuation runes a word may contain between its letters
const Connectors = `-'./:`

var (
	// wordRunPattern matches a candidate word: letters, marks, digits and
	// connectors. Runs are trimmed and checked for a letter in wordSpans.
	wordRunPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}'./:-]+`)

	// boundarySentencePattern ends a sentence at terminal punctuation followed
	// by whitespace or the end of the text, or at a newline.
	boundarySentencePattern = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n\s*`)

	// punctuationSentencePattern ends a sentence at any run of terminal punctuation.
	punctuationSentencePattern = regexp.MustCompile(`[.!?]+`)

	// paragraphPattern matches a blank line, allowing stray spaces on it.
	paragraphPattern = regexp.MustCompile(`\n[ \t\r]*\n`)
)
