package validator

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MaxWordLength is the longest word, in runes, accepted as an argument
const MaxWordLength = 50

var (
	// ErrEmptyWord is returned when the submitted word has no characters
	ErrEmptyWord = errors.New("invalid input: the submitted word is empty")

	// ErrInvalidFormat is returned when the word contains characters that are
	// not letters, digits or one of the connectors - ' . : /
	ErrInvalidFormat = errors.New("the submitted word does not have the right format")

	// ErrWordTooLong is returned when the word exceeds MaxWordLength runes
	ErrWordTooLong = errors.New("the submitted word is too long")
)

// wordPattern accepts connector/digit runes around at least one letter.
// Marks are allowed so decomposed accents validate the same as composed ones.
var wordPattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}'./:-]*\p{L}[\p{L}\p{M}\p{N}'./:-]*$`)

// Validate checks that word is usable as a bare word argument
func Validate(word string) error {
	if word == "" {
		return ErrEmptyWord
	}

	if n := utf8.RuneCountInString(word); n > MaxWordLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrWordTooLong, n, MaxWordLength)
	}

	if !wordPattern.MatchString(word) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, word)
	}

	return nil
}

// ValidateAll validates each word in order and stops at the first failure
func ValidateAll(words ...string) error {
	for _, word := range words {
		if err := Validate(word); err != nil {
			return err
		}
	}
	return nil
}

// IsValid reports whether word passes Validate
func IsValid(word string) bool {
	return Validate(word) == nil
}
