package tokenizer

import (
	"regexp"
	"strings"
)

// disallowedRegex matches every run of characters outside [a-z0-9 ].
// It is applied after lowercasing.
var disallowedRegex = regexp.MustCompile(`[^a-z0-9 ]+`)

// NormalizeFunc converts a raw word into its canonical term.
type NormalizeFunc func(word string) string

// Token is a normalized term together with its word offset in the source text.
type Token struct {
	Term     string
	Position int
}

// Normalize lowercases word and strips every character that is not an ASCII
// letter, digit or space. The result may be empty; the empty term is a valid key.
func Normalize(word string) string {
	return disallowedRegex.ReplaceAllString(strings.ToLower(word), "")
}

// SplitWords splits text on whitespace. Runs of whitespace do not produce
// empty words.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// Tokenize splits text into words and normalizes each one with normalize,
// keeping its zero-based position. A nil normalize falls back to Normalize.
// Words that normalize to the empty string are kept.
func Tokenize(text string, normalize NormalizeFunc) []Token {
	if normalize == nil {
		normalize = Normalize
	}
	words := SplitWords(text)
	tokens := make([]Token, 0, len(words)) // Initialize as empty slice, not nil
	for i, word := range words {
		tokens = append(tokens, Token{Term: normalize(word), Position: i})
	}
	return tokens
}
