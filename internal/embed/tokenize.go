// Package embed builds the embedding-text representation of a listing
// and defines the Embedder port the core calls to turn that text into
// a fixed-dimension vector.
package embed

import (
	"strings"
	"unicode"
)

// Tokenizer breaks free text into significant, lowercase words. It
// keeps the mutual natural-language phrasing free of filler words
// before embedding.
type Tokenizer struct {
	stopWords map[string]bool
}

// NewTokenizer builds a Tokenizer with a small built-in English
// stop-word list.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{stopWords: defaultStopWords()}
}

// SignificantWords tokenizes text and drops stop words and words
// shorter than two characters.
func (tk *Tokenizer) SignificantWords(text string) []string {
	words := tk.tokenize(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 1 && !tk.stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func (tk *Tokenizer) tokenize(text string) []string {
	text = strings.ToLower(text)
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

func defaultStopWords() map[string]bool {
	words := []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "as", "you", "do", "at",
		"this", "but", "by", "from", "we", "or", "an", "will", "my",
		"one", "all", "would", "there", "their", "what", "so", "up",
		"out", "if", "about", "who", "which", "when", "can", "like",
		"no", "just", "into", "your", "some", "could", "them", "other",
		"than", "then", "now", "only", "its", "over", "also", "after",
		"use", "how", "our", "well", "even", "want", "because", "any",
		"these", "most", "us", "is", "was", "are", "been", "has", "had",
		"were", "may", "am", "should", "too", "very",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
