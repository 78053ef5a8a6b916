// Package text folds and tokenizes free-text search input.
//
// Fold is the single folding function of the system: stores must compare
// query tokens against stored text folded by the same function, otherwise
// matches silently fail.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops combining marks and recomposes what is left.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritics ("México" -> "mexico").
// Fold is idempotent.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		// transform only fails on malformed chains; keep the lowercase input
		return strings.ToLower(s)
	}
	return folded
}

// Tokenize folds s and splits it on runs of whitespace.
// Empty or whitespace-only input yields an empty slice.
func Tokenize(s string) []string {
	return strings.Fields(Fold(s))
}

// Token is a folded query word with its optional stem.
type Token struct {
	Text string
	Stem string
}

// HasStem reports whether a stem rule applied to the token.
func (t Token) HasStem() bool { return t.Stem != "" }

// Variants returns the token text followed by its stem, if any.
func (t Token) Variants() []string {
	if t.HasStem() {
		return []string{t.Text, t.Stem}
	}
	return []string{t.Text}
}

// Stemmer derives a secondary form for a folded token.
type Stemmer interface {
	Stem(token string) (string, bool)
}

// Normalizer turns raw queries into tokens.
type Normalizer struct {
	stemmer Stemmer
}

// NewNormalizer creates a Normalizer. stemmer can be nil (no stems).
func NewNormalizer(stemmer Stemmer) *Normalizer {
	return &Normalizer{stemmer: stemmer}
}

// Normalize tokenizes raw and attaches stems. Repeated words collapse into
// one token since each token already requires a match on its own.
func (n *Normalizer) Normalize(raw string) []Token {
	words := Tokenize(raw)
	tokens := make([]Token, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		tok := Token{Text: w}
		if n.stemmer != nil {
			if st, ok := n.stemmer.Stem(w); ok && st != w {
				tok.Stem = st
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
