// Package stem derives a secondary match form for a folded query token.
//
// Two heuristics are consulted in order, first match wins:
//
//  1. the role table maps performer nouns to the instrument they play
//     ("guitarrista" -> "guitarra");
//  2. naive depluralization drops a trailing "s" when the token does not end
//     in "ss" and is longer than two runes ("teclados" -> "teclado").
//
// Tokens must already be folded (lowercase, no diacritics).
package stem

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// RuleProvider exposes the role -> instrument table as data.
type RuleProvider interface {
	Roles() map[string]string
}

// Table is a static role -> instrument mapping.
type Table map[string]string

// Roles returns the table itself.
func (t Table) Roles() map[string]string { return t }

// DefaultRoles is the built-in role table (keys and values folded).
var DefaultRoles = Table{
	"tecladista":     "teclado",
	"guitarrista":    "guitarra",
	"bajista":        "bajo",
	"baterista":      "bateria",
	"violinista":     "violin",
	"saxofonista":    "saxofon",
	"cantante":       "canto",
	"pianista":       "piano",
	"percusionista":  "percusion",
	"trompetista":    "trompeta",
	"flautista":      "flauta",
	"acordeonista":   "acordeon",
	"contrabajista":  "contrabajo",
	"violonchelista": "violonchelo",
	"clarinetista":   "clarinete",
	"trombonista":    "trombon",
}

// Merge returns a new table with the entries of all tables; later tables win.
// Keys and values are trimmed and folded, so configured entries such as
// "Júglar" match folded query tokens.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for role, instrument := range t {
			role = text.Fold(strings.TrimSpace(role))
			instrument = text.Fold(strings.TrimSpace(instrument))
			if role == "" || instrument == "" {
				continue
			}
			out[role] = instrument
		}
	}
	return out
}

// Stemmer applies the role table and the plural rule.
type Stemmer struct {
	roles map[string]string
}

// New creates a Stemmer. A nil provider means DefaultRoles.
func New(p RuleProvider) *Stemmer {
	if p == nil {
		p = DefaultRoles
	}
	return &Stemmer{roles: p.Roles()}
}

// Stem returns the secondary form of token, or ("", false) when no rule applies.
func (s *Stemmer) Stem(token string) (string, bool) {
	if instrument, ok := s.roles[token]; ok && instrument != token {
		return instrument, true
	}
	return depluralize(token)
}

// depluralize strips a trailing "s". The length guard is on the original token,
// so "mes" becomes "me".
func depluralize(token string) (string, bool) {
	if !strings.HasSuffix(token, "s") || strings.HasSuffix(token, "ss") {
		return "", false
	}
	if utf8.RuneCountInString(token) <= 2 {
		return "", false
	}
	return strings.TrimSuffix(token, "s"), true
}
