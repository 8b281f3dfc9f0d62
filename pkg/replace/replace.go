// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package replace

import (
	"strings"
	"unicode/utf8"
)

// 🔎 Search is the search argument of ReplaceAll.
//
// It is either a Literal or a Matcher. Text returns the literal form used
// when no SubstitutionStrategy takes over the call.
type Search interface {
	Text() string
}

// 🧩 Matcher is a structured pattern with an explicit global-match flag.
//
// A Matcher that also implements SubstitutionStrategy fully replaces the
// literal scan for that call.
type Matcher interface {
	Search
	Global() bool
}

// ⚙️ SubstitutionStrategy performs the whole replace-all for one call.
type SubstitutionStrategy interface {
	Substitute(subject string, repl Replacement) (string, error)
}

// 📝 Literal is a literal search token.
type Literal string

// Text returns the token itself.
func (l Literal) Text() string { return string(l) }

// 🎯 Match describes a single match handed to replacement functions and to
// placeholder expansion.
type Match struct {
	Text     string            // matched token
	Position int               // byte offset of the match in Subject
	Subject  string            // the full subject being scanned
	Captures []string          // numbered capture groups, Captures[0] is group 1
	Groups   map[string]string // named capture groups, nil when the pattern has none
}

// 🔄 Replacement is the replacement argument of ReplaceAll: Text, Func or FuncE.
type Replacement interface {
	isReplacement()
}

// Text is literal replacement text. Placeholders ($&, $$, ...) are expanded
// per match, see Expand.
type Text string

// Func computes the substitution for a match.
type Func func(m Match) string

// FuncE computes the substitution for a match and may fail. The first error
// aborts the call.
type FuncE func(m Match) (string, error)

func (Text) isReplacement()  {}
func (Func) isReplacement()  {}
func (FuncE) isReplacement() {}

// substitution is a Replacement resolved once at call entry.
type substitution struct {
	fn   FuncE
	text string
}

func resolve(repl Replacement) substitution {
	// nil functions behave like a nil replacement: empty text
	switch r := repl.(type) {
	case Func:
		if r == nil {
			return substitution{}
		}
		return substitution{fn: func(m Match) (string, error) { return r(m), nil }}
	case FuncE:
		if r == nil {
			return substitution{}
		}
		return substitution{fn: r}
	case Text:
		return substitution{text: string(r)}
	default:
		return substitution{}
	}
}

func (s substitution) functional() bool {
	return s.fn != nil
}

func (s substitution) apply(m Match) (string, error) {
	if s.functional() {
		return s.fn(m)
	}
	return Expand(s.text, m), nil
}

// Evaluate computes the substitution repl produces for m.
func Evaluate(repl Replacement, m Match) (string, error) {
	return resolve(repl).apply(m)
}

// 🎯 ReplaceAll returns a copy of subject with every non-overlapping
// occurrence of search replaced by repl.
//
// A Matcher without the global flag fails with a *NonGlobalPatternError
// before any scanning. A Matcher implementing SubstitutionStrategy handles
// the call itself; every other search is scanned as the literal text
// returned by its Text method. A nil search is the empty literal and a nil
// repl is empty text.
func ReplaceAll(subject string, search Search, repl Replacement) (string, error) {
	if search == nil {
		search = Literal("")
	}
	if err := CheckGlobal(opReplaceAll, search); err != nil {
		return "", err
	}
	if strategy, ok := search.(SubstitutionStrategy); ok {
		return strategy.Substitute(subject, repl)
	}
	return Literal(search.Text()).Substitute(subject, repl)
}

// String replaces every occurrence of old in subject with the literal text
// repl, expanding placeholders. It never fails.
func String(subject, old, repl string) string {
	out, _ := Literal(old).Substitute(subject, Text(repl))
	return out
}

// Substitute is the default scan: a left-to-right search for the literal
// token, resuming after each consumed match.
//
// An empty token matches before every rune and at the end of subject.
func (l Literal) Substitute(subject string, repl Replacement) (string, error) {
	sub := resolve(repl)
	token := string(l)
	searchLength := len(token)

	position := indexFrom(subject, token, 0)
	if position < 0 {
		return subject, nil
	}

	var b strings.Builder
	b.Grow(len(subject))
	endOfLastMatch := 0

	for position >= 0 {
		replacement, err := sub.apply(Match{
			Text:     token,
			Position: position,
			Subject:  subject,
		})
		if err != nil {
			return "", err
		}

		b.WriteString(subject[endOfLastMatch:position])
		b.WriteString(replacement)
		endOfLastMatch = position + searchLength

		position = indexFrom(subject, token, position+advanceBy(subject, position, searchLength))
	}

	if endOfLastMatch < len(subject) {
		b.WriteString(subject[endOfLastMatch:])
	}

	return b.String(), nil
}

// advanceBy is max(1, searchLength), widened to a whole rune for the empty
// token so the scan never lands inside a multi-byte rune.
func advanceBy(subject string, position, searchLength int) int {
	if searchLength > 0 {
		return searchLength
	}
	_, width := utf8.DecodeRuneInString(subject[position:])
	return max(1, width)
}

// indexFrom is strings.Index starting at from; -1 when from is past the end.
func indexFrom(s, token string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], token)
	if i < 0 {
		return -1
	}
	return from + i
}
