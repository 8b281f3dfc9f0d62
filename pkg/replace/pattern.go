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

	"github.com/coregx/coregex"
	"gitlab.com/tozd/go/errors"
)

// flagOrder is the canonical order of the supported pattern flags.
const flagOrder = "gimsu"

// 🧩 Pattern is a compiled structured pattern with a flag set.
//
// Supported flags:
//
//	g  global: replace every match
//	i  case-insensitive
//	m  multi-line: ^ and $ match at line boundaries
//	s  dot matches newline
//	u  accepted for compatibility, patterns are always Unicode-aware
//
// Pattern is safe for concurrent use.
type Pattern struct {
	source string
	flags  string
	re     *coregex.Regexp
	names  []string
	named  bool

	// set for m-flagged expressions anchored with a top level ^ or $
	lineStart bool
	lineEnd   bool
}

// 🏭 Compile compiles expr with the given flags.
func Compile(expr, flags string) (*Pattern, error) {
	canonical, inline, err := parseFlags(flags)
	if err != nil {
		return nil, err
	}

	re, err := coregex.Compile(inline + expr)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", expr, err)
	}

	names := re.SubexpNames()
	named := false
	for _, name := range names {
		if name != "" {
			named = true
			break
		}
	}

	p := &Pattern{
		source: expr,
		flags:  canonical,
		re:     re,
		names:  names,
		named:  named,
	}
	if strings.IndexByte(canonical, 'm') >= 0 && !hasTopLevelAlternation(expr) {
		p.lineStart = strings.HasPrefix(expr, "^")
		p.lineEnd = endsWithAnchor(expr)
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr, flags string) *Pattern {
	p, err := Compile(expr, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// parseFlags validates flags and returns them in canonical order along with
// the inline flag group to prepend to the expression.
func parseFlags(flags string) (string, string, error) {
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if !strings.ContainsRune(flagOrder, f) {
			return "", "", errors.Errorf("%w: unknown flag %q in %q", ErrInvalidFlags, f, flags)
		}
		if seen[f] {
			return "", "", errors.Errorf("%w: repeated flag %q in %q", ErrInvalidFlags, f, flags)
		}
		seen[f] = true
	}

	var canonical, inline strings.Builder
	for _, f := range flagOrder {
		if !seen[f] {
			continue
		}
		canonical.WriteRune(f)
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		}
	}

	if inline.Len() == 0 {
		return canonical.String(), "", nil
	}
	return canonical.String(), "(?" + inline.String() + ")", nil
}

// Source returns the expression the pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// Flags returns the flags in canonical order.
func (p *Pattern) Flags() string { return p.flags }

// Global reports whether the g flag is set.
func (p *Pattern) Global() bool { return strings.IndexByte(p.flags, 'g') >= 0 }

// Text returns the pattern as /source/flags.
func (p *Pattern) Text() string { return "/" + p.source + "/" + p.flags }

func (p *Pattern) String() string { return p.Text() }

// Substitute replaces the matches of p in subject. Without the global flag
// only the first match is replaced; ReplaceAll rejects such patterns before
// reaching this point.
func (p *Pattern) Substitute(subject string, repl Replacement) (string, error) {
	sub := resolve(repl)

	limit := -1
	if !p.Global() && !p.lineStart && !p.lineEnd {
		limit = 1
	}

	locs := p.lineAnchored(subject, p.re.FindAllStringSubmatchIndex(subject, limit))
	if !p.Global() && len(locs) > 1 {
		locs = locs[:1]
	}
	if len(locs) == 0 {
		return subject, nil
	}

	var b strings.Builder
	b.Grow(len(subject))
	last := 0

	for _, loc := range locs {
		replacement, err := sub.apply(p.match(subject, loc))
		if err != nil {
			return "", err
		}
		b.WriteString(subject[last:loc[0]])
		b.WriteString(replacement)
		last = loc[1]
	}

	b.WriteString(subject[last:])
	return b.String(), nil
}

// lineAnchored drops matches of a multi-line anchored pattern that do not
// sit on a line boundary. The engine reports (?m)^ at every offset.
func (p *Pattern) lineAnchored(subject string, locs [][]int) [][]int {
	if !p.lineStart && !p.lineEnd {
		return locs
	}
	kept := locs[:0]
	for _, loc := range locs {
		if p.lineStart && loc[0] > 0 && subject[loc[0]-1] != '\n' {
			continue
		}
		if p.lineEnd && loc[1] < len(subject) && subject[loc[1]] != '\n' {
			continue
		}
		kept = append(kept, loc)
	}
	return kept
}

// hasTopLevelAlternation reports whether expr has a | outside any group or
// character class.
func hasTopLevelAlternation(expr string) bool {
	depth := 0
	inClass := false
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '|' && depth == 0:
			return true
		}
	}
	return false
}

// endsWithAnchor reports whether expr ends with an unescaped $.
func endsWithAnchor(expr string) bool {
	if !strings.HasSuffix(expr, "$") {
		return false
	}
	backslashes := 0
	for i := len(expr) - 2; i >= 0 && expr[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}

// match builds the Match for one submatch index slice.
func (p *Pattern) match(subject string, loc []int) Match {
	m := Match{
		Text:     subject[loc[0]:loc[1]],
		Position: loc[0],
		Subject:  subject,
	}

	groups := len(loc)/2 - 1
	if groups > 0 {
		m.Captures = make([]string, groups)
		for g := 1; g <= groups; g++ {
			if loc[2*g] >= 0 {
				m.Captures[g-1] = subject[loc[2*g]:loc[2*g+1]]
			}
		}
	}

	if p.named {
		m.Groups = make(map[string]string)
		for g, name := range p.names {
			if name != "" && g > 0 {
				m.Groups[name] = m.Captures[g-1]
			}
		}
	}

	return m
}
