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
)

// 🪄 Expand expands the placeholders of template against m.
//
//	$$      a literal "$"
//	$&      the matched text
//	$`      the part of the subject before the match
//	$'      the part of the subject after the match
//	$n $nn  capture group n (1-99); two digits win when that group exists
//	$<name> named group name, only when m.Groups is non-nil
//
// Anything else, including references to groups that do not exist, is kept
// as written.
func Expand(template string, m Match) string {
	if strings.IndexByte(template, '$') < 0 {
		return template
	}

	prefix, suffix := split(m)
	captureCount := len(m.Captures)

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			b.WriteByte(c)
			i++
			continue
		}

		switch next := template[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '&':
			b.WriteString(m.Text)
			i += 2
		case next == '`':
			b.WriteString(prefix)
			i += 2
		case next == '\'':
			b.WriteString(suffix)
			i += 2
		case isDigit(next):
			n := int(next - '0')
			if i+2 < len(template) && isDigit(template[i+2]) {
				if nn := n*10 + int(template[i+2]-'0'); nn >= 1 && nn <= captureCount {
					b.WriteString(m.Captures[nn-1])
					i += 3
					continue
				}
			}
			if n >= 1 && n <= captureCount {
				b.WriteString(m.Captures[n-1])
				i += 2
				continue
			}
			b.WriteByte('$')
			i++
		case next == '<':
			if m.Groups == nil {
				b.WriteString("$<")
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+2:], '>')
			if end < 0 {
				b.WriteString("$<")
				i += 2
				continue
			}
			b.WriteString(m.Groups[template[i+2:i+2+end]])
			i += 2 + end + 1
		default:
			b.WriteByte('$')
			i++
		}
	}

	return b.String()
}

// split returns the subject text around the match, clamped to the subject.
func split(m Match) (string, string) {
	start := min(max(m.Position, 0), len(m.Subject))
	end := min(start+len(m.Text), len(m.Subject))
	return m.Subject[:start], m.Subject[end:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
