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
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestReplaceAll_Literal(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		search  string
		repl    Replacement
		want    string
	}{
		{
			name:    "simple_replacement",
			subject: "Hello World",
			search:  "World",
			repl:    Text("Universe"),
			want:    "Hello Universe",
		},
		{
			name:    "multiple_occurrences",
			subject: "a-b-c-d",
			search:  "-",
			repl:    Text("+"),
			want:    "a+b+c+d",
		},
		{
			name:    "no_match",
			subject: "Hello World",
			search:  "Goodbye",
			repl:    Text("Hi"),
			want:    "Hello World",
		},
		{
			name:    "empty_search_interleaves",
			subject: "abc",
			search:  "",
			repl:    Text("-"),
			want:    "-a-b-c-",
		},
		{
			name:    "empty_search_empty_subject",
			subject: "",
			search:  "",
			repl:    Text("-"),
			want:    "-",
		},
		{
			name:    "empty_search_multibyte",
			subject: "héé",
			search:  "",
			repl:    Text("|"),
			want:    "|h|é|é|",
		},
		{
			name:    "search_longer_than_subject",
			subject: "ab",
			search:  "abc",
			repl:    Text("x"),
			want:    "ab",
		},
		{
			name:    "non_overlapping",
			subject: "aaaa",
			search:  "aa",
			repl:    Text("b"),
			want:    "bb",
		},
		{
			name:    "non_overlapping_odd",
			subject: "aaaaa",
			search:  "aa",
			repl:    Text("b"),
			want:    "bba",
		},
		{
			name:    "whole_match_placeholder",
			subject: "abc",
			search:  "b",
			repl:    Text("[$&]"),
			want:    "a[b]c",
		},
		{
			name:    "prefix_and_suffix_placeholders",
			subject: "abc",
			search:  "b",
			repl:    Text("[$`|$']"),
			want:    "a[a|c]c",
		},
		{
			name:    "dollar_escape",
			subject: "price",
			search:  "price",
			repl:    Text("$$5"),
			want:    "$5",
		},
		{
			name:    "capture_references_stay_literal",
			subject: "abc",
			search:  "b",
			repl:    Text("$1$<x>"),
			want:    "a$1$<x>c",
		},
		{
			name:    "match_at_both_ends",
			subject: "xax",
			search:  "x",
			repl:    Text("y"),
			want:    "yay",
		},
		{
			name:    "replacement_contains_search",
			subject: "aa",
			search:  "a",
			repl:    Text("aa"),
			want:    "aaaa",
		},
		{
			name:    "nil_replacement_deletes",
			subject: "a.b.c",
			search:  ".",
			repl:    nil,
			want:    "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplaceAll(tt.subject, Literal(tt.search), tt.repl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceAll_Func(t *testing.T) {
	t.Run("position_argument", func(t *testing.T) {
		got, err := ReplaceAll("aaa", Literal("a"), Func(func(m Match) string {
			return strconv.Itoa(m.Position)
		}))
		require.NoError(t, err)
		assert.Equal(t, "012", got)
	})

	t.Run("called_once_per_match_in_order", func(t *testing.T) {
		var calls []Match
		got, err := ReplaceAll("x1x2x", Literal("x"), Func(func(m Match) string {
			calls = append(calls, m)
			return "_"
		}))
		require.NoError(t, err)
		assert.Equal(t, "_1_2_", got)
		require.Len(t, calls, 3)
		for i, pos := range []int{0, 2, 4} {
			assert.Equal(t, "x", calls[i].Text, "match text")
			assert.Equal(t, pos, calls[i].Position, "match position")
			assert.Equal(t, "x1x2x", calls[i].Subject, "match subject")
			assert.Empty(t, calls[i].Captures, "literal matches have no captures")
			assert.Nil(t, calls[i].Groups, "literal matches have no named groups")
		}
	})

	t.Run("function_result_is_not_expanded", func(t *testing.T) {
		got, err := ReplaceAll("abc", Literal("b"), Func(func(m Match) string { return "$&" }))
		require.NoError(t, err)
		assert.Equal(t, "a$&c", got)
	})

	t.Run("not_called_without_match", func(t *testing.T) {
		called := false
		got, err := ReplaceAll("abc", Literal("z"), Func(func(m Match) string {
			called = true
			return ""
		}))
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
		assert.False(t, called)
	})

	t.Run("error_aborts", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		got, err := ReplaceAll("aaa", Literal("a"), FuncE(func(m Match) (string, error) {
			calls++
			if m.Position == 1 {
				return "", boom
			}
			return "b", nil
		}))
		require.ErrorIs(t, err, boom)
		assert.Empty(t, got)
		assert.Equal(t, 2, calls)
	})
}

func TestReplaceAll_NilFunc(t *testing.T) {
	for _, repl := range []Replacement{Func(nil), FuncE(nil), nil} {
		got, err := ReplaceAll("a-b-c", Literal("-"), repl)
		require.NoError(t, err)
		assert.Equal(t, "abc", got, "%T should act as empty text", repl)

		got, err = ReplaceAll("a-b", MustCompile("-", "g"), repl)
		require.NoError(t, err)
		assert.Equal(t, "ab", got, "%T should act as empty text", repl)
	}

	got, err := Evaluate(FuncE(nil), Match{Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAll_NonGlobalPattern(t *testing.T) {
	called := false
	got, err := ReplaceAll("aaa", MustCompile("a", "i"), Func(func(m Match) string {
		called = true
		return "b"
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonGlobalPattern)
	assert.Empty(t, got)
	assert.False(t, called, "no scanning happens before the flag check")

	var ngErr *NonGlobalPatternError
	require.True(t, errors.As(err, &ngErr))
	assert.Equal(t, "replaceAll", ngErr.Op)
	assert.Equal(t, "/a/i", ngErr.Pattern)
	assert.Contains(t, err.Error(), "replaceAll")
}

// stubMatcher is a Matcher without its own strategy.
type stubMatcher struct {
	text   string
	global bool
}

func (s stubMatcher) Text() string { return s.text }
func (s stubMatcher) Global() bool { return s.global }

// upperStrategy is a Matcher that takes over the whole call.
type upperStrategy struct{}

func (upperStrategy) Text() string { return "ignored" }
func (upperStrategy) Global() bool { return true }
func (upperStrategy) Substitute(subject string, _ Replacement) (string, error) {
	return strings.ToUpper(subject), nil
}

func TestReplaceAll_Dispatch(t *testing.T) {
	t.Run("matcher_without_strategy_uses_text", func(t *testing.T) {
		got, err := ReplaceAll("a.b", stubMatcher{text: ".", global: true}, Text("-"))
		require.NoError(t, err)
		assert.Equal(t, "a-b", got)
	})

	t.Run("matcher_without_global_flag_fails", func(t *testing.T) {
		_, err := ReplaceAll("a.b", stubMatcher{text: ".", global: false}, Text("-"))
		assert.ErrorIs(t, err, ErrNonGlobalPattern)
	})

	t.Run("strategy_overrides_scan", func(t *testing.T) {
		got, err := ReplaceAll("abc", upperStrategy{}, Text("-"))
		require.NoError(t, err)
		assert.Equal(t, "ABC", got)
	})

	t.Run("nil_search_is_empty_literal", func(t *testing.T) {
		got, err := ReplaceAll("ab", nil, Text("."))
		require.NoError(t, err)
		assert.Equal(t, ".a.b.", got)
	})
}

func TestReplaceAll_Properties(t *testing.T) {
	subjects := []string{"", "a", "hello world", "the cat sat on the mat", "ababababab", "日本語のテキスト"}
	tokens := []string{"a", "at", "the", "ab", "zz", "本", "テ"}
	repls := []string{"", "X", "longer-replacement", "本語"}

	for _, s := range subjects {
		for _, tok := range tokens {
			for _, r := range repls {
				got, err := ReplaceAll(s, Literal(tok), Text(r))
				require.NoError(t, err)

				k := strings.Count(s, tok)
				if k == 0 {
					assert.Equal(t, s, got, "absent token leaves %q unchanged", s)
				}
				assert.Len(t, got, len(s)-k*len(tok)+k*len(r), "length of %q/%q/%q", s, tok, r)
				assert.Equal(t, strings.ReplaceAll(s, tok, r), got, "agrees with strings.ReplaceAll")

				if !strings.Contains(r, tok) {
					again, err := ReplaceAll(got, Literal(tok), Text(r))
					require.NoError(t, err)
					assert.Equal(t, got, again, "idempotent for %q/%q/%q", s, tok, r)
				}
			}
		}
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "a[b]c", String("abc", "b", "[$&]"))
	assert.Equal(t, "-a-b-c-", String("abc", "", "-"))
	assert.Equal(t, "bb", String("aaaa", "aa", "b"))
}
