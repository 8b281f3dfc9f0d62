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
	"github.com/spf13/cast"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ ReplaceAllValue is ReplaceAll for loosely typed arguments.
//
// The subject must be non-nil and is coerced to text. The search is used as
// is when it implements Search and is otherwise coerced to a Literal. The
// replacement is used as is when it is a Replacement; the function shapes
//
//	func(Match) string
//	func(Match) (string, error)
//	func(Match) any
//	func(match string, position int, subject string) string
//
// are functional replacements and anything else is coerced to Text.
// Coercion errors are returned unwrapped.
func ReplaceAllValue(subject, search, replacement any) (string, error) {
	if subject == nil {
		return "", errors.WithStack(ErrInvalidSubject)
	}

	s, err := toSearch(search)
	if err != nil {
		return "", err
	}
	if err := CheckGlobal(opReplaceAll, s); err != nil {
		return "", err
	}

	text, err := cast.ToStringE(subject)
	if err != nil {
		return "", err
	}

	repl, err := toReplacement(replacement)
	if err != nil {
		return "", err
	}

	return ReplaceAll(text, s, repl)
}

func toSearch(v any) (Search, error) {
	switch s := v.(type) {
	case nil:
		return Literal(""), nil
	case Search:
		return s, nil
	default:
		text, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return Literal(text), nil
	}
}

func toReplacement(v any) (Replacement, error) {
	switch r := v.(type) {
	case nil:
		return Text(""), nil
	case Replacement:
		return r, nil
	case func(Match) string:
		return Func(r), nil
	case func(Match) (string, error):
		return FuncE(r), nil
	case func(Match) any:
		if r == nil {
			return Text(""), nil
		}
		return FuncE(func(m Match) (string, error) {
			return cast.ToStringE(r(m))
		}), nil
	case func(string, int, string) string:
		if r == nil {
			return Text(""), nil
		}
		return Func(func(m Match) string {
			return r(m.Text, m.Position, m.Subject)
		}), nil
	default:
		text, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return Text(text), nil
	}
}
