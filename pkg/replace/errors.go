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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// opReplaceAll is the operation name reported by errors from this package.
const opReplaceAll = "replaceAll"

var (
	// ErrInvalidSubject is returned when the subject is absent (nil).
	ErrInvalidSubject = errors.Base("replaceAll called on null or undefined")

	// ErrNonGlobalPattern matches every *NonGlobalPatternError.
	ErrNonGlobalPattern = errors.Base("non-global pattern")

	// ErrInvalidFlags is returned by Compile for unknown or repeated flags.
	ErrInvalidFlags = errors.Base("invalid pattern flags")
)

// 🚫 NonGlobalPatternError is returned when a structured pattern without the
// global flag is used with a replace-all operation.
type NonGlobalPatternError struct {
	Op      string // operation that rejected the pattern
	Pattern string // text form of the pattern
}

func (e *NonGlobalPatternError) Error() string {
	return fmt.Sprintf("%s must be called with a global pattern: %s", e.Op, e.Pattern)
}

// Is reports whether target is ErrNonGlobalPattern.
func (e *NonGlobalPatternError) Is(target error) bool {
	return target == error(ErrNonGlobalPattern)
}

// 🔍 CheckGlobal fails with a *NonGlobalPatternError when search is a Matcher
// whose global flag is not set. Literal searches always pass.
func CheckGlobal(op string, search Search) error {
	m, ok := search.(Matcher)
	if !ok || m.Global() {
		return nil
	}
	return errors.WithStack(&NonGlobalPatternError{Op: op, Pattern: m.Text()})
}
