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

package operation

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/replaceall/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// binarySniffLen is how much of a file is inspected for NUL bytes
const binarySniffLen = 8000

// 📂 listFiles returns the slash separated paths under root matched by an
// include pattern and by no ignore pattern, sorted
func (op *BaseOperation) listFiles(ctx context.Context) ([]string, error) {
	fsys := os.DirFS(op.Config.Root)
	seen := make(map[string]struct{})

	for _, pattern := range op.Config.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	self := op.configPath()

	files := make([]string, 0, len(seen))
	for f := range seen {
		if f == self || op.shouldIgnore(ctx, f) {
			continue
		}
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// configPath is the config file relative to the root, or "" when it lives elsewhere
func (op *BaseOperation) configPath() string {
	loc := op.Config.Location()
	if loc == "" {
		return ""
	}
	abs, err := filepath.Abs(loc)
	if err != nil {
		return ""
	}
	root, err := filepath.Abs(op.Config.Root)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// 🔍 shouldIgnore checks if a file matches an ignore pattern
func (op *BaseOperation) shouldIgnore(ctx context.Context, file string) bool {
	for _, pattern := range op.Config.Ignore {
		matched, err := doublestar.Match(pattern, file)
		if err != nil {
			op.logger(ctx).Debug().Str("pattern", pattern).Str("path", file).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			op.logger(ctx).Trace().Str("file", file).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 🎯 rulesFor keeps the rules whose file filter matches the file. A filter
// without a slash also matches against the base name.
func rulesFor(file string, rules []text.ReplacementRule) []text.ReplacementRule {
	out := make([]text.ReplacementRule, 0, len(rules))
	for _, r := range rules {
		if r.FileFilterGlob == "" || matchFilter(r.FileFilterGlob, file) {
			out = append(out, r)
		}
	}
	return out
}

func matchFilter(glob, file string) bool {
	if ok, _ := doublestar.Match(glob, file); ok {
		return true
	}
	if !strings.Contains(glob, "/") {
		ok, _ := doublestar.Match(glob, path.Base(file))
		return ok
	}
	return false
}

// isBinary reports whether the content looks like a binary file
func isBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
