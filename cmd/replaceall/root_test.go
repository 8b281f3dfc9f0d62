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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/replaceall/cmd/replaceall/commands"
	"github.com/walteh/replaceall/pkg/operation"
	"github.com/walteh/replaceall/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	color.NoColor = true
	os.Exit(m.Run())
}

// 🧪 execute runs the root command with the given stdin and args
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	err := cmd.ExecuteContext(logger.WithContext(context.Background()))
	return out.String(), err
}

func TestStringCmd(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "literal",
			args: []string{"string", "--search", "a", "--replace", "[$&]", "abcabc"},
			want: "[a]bc[a]bc",
		},
		{
			name: "empty_search",
			args: []string{"string", "--search", "", "--replace", "-", "abc"},
			want: "-a-b-c-",
		},
		{
			name:  "stdin",
			stdin: "one two one",
			args:  []string{"string", "-s", "one", "-r", "1"},
			want:  "1 two 1",
		},
		{
			name:  "stdin_dash_regex",
			stdin: "2024-01-02",
			args:  []string{"string", "--regex", "--search", `(\d+)-(\d+)-(\d+)`, "--replace", "$3/$2/$1", "-"},
			want:  "02/01/2024",
		},
		{
			name: "regex_flags",
			args: []string{"string", "--regex", "--flags", "gi", "--search", "a", "--replace", "x", "AbaB"},
			want: "xbxB",
		},
		{
			name:    "non_global_pattern",
			args:    []string{"string", "--regex", "--flags", "i", "--search", "a", "--replace", "x", "abc"},
			wantErr: replace.ErrNonGlobalPattern,
		},
		{
			name:    "invalid_flags",
			args:    []string{"string", "--regex", "--flags", "gq", "--search", "a", "abc"},
			wantErr: replace.ErrInvalidFlags,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringCmd_Errors(t *testing.T) {
	_, err := execute(t, "", "string", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"search" not set`)

	_, err = execute(t, "", "string", "--search", "a", "--flags", "g", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--flags requires --regex")

	_, err = execute(t, "", "string", "--regex", "--flags", "i", "--search", "a", "abc")
	require.Error(t, err)
	assert.Equal(t, "replaceAll must be called with a global pattern: /a/i", err.Error())
}

func writeTree(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("import \"old/mod\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("untouched\n"), 0644))

	cfgPath := filepath.Join(dir, "rules.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
rule {
  search  = "old/mod"
  replace = "new/mod"
}
`), 0644))
	return dir, cfgPath
}

func TestApplyCmd(t *testing.T) {
	dir, cfgPath := writeTree(t)

	out, err := execute(t, "", "apply", "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "import \"new/mod\"\n", string(data))

	assert.Contains(t, out, "replaceall • apply")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "replacements")
	assert.NotContains(t, out, "other.txt", "unchanged files are not listed")
}

func TestApplyCmd_DryRun(t *testing.T) {
	dir, cfgPath := writeTree(t)

	out, err := execute(t, "", "apply", "-c", cfgPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would modify")

	data, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "import \"old/mod\"\n", string(data))
}

func TestCheckCmd(t *testing.T) {
	_, cfgPath := writeTree(t)

	_, err := execute(t, "", "check", "-c", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, operation.ErrChangesPending))

	_, err = execute(t, "", "apply", "-c", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "", "check", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "done")
}

func TestApplyCmd_MissingConfig(t *testing.T) {
	_, err := execute(t, "", "apply", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "replaceall version info")

	out, err = execute(t, "", "version", "--json")
	require.NoError(t, err)
	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)
}
