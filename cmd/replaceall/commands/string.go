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

package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replaceall/pkg/config"
	"github.com/walteh/replaceall/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// NewStringCmd creates a command that runs a single replace-all over a
// subject given as an argument or on stdin
func NewStringCmd() *cobra.Command {
	var (
		search  string
		repl    string
		isRegex bool
		flags   string
	)

	cmd := &cobra.Command{
		Use:   "string [subject|-]",
		Short: "Replace every occurrence in a string",
		Long: `String replaces every occurrence of --search in the subject with --replace
and prints the result. The subject is read from stdin when omitted or "-".

The replacement may use $$, $&, $` + "`" + `, $', $n and $<name> placeholders.`,
		Example: `  replaceall string --search a --replace '[$&]' abcabc
  echo "2024-01-02" | replaceall string --regex --search '(\d+)-(\d+)-(\d+)' --replace '$3/$2/$1'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := readSubject(cmd, args)
			if err != nil {
				return err
			}

			if !isRegex && flags != "" {
				return errors.Errorf("--flags requires --regex")
			}

			rule := config.Rule{Search: search, Regex: isRegex, Flags: flags}
			if isRegex && rule.Flags == "" {
				rule.Flags = config.DefaultFlags
			}
			s, err := rule.CompileSearch()
			if err != nil {
				return errors.Errorf("compiling search: %w", err)
			}

			out, err := replace.ReplaceAll(subject, s, replace.Text(repl))
			if err != nil {
				return err
			}

			zerolog.Ctx(cmd.Context()).Debug().
				Str("search", s.Text()).
				Int("in", len(subject)).
				Int("out", len(out)).
				Msg("replaced string")

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "token or pattern to search for")
	cmd.Flags().StringVarP(&repl, "replace", "r", "", "replacement text")
	cmd.Flags().BoolVar(&isRegex, "regex", false, "treat --search as a pattern")
	cmd.Flags().StringVar(&flags, "flags", "", "pattern flags (gimsu), defaults to g")
	_ = cmd.MarkFlagRequired("search")

	return cmd
}

func readSubject(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
