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

package opts

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/replaceall/pkg/status"
)

// 📢 Reporter prints user facing run summaries and results
type Reporter struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewReporter creates a reporter writing to out
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📊 LogSummary prints the per-status file counts as a table
func (r *Reporter) LogSummary(s status.Summary, mode string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(r.out).Println(fmt.Sprintf("%s: %d files", mode, s.Files))

	data := pterm.TableData{
		{"modified", "unchanged", "skipped", "failed", "replacements"},
		{
			fmt.Sprint(s.Modified),
			fmt.Sprint(s.Unchanged),
			fmt.Sprint(s.Skipped),
			fmt.Sprint(s.Failed),
			fmt.Sprint(s.Replacements),
		},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(r.out).Render(); err != nil {
		r.log.Debug().Err(err).Msg("rendering summary table")
	}

	r.log.Info().
		Str("mode", mode).
		Int("files", s.Files).
		Int("modified", s.Modified).
		Int("unchanged", s.Unchanged).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int("replacements", s.Replacements).
		Msg("run summary")
}

// 🔍 LogValidation logs validation results
func (r *Reporter) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(r.out).Println(description)
		r.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(r.out).Println(description)
		pterm.Error.WithWriter(r.out).Println(err)
		r.log.Error().Err(err).Msg(description)
		return
	}
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(r.out).Println(description)
	r.log.Warn().Msg(description)
}
