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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replaceall/cmd/replaceall/opts"
	"github.com/walteh/replaceall/pkg/config"
	"github.com/walteh/replaceall/pkg/log"
	"github.com/walteh/replaceall/pkg/operation"
	"github.com/walteh/replaceall/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured rules to the files under the root",
		Long: `Apply rewrites every file matched by the include globs.
It will:
1. Load and validate the config
2. Run each rule whose file filter matches, in order
3. Write changed files atomically (unless --dry-run)
4. Print a summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}

			return runRules(cmd, cfg, false)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")

	return cmd
}

// runRules runs the apply operation and prints the summary
func runRules(cmd *cobra.Command, cfg *config.Config, check bool) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)
	out := cmd.OutOrStdout()

	mode := "apply"
	switch {
	case check:
		mode = "check"
	case cfg.DryRun:
		mode = "dry-run"
	}

	console := log.NewWithZerolog(out, *logger)
	console.Header(mode + " " + cfg.String())

	statusMgr := status.New(cfg.Root, logger)
	op := operation.NewApplyOperation(operation.Options{
		Config: cfg,
		Status: statusMgr,
		Logger: console,
		Check:  check,
	})

	runErr := operation.NewRunner(logger, false).Run(ctx, op)

	reporter := opts.NewReporter(ctx, out)
	console.LogNewline()
	reporter.LogSummary(statusMgr.Summary(), mode)

	switch {
	case runErr == nil:
		reporter.LogValidation(true, "done", nil)
		return nil
	case errors.Is(runErr, operation.ErrChangesPending):
		reporter.LogValidation(false, "files are out of date, run replaceall apply", nil)
		return runErr
	default:
		return errors.Errorf("running %s: %w", mode, runErr)
	}
}
