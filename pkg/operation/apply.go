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

	"github.com/walteh/replaceall/pkg/config"
	"github.com/walteh/replaceall/pkg/log"
	"github.com/walteh/replaceall/pkg/status"
	"github.com/walteh/replaceall/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 NewApplyOperation creates an operation that runs every rule over every
// matched file under the config root
func NewApplyOperation(opts Options) Operation {
	return &applyOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 📦 applyOperation implements the apply and check operations
type applyOperation struct {
	BaseOperation
}

// 🏃 Execute runs the apply operation
func (op *applyOperation) Execute(ctx context.Context) error {
	if err := op.validate(); err != nil {
		return err
	}

	rules, err := op.Config.CompileRules()
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}
	if err := op.Replacer.ValidateRules(rules); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	files, err := op.listFiles(ctx)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	op.logger(ctx).Debug().
		Str("root", op.Config.Root).
		Int("files", len(files)).
		Int("rules", len(rules)).
		Bool("check", op.Check).
		Bool("dry_run", op.Config.DryRun).
		Msg("applying rules")

	if op.Console != nil {
		op.Console.StartRun(ctx, log.RunOperation{
			Root:   op.Config.Root,
			Rules:  len(rules),
			DryRun: !op.writes(),
		})
		defer op.Console.EndRun(ctx)
	}

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	g, gctx := errgroup.WithContext(ctx)
	limit := op.Config.Concurrency
	if limit <= 0 {
		limit = config.DefaultConcurrency
	}
	g.SetLimit(limit)

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := op.processFile(gctx, file, rules)
			op.StatusMgr.TrackFile(gctx, info)
			op.StatusMgr.UpdateProgress(gctx)
			op.report(gctx, info)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("processing files: %w", err)
	}

	summary := op.StatusMgr.Summary()
	if summary.Failed > 0 {
		return errors.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	}
	if op.Check && summary.Modified > 0 {
		return errors.Errorf("%d files would change: %w", summary.Modified, ErrChangesPending)
	}
	return nil
}

// 📄 processFile applies the matching rules to a single file
func (op *applyOperation) processFile(ctx context.Context, file string, rules []text.ReplacementRule) status.FileInfo {
	info := status.FileInfo{Path: file}

	applicable := rulesFor(file, rules)
	if len(applicable) == 0 {
		info.Status = status.StatusSkipped
		return info
	}

	content, err := op.StatusMgr.ReadFile(ctx, file)
	if err != nil {
		info.Status = status.StatusFailed
		info.Error = err
		return info
	}
	if isBinary(content) {
		info.Status = status.StatusSkipped
		return info
	}

	result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(content), applicable)
	if err != nil {
		info.Status = status.StatusFailed
		info.Error = errors.Errorf("replacing text in %s: %w", file, err)
		return info
	}

	info.Replacements = result.ReplacementCount
	if !result.WasModified {
		info.Status = status.StatusUnchanged
		return info
	}
	info.Status = status.StatusModified

	if !op.writes() {
		return info
	}

	if err := op.StatusMgr.WriteFileAtomic(ctx, file, result.ModifiedContent); err != nil {
		info.Status = status.StatusFailed
		info.Error = errors.Errorf("writing %s: %w", file, err)
		return info
	}
	info.Written = true
	return info
}

// 📝 report prints the file result to the console logger
func (op *applyOperation) report(ctx context.Context, info status.FileInfo) {
	if info.Error != nil {
		op.logger(ctx).Error().Err(info.Error).Str("file", info.Path).Msg("file failed")
	}
	if op.Console == nil {
		return
	}
	// unchanged and skipped files only show up in debug logs
	if info.Status == status.StatusUnchanged || info.Status == status.StatusSkipped {
		return
	}

	label := info.Status.String()
	if info.Status == status.StatusModified && !info.Written {
		label = "would modify"
	}

	op.Console.LogFileOperation(ctx, log.FileOperation{
		Path:         info.Path,
		Status:       label,
		Replacements: info.Replacements,
		IsModified:   info.Status == status.StatusModified,
		IsSkipped:    info.Status == status.StatusSkipped,
		IsFailed:     info.Status == status.StatusFailed,
		DryRun:       !op.writes(),
	})
}
