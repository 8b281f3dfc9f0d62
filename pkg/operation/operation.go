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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/replaceall/pkg/config"
	"github.com/walteh/replaceall/pkg/log"
	"github.com/walteh/replaceall/pkg/status"
	"github.com/walteh/replaceall/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned in check mode when at least one file would change
var ErrChangesPending = errors.Base("changes pending")

// 🎯 Operation is a unit of work run by an OperationRunner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated rule configuration
	Config *config.Config
	// Replacer applies rules to file content
	Replacer text.TextReplacer
	// Status reads, writes and tracks files under the root
	Status *status.Manager
	// Logger prints per-file results, may be nil
	Logger *log.Logger
	// Check reports pending changes without writing
	Check bool
}

// 🧱 BaseOperation holds the shared dependencies of every operation
type BaseOperation struct {
	Config    *config.Config
	Replacer  text.TextReplacer
	StatusMgr *status.Manager
	Console   *log.Logger
	Check     bool
}

// NewBaseOperation fills the defaults for missing options
func NewBaseOperation(opts Options) BaseOperation {
	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewSimpleTextReplacer()
	}
	statusMgr := opts.Status
	if statusMgr == nil && opts.Config != nil {
		statusMgr = status.New(opts.Config.Root, nil)
	}
	return BaseOperation{
		Config:    opts.Config,
		Replacer:  replacer,
		StatusMgr: statusMgr,
		Console:   opts.Logger,
		Check:     opts.Check,
	}
}

// writes reports whether modified files are written back to disk
func (op *BaseOperation) writes() bool {
	return !op.Check && !op.Config.DryRun
}

func (op *BaseOperation) logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func (op *BaseOperation) validate() error {
	if op.Config == nil {
		return errors.Errorf("config is required")
	}
	if op.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	return nil
}
