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

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/replaceall/pkg/replace"
	"github.com/walteh/replaceall/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultFlags are the pattern flags used when a regex rule sets none
	DefaultFlags = "g"

	// DefaultConcurrency is the number of files processed at once
	DefaultConcurrency = 4
)

// DefaultInclude matches every file under the root
var DefaultInclude = []string{"**/*"}

// 🔄 Rule represents one replace-all applied to matching files
type Rule struct {
	Search         string `json:"search" yaml:"search" hcl:"search"`                                                       // Literal token, or expression when Regex is set
	Replace        string `json:"replace" yaml:"replace" hcl:"replace"`                                                    // Replacement text, placeholders allowed
	Regex          bool   `json:"regex,omitempty" yaml:"regex,omitempty" hcl:"regex,optional"`                             // Treat Search as a pattern
	Flags          string `json:"flags,omitempty" yaml:"flags,omitempty" hcl:"flags,optional"`                             // Pattern flags, must include g
	FileFilterGlob string `json:"file_filter_glob,omitempty" yaml:"file_filter_glob,omitempty" hcl:"file_filter_glob,optional"` // Only apply to matching files
}

// 📚 Config represents the complete configuration
type Config struct {
	Root        string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`                      // Directory to rewrite, relative to the config file
	Include     []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`             // Glob patterns of files to process
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                // Glob patterns of files to skip
	Rules       []Rule   `json:"rules" yaml:"rules" hcl:"rule,block"`                                           // Rules applied in order
	DryRun      bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`             // Report without writing
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"` // Files processed at once

	location string
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func Validate(ctx context.Context, cfg *Config) error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if rule.Search == "" {
			return errors.Errorf("rule %d: search is required", i)
		}
		if rule.Regex && rule.Flags == "" {
			rule.Flags = DefaultFlags
		}
		if !rule.Regex && rule.Flags != "" {
			return errors.Errorf("rule %d: flags require regex = true", i)
		}
		search, err := rule.CompileSearch()
		if err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
		if err := replace.CheckGlobal("replaceAll", search); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if !filepath.IsAbs(cfg.Root) && cfg.location != "" {
		cfg.Root = filepath.Join(filepath.Dir(cfg.location), cfg.Root)
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if len(cfg.Include) == 0 {
		cfg.Include = append([]string(nil), DefaultInclude...)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", cfg.Root).
		Int("rules", len(cfg.Rules)).
		Strs("include", cfg.Include).
		Strs("ignore", cfg.Ignore).
		Msg("validated config")

	return nil
}

// 🧩 CompileSearch returns the search argument of the rule
func (r Rule) CompileSearch() (replace.Search, error) {
	if !r.Regex {
		return replace.Literal(r.Search), nil
	}
	p, err := replace.Compile(r.Search, r.Flags)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// 🧩 Compile converts the rule into a text.ReplacementRule
func (r Rule) Compile() (text.ReplacementRule, error) {
	search, err := r.CompileSearch()
	if err != nil {
		return text.ReplacementRule{}, err
	}
	return text.ReplacementRule{
		Search:         search,
		Replacement:    replace.Text(r.Replace),
		FileFilterGlob: r.FileFilterGlob,
	}, nil
}

// CompileRules compiles every rule, in order
func (cfg *Config) CompileRules() ([]text.ReplacementRule, error) {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rule, err := r.Compile()
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d rules -> %s", len(cfg.Rules), cfg.Root)
}
