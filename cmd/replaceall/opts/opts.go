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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/replaceall/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// DefaultConfigFiles are tried in order when no config file is given
var DefaultConfigFiles = []string{
	".replaceall.yaml",
	".replaceall.yml",
	".replaceall.hcl",
	".replaceall.json",
	".replaceall",
}

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
}

// ResolveConfigFile returns the explicit config file, or the first default
// config file present in the working directory
func (o *RootOpts) ResolveConfigFile() (string, error) {
	if o.ConfigFile != "" {
		return o.ConfigFile, nil
	}
	for _, name := range DefaultConfigFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, nil
		}
	}
	return "", errors.Errorf("no config file found, tried %v", DefaultConfigFiles)
}

// LoadConfig loads and validates the config file
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	path, err := o.ResolveConfigFile()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", path).Stringer("summary", cfg).Msg("loaded config")
	return cfg, nil
}
