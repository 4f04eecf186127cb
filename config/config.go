//  Copyright (c) 2023 Uber Technologies, Inc.
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

// Package config assembles the user-configurable knobs that control a
// mylangir run: a flag.FlagSet for the CLI, optionally overlaid with values
// read from a project settings file so repeated invocations in the same
// directory don't need to repeat flags.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the fully-resolved set of knobs for one mylangir invocation.
// The zero value differs from DefaultConfig: its MaxDepth of 0 resolves to
// the same limit, but it leaves ReportWarnings off.
type Config struct {
	// MaxDepth caps the nested-BLOCK recursion depth CFGBuilder will
	// descend. 0 means MaxBlockRecursionDepth.
	MaxDepth int `yaml:"max_depth"`

	// FailFast is read from the -fail-fast flag and the project file and
	// carried in the resolved Config. ProgramAssembler does not consult it:
	// assembly always processes every file, whatever diagnostics arise.
	FailFast bool `yaml:"fail_fast"`

	// ReportWarnings controls whether report.Write includes warnings
	// alongside errors.
	ReportWarnings bool `yaml:"report_warnings"`
}

// DefaultConfig is the configuration used when neither flags nor a project
// file override it.
var DefaultConfig = Config{
	MaxDepth:       MaxBlockRecursionDepth,
	FailFast:       false,
	ReportWarnings: true,
}

// fileConfig mirrors Config's yaml-tagged fields as pointers, so a project
// file that only sets one field doesn't clobber the rest with zero values.
type fileConfig struct {
	MaxDepth       *int  `yaml:"max_depth"`
	FailFast       *bool `yaml:"fail_fast"`
	ReportWarnings *bool `yaml:"report_warnings"`
}

// LoadFile reads a .mylangir.yaml-style project settings file and applies
// it on top of base, returning the merged Config. A missing file is not an
// error: base is returned unchanged, matching the CLI's "project file is
// optional" behavior.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	merged := base
	if fc.MaxDepth != nil {
		merged.MaxDepth = *fc.MaxDepth
	}
	if fc.FailFast != nil {
		merged.FailFast = *fc.FailFast
	}
	if fc.ReportWarnings != nil {
		merged.ReportWarnings = *fc.ReportWarnings
	}
	return merged, nil
}

// RegisterFlags adds -max-depth, -fail-fast, and -report-warnings to fs,
// seeded from base, and returns a function that must be called after
// fs.Parse to obtain the final Config. Flags always win over whatever base
// (typically the result of LoadFile) already set.
func RegisterFlags(fs *flag.FlagSet, base Config) func() Config {
	maxDepth := fs.Int("max-depth", base.MaxDepth, "maximum nested-block recursion depth the CFG builder tolerates")
	failFast := fs.Bool("fail-fast", base.FailFast, "recorded in the resolved config; program assembly does not consult it")
	reportWarnings := fs.Bool("report-warnings", base.ReportWarnings, "include warnings alongside errors in the report")

	return func() Config {
		return Config{
			MaxDepth:       *maxDepth,
			FailFast:       *failFast,
			ReportWarnings: *reportWarnings,
		}
	}
}
