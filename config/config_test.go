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

package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"mylang.dev/ir/config"
)

func TestLoadFile_MissingIsNotError(t *testing.T) {
	t.Parallel()

	got, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), config.DefaultConfig)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig, got)
}

func TestLoadFile_PartialOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mylangir.yaml")
	writeFile(t, path, "fail_fast: true\n")

	got, err := config.LoadFile(path, config.DefaultConfig)
	require.NoError(t, err)
	require.True(t, got.FailFast)
	require.Equal(t, config.DefaultConfig.MaxDepth, got.MaxDepth)
	require.Equal(t, config.DefaultConfig.ReportWarnings, got.ReportWarnings)
}

func TestRegisterFlags_OverridesBase(t *testing.T) {
	t.Parallel()

	base := config.Config{MaxDepth: 5, FailFast: true, ReportWarnings: true}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	resolve := config.RegisterFlags(fs, base)

	require.NoError(t, fs.Parse([]string{"-max-depth=42", "-report-warnings=false"}))

	got := resolve()
	require.Equal(t, 42, got.MaxDepth)
	require.True(t, got.FailFast)
	require.False(t, got.ReportWarnings)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
