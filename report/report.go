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

// Package report turns accumulated diag.Entry values into a user-facing
// report. It keeps accumulation (package diag) separate from presentation:
// the core itself never formats anything for a human.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"mylang.dev/ir/diag"
	"mylang.dev/ir/program"
)

// Sort returns a copy of entries sorted by file name and then by line and
// column, for stable, deterministic reporting.
func Sort(entries []diag.Entry) []diag.Entry {
	sorted := append([]diag.Entry(nil), entries...)
	slices.SortFunc(sorted, func(a, b diag.Entry) int {
		if n := cmp.Compare(a.File, b.File); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Line, b.Line); n != 0 {
			return n
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return sorted
}

// Write renders a Program's accumulated errors and warnings to w, one per
// line, errors first. reportWarnings controls whether warnings are
// included at all, matching the CLI's -report-warnings flag.
func Write(w io.Writer, prog *program.Program, reportWarnings bool) error {
	for _, e := range Sort(prog.Errors.Entries()) {
		if _, err := fmt.Fprintln(w, "error: "+e.String()); err != nil {
			return err
		}
	}
	if !reportWarnings {
		return nil
	}
	for _, e := range Sort(prog.Warnings.Entries()) {
		if _, err := fmt.Fprintln(w, "warning: "+e.String()); err != nil {
			return err
		}
	}
	return nil
}
