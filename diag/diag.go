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

// Package diag accumulates the structural errors and warnings discovered
// during IR construction. It never aborts construction and it
// never formats anything for a human -- see package report for that.
package diag

import "fmt"

// Kind enumerates the structural diagnostic kinds the core produces.
type Kind string

// Diagnostic kinds.
const (
	Redeclaration   Kind = "redeclaration"
	ControlUnreach  Kind = "unreachable-code"
	ControlOutLoop  Kind = "break-out-of-loop"
	AssignError     Kind = "assign-error"
	CallError       Kind = "call-error"
	IndexError      Kind = "index-error"
	NoReturnWarning Kind = "no-return"
)

// Entry is one accumulated error or warning, with file/line/column
// provenance (1-based line and column).
type Entry struct {
	Kind    Kind
	File    string
	Line    uint // 1-based
	Col     uint // 1-based
	Message string
}

// String renders the entry as the kind prefix
// followed by human-readable context including file name, line, and column.
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s (%s:%d:%d)", e.Kind, e.Message, e.File, e.Line, e.Col)
}

// Sink is a small
// append-only accumulator threaded by pointer through OTBuilder's (and
// later CFGBuilder's) recursion. Program embeds two Sinks, one for errors
// and one for warnings.
type Sink struct {
	entries []Entry
}

// Add appends a new diagnostic entry. pos is the 0-based column of the
// input AST contract and is converted to a 1-based column; line is already
// 1-based and is stored as given.
func (s *Sink) Add(kind Kind, file string, line, pos uint, format string, args ...any) {
	s.entries = append(s.entries, Entry{
		Kind:    kind,
		File:    file,
		Line:    line,
		Col:     pos + 1,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns the accumulated entries in insertion order. The returned
// slice must not be mutated by callers.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Len reports the number of accumulated entries.
func (s *Sink) Len() int {
	return len(s.entries)
}
