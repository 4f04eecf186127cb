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

// Package program defines the Program model -- a flat registry of
// user-defined functions with their signatures -- and the two-pass
// ProgramAssembler driver that builds it from a collection of parsed
// source files.
package program

import (
	"mylang.dev/ir/cfg"
	"mylang.dev/ir/diag"
	"mylang.dev/ir/typemodel"
	"mylang.dev/ir/util/orderedmap"
)

// ArgumentInfo describes one formal argument of a function.
type ArgumentInfo struct {
	Type typemodel.TypeInfo
	Name string
	Line uint
	Pos  uint
}

// FunctionInfo is a user-defined function's signature plus (once pass 2 has
// run) its CFG. CFG is nil after pass 1 and populated by pass 2, except for
// the second of two same-named functions -- see the documented
// open-question resolution, reiterated in Assemble's doc.
type FunctionInfo struct {
	FileName     string
	FunctionName string
	ReturnType   typemodel.TypeInfo
	Arguments    []ArgumentInfo
	CFG          *cfg.CFG
	Line         uint
	Pos          uint
}

// Program is the top-level IR artifact: an insertion-ordered registry of
// functions plus accumulated diagnostics.
type Program struct {
	// Functions lists every FunctionInfo in pass-1 insertion order,
	// including both halves of a redeclaration pair.
	Functions []*FunctionInfo
	Errors    *diag.Sink
	Warnings  *diag.Sink

	// byName indexes Functions for pass 2's CFG binding. It is first-writer-
	// wins: on a name collision, the first FunctionInfo registered under
	// that name keeps the index entry, so only the first match of a
	// redeclared name receives its CFG.
	byName *orderedmap.OrderedMap[string, *FunctionInfo]
}

// New creates an empty Program.
func New() *Program {
	return &Program{
		Errors:   &diag.Sink{},
		Warnings: &diag.Sink{},
		byName:   orderedmap.New[string, *FunctionInfo](),
	}
}

// Lookup returns the FunctionInfo pass-2 CFG binding resolves to for name,
// or nil if no function was registered under that name.
func (p *Program) Lookup(name string) *FunctionInfo {
	return p.byName.Value(name)
}

// Reindex rebuilds a Program's by-name lookup index from its Functions
// slice, first-writer-wins. Assemble keeps the index in sync
// incrementally as it registers functions; Reindex exists for callers
// (package cache) that reconstruct a Program's Functions slice directly,
// bypassing registerFunction.
func (p *Program) Reindex() {
	p.byName = orderedmap.New[string, *FunctionInfo]()
	for _, fn := range p.Functions {
		p.byName.StoreIfAbsent(fn.FunctionName, fn)
	}
}
