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

// Package cfg defines the Control-Flow Graph data model: basic blocks and
// typed edges. Package cfgbuild is the only writer of these types; package
// callgraph and package report are read-only consumers.
//
// Blocks and edges are stored by index in a per-CFG arena (CFG.Blocks),
// to avoid graph-ownership cycles: loops and
// dual-threaded edges naturally form reference cycles, and indexing into a
// single owning slice sidesteps the double-free hazard a pointer-linked
// representation invites. In/out edge lists are stored as indices into
// CFG.Edges so both directions of an edge share one record.
package cfg

// BlockType is a hint for downstream consumers about a block's role.
type BlockType int

// Block types.
const (
	Unconditional BlockType = iota
	Conditional
	Terminal
)

func (t BlockType) String() string {
	switch t {
	case Conditional:
		return "CONDITIONAL"
	case Terminal:
		return "TERMINAL"
	default:
		return "UNCONDITIONAL"
	}
}

// EdgeType distinguishes the three kinds of control-flow edge.
type EdgeType int

// Edge types.
const (
	UnconditionalJump EdgeType = iota
	TrueCondition
	FalseCondition
)

func (t EdgeType) String() string {
	switch t {
	case TrueCondition:
		return "TRUE_CONDITION"
	case FalseCondition:
		return "FALSE_CONDITION"
	default:
		return "UNCONDITIONAL_JUMP"
	}
}
