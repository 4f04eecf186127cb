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

package cfg

import "mylang.dev/ir/ot"

// Instruction is one statement's or expression's worth of IR attached to a
// Block.
type Instruction struct {
	Text string
	OT   *ot.Node
}

// Block is a basic block: a straight-line sequence of instructions with a
// single entry. Block.ID is stable and unique within
// its owning CFG.
type Block struct {
	ID           int
	Type         BlockType
	Name         string
	Instructions []Instruction
	IsBreak      bool

	// OutEdges/InEdges hold indices into the owning CFG's Edges arena.
	// Edge.FromBlock == this block's ID for every index in OutEdges;
	// Edge.TargetBlock == this block's ID for every index in InEdges.
	OutEdges []int
	InEdges  []int
}

// IsEmpty reports whether no instructions have been appended to b yet.
func (b *Block) IsEmpty() bool {
	return len(b.Instructions) == 0
}

// AddInstruction appends an instruction, flipping IsEmpty to false.
func (b *Block) AddInstruction(text string, root *ot.Node) {
	b.Instructions = append(b.Instructions, Instruction{Text: text, OT: root})
}

// LastInstruction returns a pointer to the last instruction appended to b,
// or nil if b is empty. The pointer aliases b.Instructions's backing
// array; callers must not retain it across further appends to b.
func (b *Block) LastInstruction() *Instruction {
	if b.IsEmpty() {
		return nil
	}
	return &b.Instructions[len(b.Instructions)-1]
}
