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

// Edge is a typed control-flow edge between two blocks, identified by
// block ID.
type Edge struct {
	Type        EdgeType
	Condition   string // display string; empty for UnconditionalJump
	FromBlock   int
	TargetBlock int
}

// CFG is one function's control-flow graph: an arena of blocks and edges,
// referenced by index (see package doc). EntryBlock is always 0, the
// synthetic START block.
type CFG struct {
	EntryBlock int
	Blocks     []*Block
	Edges      []*Edge
}

// New creates a CFG with its synthetic START block (id 0, Unconditional,
// no instructions) already in place.
func New() *CFG {
	g := &CFG{EntryBlock: 0}
	start := g.NewBlock(Unconditional, "START")
	_ = start // id 0 by construction, asserted by the test suite
	return g
}

// NewBlock allocates and appends a new empty block to the arena, assigning
// it the next stable id.
func (g *CFG) NewBlock(t BlockType, name string) *Block {
	b := &Block{ID: len(g.Blocks), Type: t, Name: name}
	g.Blocks = append(g.Blocks, b)
	return b
}

// Block returns the block with the given id.
func (g *CFG) Block(id int) *Block {
	return g.Blocks[id]
}

// AddEdge adds a typed edge from `from` to `to`. Any
// attempt to add an out-edge from a block whose IsBreak is true is
// silently dropped -- this is the single enforcement point for the
// "isBreak blocks have at most one out-edge" invariant.
func (g *CFG) AddEdge(from, to *Block, t EdgeType, condition string) {
	if from.IsBreak {
		return
	}
	e := &Edge{Type: t, Condition: condition, FromBlock: from.ID, TargetBlock: to.ID}
	idx := len(g.Edges)
	g.Edges = append(g.Edges, e)
	from.OutEdges = append(from.OutEdges, idx)
	to.InEdges = append(to.InEdges, idx)
}

// Edge returns the edge at the given index in the arena.
func (g *CFG) Edge(idx int) *Edge {
	return g.Edges[idx]
}

// OutEdges returns the edges leaving b, resolved from the arena.
func (g *CFG) OutEdges(b *Block) []*Edge {
	edges := make([]*Edge, len(b.OutEdges))
	for i, idx := range b.OutEdges {
		edges[i] = g.Edges[idx]
	}
	return edges
}

// InEdges returns the edges entering b, resolved from the arena.
func (g *CFG) InEdges(b *Block) []*Edge {
	edges := make([]*Edge, len(b.InEdges))
	for i, idx := range b.InEdges {
		edges[i] = g.Edges[idx]
	}
	return edges
}

// End returns the unique TERMINAL block, or nil if the CFG has not yet had
// its return-expression fixup performed.
func (g *CFG) End() *Block {
	for _, b := range g.Blocks {
		if b.Type == Terminal {
			return b
		}
	}
	return nil
}
