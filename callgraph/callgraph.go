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

// Package callgraph derives the program-wide Call Graph by walking every
// function's CFG for `call` Operation Tree nodes. Its CreateNode/AddEdge
// shape and duplicate-edge suppression are grounded on
// golang.org/x/tools/go/callgraph/static's CallGraph builder, adapted from
// walking SSA instructions to walking OT nodes.
package callgraph

import (
	"mylang.dev/ir/ot"
	"mylang.dev/ir/program"
)

// FunctionNode is one function name in the call graph. Callees that name
// an undefined function still get a FunctionNode (a leaf with no further
// out-edges).
type FunctionNode struct {
	FunctionName string
	outEdges     []*CallEdge
	inEdges      []*CallEdge
}

// OutEdges returns the edges leaving n, in insertion order.
func (n *FunctionNode) OutEdges() []*CallEdge { return n.outEdges }

// InEdges returns the edges entering n, in insertion order.
func (n *FunctionNode) InEdges() []*CallEdge { return n.inEdges }

// CallEdge is a directed caller->callee edge, doubly threaded between the
// two FunctionNodes it connects.
type CallEdge struct {
	Caller *FunctionNode
	Callee *FunctionNode
}

// CallGraph is the program-wide call graph.
type CallGraph struct {
	nodes map[string]*FunctionNode
	order []*FunctionNode
}

// New creates an empty CallGraph.
func New() *CallGraph {
	return &CallGraph{nodes: make(map[string]*FunctionNode)}
}

// Nodes returns every FunctionNode, in first-seen order.
func (g *CallGraph) Nodes() []*FunctionNode {
	return g.order
}

// CreateNode returns the FunctionNode for name, creating it (in first-seen
// order) if it does not already exist.
func (g *CallGraph) CreateNode(name string) *FunctionNode {
	if n, ok := g.nodes[name]; ok {
		return n
	}
	n := &FunctionNode{FunctionName: name}
	g.nodes[name] = n
	g.order = append(g.order, n)
	return n
}

// AddEdge adds a caller->callee edge, unless one already exists between
// the same pair.
func AddEdge(caller, callee *FunctionNode) {
	for _, e := range caller.outEdges {
		if e.Callee == callee {
			return
		}
	}
	e := &CallEdge{Caller: caller, Callee: callee}
	caller.outEdges = append(caller.outEdges, e)
	callee.inEdges = append(callee.inEdges, e)
}

// Build walks every function's CFG-borne Operation Trees for `call` nodes
// and records caller/callee edges. Functions without a CFG
// contribute no
// out-edges of their own, but still get a FunctionNode so any calls made
// to them are recorded.
func Build(prog *program.Program) *CallGraph {
	g := New()
	for _, fn := range prog.Functions {
		caller := g.CreateNode(fn.FunctionName)
		if fn.CFG == nil {
			continue
		}
		for _, block := range fn.CFG.Blocks {
			for _, instr := range block.Instructions {
				walkForCalls(g, caller, instr.OT)
			}
		}
	}
	return g
}

// walkForCalls recursively visits an Operation Tree, recording a call
// edge for every `call` node found (its first child is the callee-name
// node) and continuing to descend so calls nested in call
// arguments or operands are also found.
func walkForCalls(g *CallGraph, caller *FunctionNode, n *ot.Node) {
	if n == nil {
		return
	}
	if n.Label == ot.Call && len(n.Children) > 0 {
		calleeName := n.Children[0].Name
		callee := g.CreateNode(calleeName)
		AddEdge(caller, callee)
	}
	for _, c := range n.Children {
		walkForCalls(g, caller, c)
	}
}
