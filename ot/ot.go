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

// Package ot defines the Operation Tree: the canonical, imperative-IR-style
// tree form every statement and expression is rewritten into by package
// otbuild. An Instruction owns exactly one OT root; destroying the
// Instruction destroys the subtree (in Go this falls out naturally from
// there being no other live reference to it).
package ot

// Label is drawn from the closed vocabulary below. Binary/unary operator
// labels pass through unchanged from the originating ast.Label.
type Label string

// OT node labels emitted by OTBuilder.
const (
	Read       Label = "read"
	Write      Label = "write"
	Call       Label = "call"
	Index      Label = "index"
	LitRead    Label = "litRead"
	Declare    Label = "declare"
	SeqDeclare Label = "seqDeclare"
	WithType   Label = "withType"
	ArrayType  Label = "array"
	Custom     Label = "custom"
	Builtin    Label = "builtin"
	Return     Label = "return"
	BreakNode  Label = "break"
	Bare       Label = "" // a bare identifier/operator name node; Node.Name carries the text
)

// Node is one node of an Operation Tree.
type Node struct {
	Label       Label
	Name        string // populated for bare name nodes (identifiers, type names, literal values)
	Children    []*Node
	Line        uint
	Pos         uint
	IsImaginary bool
}

// New creates a Node with the given label and source coordinates.
func New(label Label, line, pos uint, children ...*Node) *Node {
	return &Node{Label: label, Children: children, Line: line, Pos: pos}
}

// NewName creates a bare name node (no OT label, just a literal name),
// used for identifiers used as lvalues/callees and for type/literal text.
func NewName(name string, line, pos uint) *Node {
	return &Node{Name: name, Line: line, Pos: pos}
}

// Imaginary marks n as synthesized by the rewriter (no direct source
// token) and returns n for chaining.
func (n *Node) Imaginary() *Node {
	n.IsImaginary = true
	return n
}

// RootLabel returns the label of n, or "" if n is nil.
func (n *Node) RootLabel() Label {
	if n == nil {
		return ""
	}
	return n.Label
}

// IsBareName reports whether n is a bare name/literal-text node (no
// structural Label).
func (n *Node) IsBareName() bool {
	return n != nil && n.Label == Bare
}
