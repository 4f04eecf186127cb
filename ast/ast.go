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

// Package ast defines the read-only view over already-parsed MyLang source
// files that the rest of this module consumes. Parsing source text into this
// shape is an external collaborator's job; this package never constructs a
// Node from text, it only walks and queries one.
package ast

import "fmt"

// Label identifies the syntactic category of a Node. The vocabulary is
// closed: any Node carrying a Label this package does not recognize is
// still walkable (Children, Line, Pos all work), but yields a null
// OperationTreeNode wherever it appears in expression position.
type Label string

// Top-level labels.
const (
	Source        Label = "SOURCE"
	FuncDef       Label = "FUNC_DEF"
	FuncSignature Label = "FUNC_SIGNATURE"
	Typeref       Label = "TYPEREF"
	Type          Label = "TYPE"
	BuiltinType   Label = "BUILTIN_TYPE"
	CustomType    Label = "CUSTOM_TYPE"
	Array         Label = "ARRAY"
	Name          Label = "NAME"
	ArgdefList    Label = "ARGDEF_LIST"
	Argdef        Label = "ARGDEF"
	Identifier    Label = "IDENTIFIER"
	Block         Label = "BLOCK"
)

// Statement labels.
const (
	Var     Label = "VAR"
	If      Label = "IF"
	Else    Label = "ELSE"
	While   Label = "WHILE"
	DoWhile Label = "DO_WHILE"
	Break   Label = "BREAK"
	Expr    Label = "EXPR"
	Init    Label = "INIT"
)

// Expression labels.
const (
	Assign   Label = "ASSIGN"
	FuncCall Label = "FUNC_CALL"
	Indexing Label = "INDEXING"
	ExprList Label = "EXPR_LIST"

	Plus  Label = "PLUS"
	Minus Label = "MINUS"
	Mul   Label = "MUL"
	Div   Label = "DIV"

	Neg Label = "NEG"
	Not Label = "NOT"

	Bool Label = "BOOL"
	Str  Label = "STR"
	Symb Label = "SYMB"
	Hex  Label = "HEX"
	Bits Label = "BITS"
	Dec  Label = "DEC"
)

// BinaryOps is the closed set of binary-operator labels recognized by
// OTBuilder.
var BinaryOps = map[Label]bool{Plus: true, Minus: true, Mul: true, Div: true}

// UnaryOps is the closed set of unary-operator labels recognized by
// OTBuilder.
var UnaryOps = map[Label]bool{Neg: true, Not: true}

// Literals is the closed set of literal labels recognized by OTBuilder.
var Literals = map[Label]bool{Bool: true, Str: true, Symb: true, Hex: true, Bits: true, Dec: true}

// ReturnableLabels are the OT root labels (see package ot) whose instruction
// is eligible for return-expression fixup performed by CFGBuilder.
var ReturnableLabels = map[string]bool{
	"PLUS": true, "MINUS": true, "MUL": true, "DIV": true,
	"NEG": true, "NOT": true,
	"litRead": true, "read": true, "call": true, "index": true,
}

// Node is a single node of an already-parsed MyLang source file. A Node
// carries no file name; the file its provenance is reported under is
// supplied alongside the SOURCE root (see program.File).
type Node struct {
	Label       Label
	Children    []*Node
	Line        uint
	Pos         uint // 0-based column, per the input AST contract
	IsImaginary bool
}

// NChildren returns the number of direct children of n.
func (n *Node) NChildren() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child of n, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Is reports whether n is non-nil and has the given label.
func (n *Node) Is(l Label) bool {
	return n != nil && n.Label == l
}

// MustChild returns the i-th child of n, panicking with an InternalError if
// it does not exist. Used at points where the input AST contract
// guarantees a child is present.
func (n *Node) MustChild(i int) *Node {
	c := n.Child(i)
	if c == nil {
		panic(InternalError{Label: string(n.Label), Line: n.Line, Pos: n.Pos,
			Reason: fmt.Sprintf("expected child %d, node has %d", i, n.NChildren())})
	}
	return c
}

// InternalError signals a contract violation in the input AST: a shape the
// upstream parser should never produce. It is not a structural Diagnostic
// -- those are recoverable findings about valid-shaped input.
// InternalError is meant to be recovered, if at all, by the caller of this
// module, not by the core itself.
type InternalError struct {
	Label  string
	Line   uint
	Pos    uint
	Reason string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("mylang/ast: contract violation at %s (line %d, col %d): %s",
		e.Label, e.Line, e.Pos+1, e.Reason)
}
