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

// Package otbuild rewrites expression and variable-declaration AST
// subtrees into canonical Operation Trees (package ot). It is the only
// place new structural errors (Assign/Call/Index) are discovered.
package otbuild

import (
	"strconv"

	"mylang.dev/ir/ast"
	"mylang.dev/ir/diag"
	"mylang.dev/ir/ot"
	"mylang.dev/ir/typemodel"
)

// Builder rewrites AST expression and declaration subtrees into Operation
// Trees, accumulating structural errors into the file-scoped diag.Sink
// handed to it. A Builder is cheap to construct and holds no state beyond
// its target file name and error sink; cfgbuild.New creates one per
// function body.
type Builder struct {
	// File is the name diagnostics raised while building are attributed to.
	File string
	// Errors is the sink that
	// Assign/Call/Index errors are appended to. Construction still returns
	// a best-effort node after recording an error so later passes may
	// continue.
	Errors *diag.Sink
}

// NewBuilder creates a Builder attributing diagnostics to file and
// accumulating them into errs.
func NewBuilder(file string, errs *diag.Sink) *Builder {
	return &Builder{File: file, Errors: errs}
}

// BuildExpr rewrites an expression AST subtree into an Operation Tree.
// isLvalue marks that expr is being used as an assignment target;
// isFunctionName marks that expr is being used as a call callee or index
// base. Both flags enforce the language rules in the dispatch
// table and may raise Assign/Call errors.
func (b *Builder) BuildExpr(expr *ast.Node, isLvalue, isFunctionName bool) *ot.Node {
	if expr == nil {
		return nil
	}

	switch expr.Label {
	case ast.Assign:
		return b.buildAssign(expr)
	case ast.FuncCall:
		return b.buildCall(expr, isLvalue)
	case ast.Indexing:
		return b.buildIndexing(expr)
	case ast.Identifier:
		return b.buildIdentifier(expr, isLvalue, isFunctionName)
	default:
		if ast.BinaryOps[expr.Label] {
			return b.buildBinary(expr, isLvalue, isFunctionName)
		}
		if ast.UnaryOps[expr.Label] {
			return b.buildUnary(expr, isLvalue, isFunctionName)
		}
		if ast.Literals[expr.Label] {
			return b.buildLiteral(expr, isLvalue, isFunctionName)
		}
		// Any other label in expression position yields a null OT.
		return nil
	}
}

func (b *Builder) buildAssign(expr *ast.Node) *ot.Node {
	lhs := expr.MustChild(0)
	rhs := expr.MustChild(1)
	lvalue := b.BuildExpr(lhs, true, false)
	rvalue := b.BuildExpr(rhs, false, false)
	return ot.New(ot.Write, expr.Line, expr.Pos, lvalue, rvalue)
}

func (b *Builder) buildCall(expr *ast.Node, isLvalue bool) *ot.Node {
	if isLvalue {
		b.Errors.Add(diag.AssignError, b.File, expr.Line, expr.Pos, "call expression used as assignment target")
	}
	callee := expr.MustChild(0)
	calleeOT := b.BuildExpr(callee, false, true)
	children := []*ot.Node{calleeOT}
	for i := 1; i < expr.NChildren(); i++ {
		children = append(children, b.BuildExpr(expr.Child(i), false, false))
	}
	return ot.New(ot.Call, expr.Line, expr.Pos, children...)
}

func (b *Builder) buildIndexing(expr *ast.Node) *ot.Node {
	base := expr.MustChild(0)
	baseOT := b.BuildExpr(base, false, true)
	if expr.NChildren() < 2 {
		b.Errors.Add(diag.IndexError, b.File, expr.Line, expr.Pos, "indexing with no index list")
		return ot.New(ot.Index, expr.Line, expr.Pos, baseOT)
	}
	children := []*ot.Node{baseOT}
	for i := 1; i < expr.NChildren(); i++ {
		children = append(children, b.BuildExpr(expr.Child(i), false, false))
	}
	return ot.New(ot.Index, expr.Line, expr.Pos, children...)
}

func (b *Builder) buildBinary(expr *ast.Node, isLvalue, isFunctionName bool) *ot.Node {
	if isLvalue {
		b.Errors.Add(diag.AssignError, b.File, expr.Line, expr.Pos, "binary expression used as assignment target")
	}
	if isFunctionName {
		b.Errors.Add(diag.CallError, b.File, expr.Line, expr.Pos, "binary expression used as call target")
	}
	left := b.BuildExpr(expr.MustChild(0), false, false)
	right := b.BuildExpr(expr.MustChild(1), false, false)
	return ot.New(ot.Label(expr.Label), expr.Line, expr.Pos, left, right)
}

func (b *Builder) buildUnary(expr *ast.Node, isLvalue, isFunctionName bool) *ot.Node {
	if isLvalue {
		b.Errors.Add(diag.AssignError, b.File, expr.Line, expr.Pos, "unary expression used as assignment target")
	}
	if isFunctionName {
		b.Errors.Add(diag.CallError, b.File, expr.Line, expr.Pos, "unary expression used as call target")
	}
	operand := b.BuildExpr(expr.MustChild(0), false, false)
	return ot.New(ot.Label(expr.Label), expr.Line, expr.Pos, operand)
}

func (b *Builder) buildIdentifier(expr *ast.Node, isLvalue, isFunctionName bool) *ot.Node {
	name := identifierName(expr)
	if isLvalue || isFunctionName {
		return ot.NewName(name, expr.Line, expr.Pos)
	}
	return ot.New(ot.Read, expr.Line, expr.Pos, ot.NewName(name, expr.Line, expr.Pos))
}

func (b *Builder) buildLiteral(expr *ast.Node, isLvalue, isFunctionName bool) *ot.Node {
	if isLvalue {
		b.Errors.Add(diag.AssignError, b.File, expr.Line, expr.Pos, "literal used as assignment target")
	}
	if isFunctionName {
		b.Errors.Add(diag.CallError, b.File, expr.Line, expr.Pos, "literal used as call target")
	}
	typeLabel := ot.NewName(string(expr.Label), expr.Line, expr.Pos)
	value := ot.NewName(literalValue(expr), expr.Line, expr.Pos)
	return ot.New(ot.LitRead, expr.Line, expr.Pos, typeLabel, value)
}

// identifierName reads the literal text of an IDENTIFIER node, carried as
// the label of its sole child (the input AST contract has no free-form
// text field, so tokens encode their text as a child node's label).
func identifierName(expr *ast.Node) string {
	if expr.NChildren() > 0 {
		return string(expr.MustChild(0).Label)
	}
	return string(expr.Label)
}

// literalValue reads the literal text of a literal node the same way.
func literalValue(expr *ast.Node) string {
	if expr.NChildren() > 0 {
		return string(expr.MustChild(0).Label)
	}
	return string(expr.Label)
}

// BuildVar rewrites a VAR AST subtree into a declare/seqDeclare Operation
// Tree. t is the already-parsed type of the declaration.
func (b *Builder) BuildVar(varNode *ast.Node, t typemodel.TypeInfo) *ot.Node {
	names, inits := splitVarChildren(varNode)
	n := len(names)

	if n == 1 {
		return b.buildDeclare(varNode, t, names[0], inits[0])
	}

	children := make([]*ot.Node, n)
	for i := 0; i < n; i++ {
		children[i] = b.buildDeclare(varNode, t, names[i], inits[i])
	}
	return ot.New(ot.SeqDeclare, varNode.Line, varNode.Pos, children...)
}

// splitVarChildren splits a VAR node's children into its N identifier
// nodes followed by N parallel INIT nodes.
func splitVarChildren(varNode *ast.Node) (names []*ast.Node, inits []*ast.Node) {
	rest := varNode.Children[1:] // skip TYPEREF
	n := len(rest) / 2
	names = rest[:n]
	inits = rest[n:]
	return names, inits
}

func (b *Builder) buildDeclare(varNode *ast.Node, t typemodel.TypeInfo, nameNode, initNode *ast.Node) *ot.Node {
	withType := buildWithType(t)
	name := ot.NewName(identifierName(nameNode), nameNode.Line, nameNode.Pos)

	children := []*ot.Node{withType, name}
	if valueExpr := initValue(initNode); valueExpr != nil {
		rvalue := b.BuildExpr(valueExpr, false, false)
		lvalue := ot.NewName(identifierName(nameNode), nameNode.Line, nameNode.Pos)
		write := ot.New(ot.Write, initNode.Line, initNode.Pos, lvalue, rvalue).Imaginary()
		children = append(children, write)
	}
	return ot.New(ot.Declare, nameNode.Line, nameNode.Pos, children...)
}

// initValue returns the INIT node's value expression child, or nil if the
// declaration has no initializer.
func initValue(initNode *ast.Node) *ast.Node {
	if initNode == nil || initNode.NChildren() == 0 {
		return nil
	}
	return initNode.Child(0)
}

// buildWithType builds the `withType` node describing t: [typeName,
// custom|builtin, optional array(dim, [element withType])].
func buildWithType(t typemodel.TypeInfo) *ot.Node {
	typeNameNode := ot.NewName(t.TypeName, t.Line, t.Pos)
	kindLabel := ot.Builtin
	if t.Custom {
		kindLabel = ot.Custom
	}
	kindNode := ot.New(kindLabel, t.Line, t.Pos)

	children := []*ot.Node{typeNameNode, kindNode}
	if t.IsArray {
		dimNode := ot.NewName(strconv.Itoa(t.ArrayDim), t.Line, t.Pos)
		arrayChildren := []*ot.Node{dimNode}
		if t.Element != nil {
			arrayChildren = append(arrayChildren, buildWithType(*t.Element))
		}
		children = append(children, ot.New(ot.ArrayType, t.Line, t.Pos, arrayChildren...))
	}
	return ot.New(ot.WithType, t.Line, t.Pos, children...)
}
