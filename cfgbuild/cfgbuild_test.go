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

package cfgbuild_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"mylang.dev/ir/ast"
	"mylang.dev/ir/cfg"
	"mylang.dev/ir/cfgbuild"
	"mylang.dev/ir/diag"
	"mylang.dev/ir/ot"
)

func ident(name string) *ast.Node {
	return &ast.Node{Label: ast.Identifier, Children: []*ast.Node{{Label: ast.Label(name)}}}
}

func exprStmt(e *ast.Node) *ast.Node {
	return &ast.Node{Label: ast.Expr, Children: []*ast.Node{e}}
}

func call(name string, args ...*ast.Node) *ast.Node {
	children := append([]*ast.Node{ident(name)}, args...)
	return &ast.Node{Label: ast.FuncCall, Children: children}
}

// TestEmptyBody covers S1: an empty function body reuses its entry block as
// END and raises a single No-return warning attributed to the body.
func TestEmptyBody(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	body := &ast.Node{Label: ast.Block, Line: 1, Pos: 0}
	g := b.BuildFunctionBody(body)

	require.NotNil(t, g.End())
	require.Equal(t, 0, errs.Len())
	require.Equal(t, 1, warnings.Len())
	require.Equal(t, diag.NoReturnWarning, warnings.Entries()[0].Kind)
}

// TestBareLastExpression covers the return-expression fixup: a call as the
// last statement's expression is rewrapped into a `return` OT node.
func TestBareLastExpression(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{
		exprStmt(call("helper")),
	}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 0, warnings.Len())
	end := g.End()
	require.NotNil(t, end)
	preds := g.InEdges(end)
	require.Len(t, preds, 1)
	pred := g.Block(preds[0].FromBlock)
	last := pred.LastInstruction()
	require.Equal(t, ot.Return, last.OT.Label)
	require.Equal(t, ot.Call, last.OT.Children[0].Label)
}

// TestNonReturnableLastExpression covers the case where the last statement
// is not return-eligible: a bare assignment leaves a No-return warning.
func TestNonReturnableLastExpression(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	assign := &ast.Node{Label: ast.Assign, Children: []*ast.Node{ident("x"), ident("y")}}
	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{exprStmt(assign)}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 1, warnings.Len())
	end := g.End()
	pred := g.Block(g.InEdges(end)[0].FromBlock)
	require.Equal(t, ot.Write, pred.LastInstruction().OT.Label)
}

// TestBreakOutsideLoop covers a break with no enclosing loop: recorded as a
// ControlOutLoop error, and processing continues with subsequent statements.
func TestBreakOutsideLoop(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{
		{Label: ast.Break},
		exprStmt(call("helper")),
	}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 1, errs.Len())
	require.Equal(t, diag.ControlOutLoop, errs.Entries()[0].Kind)

	end := g.End()
	pred := g.Block(g.InEdges(end)[0].FromBlock)
	// Both BREAK and the following EXPR were recorded in the same block
	// (break-outside-loop does not truncate processing of the rest of it).
	require.Len(t, pred.Instructions, 2)
}

// TestBreakInsideLoop covers a break inside a while loop body: the block
// carrying the break is marked IsBreak, subsequent statements in the same
// BLOCK are never built, and a ControlUnreach error names the first of them.
func TestBreakInsideLoop(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	whileNode := &ast.Node{Label: ast.While, Children: []*ast.Node{
		ident("cond"),
		{Label: ast.Block, Children: []*ast.Node{
			{Label: ast.Break, Line: 5},
			exprStmt(call("helper")),
		}},
	}}
	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{whileNode}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 1, errs.Len())
	require.Equal(t, diag.ControlUnreach, errs.Entries()[0].Kind)

	// Find the block holding the BREAK instruction and confirm it never
	// received the call that followed it in source.
	var breakBlock *cfg.Block
	for _, blk := range g.Blocks {
		if !blk.IsEmpty() && blk.Instructions[0].Text == string(ast.Break) {
			breakBlock = blk
		}
	}
	require.NotNil(t, breakBlock)
	require.True(t, breakBlock.IsBreak)
	require.Len(t, breakBlock.Instructions, 1)
}

// TestIfElseJoin covers S5: both branches of an if/else converge on the
// same join block, and a statement following the IF is appended to that
// same block rather than a new one.
func TestIfElseJoin(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	ifNode := &ast.Node{Label: ast.If, Children: []*ast.Node{
		ident("cond"),
		&ast.Node{Label: ast.Block, Children: []*ast.Node{exprStmt(call("onTrue"))}},
		{Label: ast.Else, Children: []*ast.Node{
			{Label: ast.Block, Children: []*ast.Node{exprStmt(call("onFalse"))}},
		}},
	}}
	trailing := exprStmt(call("afterIf"))
	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{ifNode, trailing}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 0, errs.Len())

	end := g.End()
	preds := g.InEdges(end)
	require.Len(t, preds, 1)
	joinBlock := g.Block(preds[0].FromBlock)
	require.Len(t, joinBlock.Instructions, 1)
	// The trailing call is END's predecessor's last expression, so the
	// return-expression fixup has wrapped it: return[call[afterIf]].
	require.Equal(t, "afterIf", joinBlock.Instructions[0].OT.Children[0].Children[0].Name)
}

func TestDoWhile(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 0)

	doWhile := &ast.Node{Label: ast.DoWhile, Children: []*ast.Node{
		&ast.Node{Label: ast.Block, Children: []*ast.Node{exprStmt(call("onIter"))}},
		ident("cond"),
	}}
	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{doWhile}}
	g := b.BuildFunctionBody(body)

	require.Equal(t, 0, errs.Len())
	require.NotNil(t, g.End())
}

// TestBuildFunctionBody_ExceedsMaxDepth covers the recursion-depth guard: a
// chain of nested BLOCKs deeper than maxDepth panics with an
// ast.InternalError rather than recursing unbounded.
func TestBuildFunctionBody_ExceedsMaxDepth(t *testing.T) {
	t.Parallel()

	var errs, warnings diag.Sink
	b := cfgbuild.New("a.my", &errs, &warnings, 2)

	body := &ast.Node{Label: ast.Block, Children: []*ast.Node{
		{Label: ast.Block, Children: []*ast.Node{
			{Label: ast.Block, Children: []*ast.Node{
				{Label: ast.Block},
			}},
		}},
	}}

	require.PanicsWithValue(t,
		ast.InternalError{Label: "BLOCK", Reason: "nested BLOCK recursion exceeded 2 levels"},
		func() { b.BuildFunctionBody(body) },
	)
}
