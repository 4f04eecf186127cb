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

// Package cfgbuild turns a function body (a BLOCK ast.Node) into a cfg.CFG
// of basic blocks and typed edges. It threads break targets, attaches
// Operation Trees to instructions via otbuild, and performs the
// return-expression fixup.
//
// This is the largest single component of the IR-construction core. Its
// threaded recursion state (current CFG, isLoop, loopExit,
// prev/existing) is modeled as an explicit Builder + blockCtx value pair,
// rather than module-level mutable state.
package cfgbuild

import (
	"fmt"

	"mylang.dev/ir/ast"
	"mylang.dev/ir/cfg"
	"mylang.dev/ir/config"
	"mylang.dev/ir/diag"
	"mylang.dev/ir/ot"
	"mylang.dev/ir/otbuild"
	"mylang.dev/ir/typemodel"
)

// Builder builds one function's CFG. A Builder is not safe for concurrent
// use on the same CFG; build one Builder per function.
type Builder struct {
	File     string
	Errors   *diag.Sink
	Warnings *diag.Sink
	otb      *otbuild.Builder

	// maxDepth bounds the nested-BLOCK recursion depth buildBlock will
	// descend before panicking with an ast.InternalError, rather than
	// silently recursing until the goroutine stack overflows.
	maxDepth int

	// bodyLine/bodyPos fall back as the location for a No-return warning
	// raised against a predecessor block that holds no instructions at all
	// (spec S1: the empty-function-body scenario), which otherwise has no
	// node of its own to attribute the warning to.
	bodyLine, bodyPos uint
}

// New creates a Builder attributing diagnostics raised during CFG
// construction (including those raised by its internal otbuild.Builder) to
// file, and bounding nested-BLOCK recursion to maxDepth levels. maxDepth <=
// 0 falls back to config.MaxBlockRecursionDepth.
func New(file string, errors, warnings *diag.Sink, maxDepth int) *Builder {
	if maxDepth <= 0 {
		maxDepth = config.MaxBlockRecursionDepth
	}
	return &Builder{
		File:     file,
		Errors:   errors,
		Warnings: warnings,
		otb:      otbuild.NewBuilder(file, errors),
		maxDepth: maxDepth,
	}
}

// blockCtx is the break-related state threaded through the recursive
// descent: whether we are currently inside a loop body, and if so, which
// block a `break` should jump to. depth counts nested BLOCK bodies entered
// so far, enforced against the Builder's maxDepth by buildBlock.
type blockCtx struct {
	isLoop   bool
	loopExit *cfg.Block
	depth    int
}

// descend returns ctx with depth incremented, preserving the current loop
// context. Used wherever buildBlock recurses into a nested BLOCK body.
func (ctx blockCtx) descend() blockCtx {
	return blockCtx{isLoop: ctx.isLoop, loopExit: ctx.loopExit, depth: ctx.depth + 1}
}

// BuildFunctionBody builds the complete CFG for a function whose body is
// the given BLOCK node. The returned CFG already has
// its synthetic START block and has undergone return-expression fixup.
func (b *Builder) BuildFunctionBody(body *ast.Node) *cfg.CFG {
	b.bodyLine, b.bodyPos = body.Line, body.Pos
	g := cfg.New()
	start := g.Block(g.EntryBlock)

	// START must remain a dedicated, instruction-free entry point, so
	// statement processing always begins in a fresh block reached from
	// START rather than taking over START itself.
	entry := g.NewBlock(cfg.Unconditional, "entry")
	g.AddEdge(start, entry, cfg.UnconditionalJump, "")

	end := b.buildBlock(g, blockCtx{}, entry, body)
	b.fixupReturn(g, end)
	return g
}

// buildBlock recursively builds the statements of a BLOCK node, threading
// `current` (the block new instructions/edges are appended to) and
// returning the block that should receive whatever follows this BLOCK in
// its enclosing context.
func (b *Builder) buildBlock(g *cfg.CFG, ctx blockCtx, current *cfg.Block, blockNode *ast.Node) *cfg.Block {
	if ctx.depth > b.maxDepth {
		panic(ast.InternalError{Label: string(blockNode.Label), Line: blockNode.Line, Pos: blockNode.Pos,
			Reason: fmt.Sprintf("nested BLOCK recursion exceeded %d levels", b.maxDepth)})
	}

	stmts := blockNode.Children
	for i := 0; i < len(stmts); i++ {
		stmt := stmts[i]
		switch stmt.Label {
		case ast.Block:
			current = b.buildBlock(g, ctx.descend(), current, stmt)
		case ast.Var:
			current = b.buildVarStmt(g, current, stmt)
		case ast.Expr:
			current = b.buildExprStmt(g, current, stmt)
		case ast.If:
			current = b.buildIf(g, ctx, current, stmt)
		case ast.While:
			current = b.buildWhile(g, ctx, current, stmt)
		case ast.DoWhile:
			current = b.buildDoWhile(g, ctx, current, stmt)
		case ast.Break:
			var done bool
			current, done = b.buildBreak(g, ctx, current, stmt, stmts[i+1:])
			if done {
				return current
			}
		}
	}
	return current
}

// obtainBlock implements the block-reuse optimization: if
// current is still empty, it is retyped and renamed in place (no new block,
// no synthesized edge); otherwise a fresh block is allocated and an
// unconditional edge is threaded from current into it.
func obtainBlock(g *cfg.CFG, current *cfg.Block, t cfg.BlockType, name string) *cfg.Block {
	if current.IsEmpty() {
		current.Type = t
		current.Name = name
		return current
	}
	next := g.NewBlock(t, name)
	g.AddEdge(current, next, cfg.UnconditionalJump, "")
	return next
}

func (b *Builder) buildVarStmt(g *cfg.CFG, current *cfg.Block, stmt *ast.Node) *cfg.Block {
	typeref := stmt.MustChild(0)
	t := typemodel.ParseTyperef(typeref)
	root := b.otb.BuildVar(stmt, t)
	current.AddInstruction(string(ast.Var), root)
	return current
}

func (b *Builder) buildExprStmt(g *cfg.CFG, current *cfg.Block, stmt *ast.Node) *cfg.Block {
	expr := stmt.MustChild(0)
	root := b.otb.BuildExpr(expr, false, false)
	current.AddInstruction(string(ast.Expr), root)
	return current
}

// buildIf implements the IF construct.
func (b *Builder) buildIf(g *cfg.CFG, ctx blockCtx, current *cfg.Block, stmt *ast.Node) *cfg.Block {
	guard := stmt.MustChild(0)
	thenBody := stmt.MustChild(1)

	condBlock := obtainBlock(g, current, cfg.Conditional, "if.cond")
	guardOT := b.otb.BuildExpr(guard, false, false)
	condBlock.AddInstruction(string(ast.If), guardOT)

	join := g.NewBlock(cfg.Unconditional, "if.join")

	thenEntry := g.NewBlock(cfg.Unconditional, "if.then")
	g.AddEdge(condBlock, thenEntry, cfg.TrueCondition, string(ast.If))
	thenExit := b.buildBlock(g, ctx.descend(), thenEntry, thenBody)
	g.AddEdge(thenExit, join, cfg.UnconditionalJump, "")

	if elseNode := elseChild(stmt); elseNode != nil {
		elseBody := elseNode.MustChild(0)
		elseEntry := g.NewBlock(cfg.Unconditional, "if.else")
		g.AddEdge(condBlock, elseEntry, cfg.FalseCondition, string(ast.If))
		elseExit := b.buildBlock(g, ctx.descend(), elseEntry, elseBody)
		g.AddEdge(elseExit, join, cfg.UnconditionalJump, "")
	} else {
		g.AddEdge(condBlock, join, cfg.FalseCondition, string(ast.If))
	}

	return join
}

// elseChild returns the IF node's ELSE child, if present.
func elseChild(stmt *ast.Node) *ast.Node {
	if stmt.NChildren() >= 3 {
		return stmt.Child(2)
	}
	return nil
}

// buildWhile implements the WHILE construct.
func (b *Builder) buildWhile(g *cfg.CFG, ctx blockCtx, current *cfg.Block, stmt *ast.Node) *cfg.Block {
	guard := stmt.MustChild(0)
	body := stmt.MustChild(1)

	condBlock := obtainBlock(g, current, cfg.Conditional, "while.cond")
	guardOT := b.otb.BuildExpr(guard, false, false)
	condBlock.AddInstruction(string(ast.While), guardOT)

	exit := g.NewBlock(cfg.Unconditional, "while.exit")
	bodyEntry := g.NewBlock(cfg.Unconditional, "while.body")
	g.AddEdge(condBlock, bodyEntry, cfg.TrueCondition, string(ast.While))
	g.AddEdge(condBlock, exit, cfg.FalseCondition, string(ast.While))

	bodyExit := b.buildBlock(g, blockCtx{isLoop: true, loopExit: exit, depth: ctx.depth + 1}, bodyEntry, body)
	g.AddEdge(bodyExit, condBlock, cfg.UnconditionalJump, "")

	return exit
}

// buildDoWhile implements the DO_WHILE construct. The guard
// expression is the DO_WHILE node's second child (checked after the body,
// as in `do { ... } while (cond)`), the body block its first.
func (b *Builder) buildDoWhile(g *cfg.CFG, ctx blockCtx, current *cfg.Block, stmt *ast.Node) *cfg.Block {
	body := stmt.MustChild(0)
	guard := stmt.MustChild(1)

	bodyBlock := obtainBlock(g, current, cfg.Unconditional, "do.body")

	exit := g.NewBlock(cfg.Unconditional, "do.exit")
	condBlock := g.NewBlock(cfg.Conditional, "do.cond")
	guardOT := b.otb.BuildExpr(guard, false, false)
	condBlock.AddInstruction(string(ast.DoWhile), guardOT)

	g.AddEdge(condBlock, bodyBlock, cfg.TrueCondition, string(ast.DoWhile))
	g.AddEdge(condBlock, exit, cfg.FalseCondition, string(ast.DoWhile))

	bodyExit := b.buildBlock(g, blockCtx{isLoop: true, loopExit: exit, depth: ctx.depth + 1}, bodyBlock, body)
	g.AddEdge(bodyExit, condBlock, cfg.UnconditionalJump, "")

	return exit
}

// buildBreak implements the BREAK construct. It returns the
// (possibly unchanged) current block and whether the enclosing buildBlock
// loop must stop processing the rest of this BLOCK's statements (true iff
// the break was inside a loop, making anything after it in the same block
// unreachable).
func (b *Builder) buildBreak(g *cfg.CFG, ctx blockCtx, current *cfg.Block, stmt *ast.Node, rest []*ast.Node) (*cfg.Block, bool) {
	current.AddInstruction(string(ast.Break), ot.New(ot.BreakNode, stmt.Line, stmt.Pos))

	if !ctx.isLoop {
		b.Errors.Add(diag.ControlOutLoop, b.File, stmt.Line, stmt.Pos, "break is out of loop")
		return current, false
	}

	g.AddEdge(current, ctx.loopExit, cfg.UnconditionalJump, "")
	current.IsBreak = true

	if len(rest) > 0 {
		next := rest[0]
		b.Errors.Add(diag.ControlUnreach, b.File, next.Line, next.Pos, "unreachable code after break")
	}
	return current, true
}

// returnableRoots is the set of OT root labels eligible for
// return-expression fixup.
var returnableRoots = map[ot.Label]bool{
	ot.Label(ast.Plus): true, ot.Label(ast.Minus): true, ot.Label(ast.Mul): true, ot.Label(ast.Div): true,
	ot.Label(ast.Neg): true, ot.Label(ast.Not): true,
	ot.LitRead: true, ot.Read: true, ot.Call: true, ot.Index: true,
}

// fixupReturn implements the return-expression fixup: END is
// obtained (reusing `tail` if it is still empty), and each of its
// predecessors has its last instruction rewrapped as `return[...]` if
// eligible, or else gets a No-return warning.
func (b *Builder) fixupReturn(g *cfg.CFG, tail *cfg.Block) {
	end := obtainBlock(g, tail, cfg.Terminal, "END")

	for _, e := range g.InEdges(end) {
		pred := g.Block(e.FromBlock)
		last := pred.LastInstruction()
		if last != nil && last.OT != nil && returnableRoots[last.OT.RootLabel()] {
			last.OT = ot.New(ot.Return, last.OT.Line, last.OT.Pos, last.OT)
			continue
		}

		switch {
		case last == nil:
			b.Warnings.Add(diag.NoReturnWarning, b.File, b.bodyLine, b.bodyPos,
				"no instructions to use as a return value")
		case last.OT == nil:
			// A null OT (unrecognized expression label) has no position of
			// its own; attribute the warning to the body instead.
			b.Warnings.Add(diag.NoReturnWarning, b.File, b.bodyLine, b.bodyPos,
				"last expression is not usable as a return value")
		default:
			b.Warnings.Add(diag.NoReturnWarning, b.File, last.OT.Line, last.OT.Pos,
				"last expression is not usable as a return value")
		}
	}
}
