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

package program

import (
	"mylang.dev/ir/ast"
	"mylang.dev/ir/cfgbuild"
	"mylang.dev/ir/config"
	"mylang.dev/ir/diag"
	"mylang.dev/ir/typemodel"
)

// File pairs a SOURCE AST root with the file name diagnostics raised while
// processing it should be attributed to.
type File struct {
	Name string
	Root *ast.Node // a SOURCE node
}

// Assembler is the two-pass ProgramAssembler: pass 1 collects
// function signatures and detects redeclarations; pass 2 builds each
// function's CFG.
type Assembler struct {
	prog     *Program
	maxDepth int
}

// NewAssembler creates an Assembler that accumulates into a fresh Program,
// bounding each function's CFG construction to maxDepth nested BLOCK bodies.
func NewAssembler(maxDepth int) *Assembler {
	return &Assembler{prog: New(), maxDepth: maxDepth}
}

// Assemble runs both passes over files, in order, and returns the completed
// Program, using config.MaxBlockRecursionDepth as the nested-BLOCK
// recursion limit. By design, if two functions share
// a name, only the FunctionInfo registered first receives a CFG in pass 2;
// the later one (already flagged by a Redeclaration error in pass 1) keeps
// CFG == nil.
func Assemble(files []File) *Program {
	return AssembleWithLimit(files, config.MaxBlockRecursionDepth)
}

// AssembleWithLimit is Assemble with an explicit nested-BLOCK recursion
// limit, for callers (cmd/mylangir) honoring a resolved config.Config.MaxDepth
// rather than the package default.
func AssembleWithLimit(files []File, maxDepth int) *Program {
	a := NewAssembler(maxDepth)
	for _, f := range files {
		a.collectSignatures(f)
	}
	for _, f := range files {
		a.buildBodies(f)
	}
	return a.prog
}

// collectSignatures implements pass 1 for one file: extract every
// top-level FUNC_DEF's signature, construct a FunctionInfo, and detect
// redeclarations.
func (a *Assembler) collectSignatures(f File) {
	for _, decl := range f.Root.Children {
		if !decl.Is(ast.FuncDef) {
			continue
		}
		sig := decl.MustChild(0)
		if !sig.Is(ast.FuncSignature) {
			continue
		}

		fn := parseSignature(f.Name, sig)
		a.registerFunction(fn)
	}
}

// registerFunction appends fn to Program.Functions, raising a
// Redeclaration error (naming both occurrences) if its name already
// appears, and is still appended.
func (a *Assembler) registerFunction(fn *FunctionInfo) {
	if existing := a.prog.Lookup(fn.FunctionName); existing != nil {
		a.prog.Errors.Add(diag.Redeclaration, fn.FileName, fn.Line, fn.Pos,
			"function %q redeclared (first declared at %s:%d:%d)",
			fn.FunctionName, existing.FileName, existing.Line, existing.Pos+1)
	}
	a.prog.Functions = append(a.prog.Functions, fn)
	a.prog.byName.StoreIfAbsent(fn.FunctionName, fn)
}

// parseSignature builds a FunctionInfo from a FUNC_SIGNATURE node: an
// optional TYPEREF (else synthesize void), a NAME, and an ARGDEF_LIST.
// A FUNC_SIGNATURE with 2 or 3 children is a contract guarantee the
// upstream parser owns; violations panic via MustChild.
func parseSignature(fileName string, sig *ast.Node) *FunctionInfo {
	var returnType typemodel.TypeInfo
	idx := 0
	if sig.NChildren() == 3 {
		returnType = typemodel.ParseTyperef(sig.Child(0))
		idx = 1
	} else {
		returnType = typemodel.Void(sig.Line, sig.Pos)
	}

	nameNode := sig.MustChild(idx)
	argListNode := sig.MustChild(idx + 1)

	return &FunctionInfo{
		FileName:     fileName,
		FunctionName: functionName(nameNode),
		ReturnType:   returnType,
		Arguments:    parseArguments(argListNode),
		Line:         sig.Line,
		Pos:          sig.Pos,
	}
}

// functionName reads a NAME node's identifier text (carried, per the input
// AST contract, as the label of its sole child).
func functionName(nameNode *ast.Node) string {
	if nameNode.NChildren() > 0 {
		return string(nameNode.MustChild(0).Label)
	}
	return string(nameNode.Label)
}

// parseArguments parses an ARGDEF_LIST's ARGDEF children into
// ArgumentInfos, in AST order.
func parseArguments(argListNode *ast.Node) []ArgumentInfo {
	args := make([]ArgumentInfo, 0, argListNode.NChildren())
	for _, argdef := range argListNode.Children {
		typeref := argdef.MustChild(0)
		nameNode := argdef.MustChild(1)
		args = append(args, ArgumentInfo{
			Type: typemodel.ParseTyperef(typeref),
			Name: functionName(nameNode),
			Line: argdef.Line,
			Pos:  argdef.Pos,
		})
	}
	return args
}

// buildBodies implements pass 2 for one file: for every FUNC_DEF, build
// its body's CFG and bind it into the corresponding FunctionInfo by name
// lookup, not by index, since a redeclared function's second occurrence
// was still appended to Program.Functions in pass 1 but never indexed.
func (a *Assembler) buildBodies(f File) {
	for _, decl := range f.Root.Children {
		if !decl.Is(ast.FuncDef) {
			continue
		}
		sig := decl.MustChild(0)
		if !sig.Is(ast.FuncSignature) || decl.NChildren() < 2 {
			continue
		}
		body := decl.Child(1)
		if body == nil || !body.Is(ast.Block) {
			continue
		}

		name := functionName(sig.Child(signatureNameIndex(sig)))
		fn := a.prog.Lookup(name)
		if fn == nil {
			continue
		}

		b := cfgbuild.New(f.Name, a.prog.Errors, a.prog.Warnings, a.maxDepth)
		fn.CFG = b.BuildFunctionBody(body)
	}
}

// signatureNameIndex returns the index of the NAME child within a
// FUNC_SIGNATURE node: 1 if an explicit return TYPEREF precedes it, 0
// otherwise.
func signatureNameIndex(sig *ast.Node) int {
	if sig.NChildren() == 3 {
		return 1
	}
	return 0
}
