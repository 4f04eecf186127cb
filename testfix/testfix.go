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

// Package testfix provides test-only helpers for constructing multi-file
// fixtures and ast.Node trees by hand, the way this module's tests need to
// exercise scenarios (like a redeclaration spanning two files) that a
// single inline *ast.Node literal makes tedious to spell out. The archive
// format is golang.org/x/tools/txtar, used the same way internal/testfiles
// uses it in the sibling pack: one archive file name per source file,
// contents verbatim after the name marker.
package testfix

import (
	"strings"
	"unicode"

	"golang.org/x/tools/txtar"
	"mylang.dev/ir/ast"
	"mylang.dev/ir/program"
)

// NamedSource is one file extracted from a txtar fixture.
type NamedSource struct {
	Name     string
	Contents string
}

// Archive parses a txtar-formatted fixture into name->contents pairs, in
// archive order.
func Archive(data string) []NamedSource {
	a := txtar.Parse([]byte(data))
	out := make([]NamedSource, 0, len(a.Files))
	for _, f := range a.Files {
		out = append(out, NamedSource{Name: f.Name, Contents: string(f.Data)})
	}
	return out
}

// ArchiveFiles parses a txtar fixture whose section contents are written in
// the S-expression notation ParseSource understands into program.Files
// ready to feed program.Assemble, one per archive section in archive order.
func ArchiveFiles(data string) []program.File {
	sections := Archive(data)
	files := make([]program.File, len(sections))
	for i, s := range sections {
		files[i] = program.File{Name: s.Name, Root: ParseSource(s.Contents)}
	}
	return files
}

// ParseSource parses a file-local S-expression notation for ast.Node trees
// into a SOURCE node. A parenthesized form `(LABEL child...)` builds a node
// with that Label and one child per parsed child form; a bare word builds a
// childless leaf node whose own Label is that word. This is the same
// wrap-the-literal-text-as-a-child-label encoding Ident below builds by
// hand, e.g. `(NAME foo)` parses the same tree `Name("foo")` constructs.
// Top-level forms become the SOURCE node's children, typically one per
// FUNC_DEF.
func ParseSource(data string) *ast.Node {
	p := &sexprParser{tokens: tokenizeSexpr(data)}
	var decls []*ast.Node
	for !p.atEnd() {
		decls = append(decls, p.parseNode())
	}
	return &ast.Node{Label: ast.Source, Children: decls}
}

// tokenizeSexpr splits data into "(", ")", and whitespace-delimited bare
// words. Quoting and escaping are not part of this notation: identifiers,
// keywords, and literal text in the fixtures it targets never contain
// parens or whitespace.
func tokenizeSexpr(data string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for _, r := range data {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// sexprParser is a minimal recursive-descent reader over tokenizeSexpr's
// output.
type sexprParser struct {
	tokens []string
	pos    int
}

func (p *sexprParser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *sexprParser) parseNode() *ast.Node {
	tok := p.tokens[p.pos]
	if tok != "(" {
		p.pos++
		return &ast.Node{Label: ast.Label(tok)}
	}
	p.pos++ // consume "("
	label := p.tokens[p.pos]
	p.pos++
	var children []*ast.Node
	for p.tokens[p.pos] != ")" {
		children = append(children, p.parseNode())
	}
	p.pos++ // consume ")"
	return &ast.Node{Label: ast.Label(label), Children: children}
}

// Ident builds an IDENTIFIER/NAME-style node whose literal text is carried
// as the label of its sole child, per the input AST's encoding convention.
// label selects the wrapping node's own Label (ast.Name for a declaration
// site, ast.Identifier for a use site).
func Ident(label ast.Label, text string) *ast.Node {
	return &ast.Node{Label: label, Children: []*ast.Node{{Label: ast.Label(text)}}}
}

// Name builds a NAME node for the given identifier text.
func Name(text string) *ast.Node { return Ident(ast.Name, text) }

// Identifier builds an IDENTIFIER node for the given identifier text.
func Identifier(text string) *ast.Node { return Ident(ast.Identifier, text) }

// BuiltinType builds a TYPEREF wrapping a built-in type name, e.g. "int".
func BuiltinType(name string) *ast.Node {
	return &ast.Node{Label: ast.Typeref, Children: []*ast.Node{
		{Label: ast.Type, Children: []*ast.Node{
			{Label: ast.BuiltinType, Children: []*ast.Node{{Label: ast.Label(name)}}},
		}},
	}}
}

// Argdef builds a single ARGDEF node from a TYPEREF and an argument name.
func Argdef(typeref *ast.Node, name string) *ast.Node {
	return &ast.Node{Label: ast.Argdef, Children: []*ast.Node{typeref, Name(name)}}
}

// Signature builds a FUNC_SIGNATURE node. returnType may be nil for an
// implicit-void signature.
func Signature(returnType *ast.Node, name string, args ...*ast.Node) *ast.Node {
	argList := &ast.Node{Label: ast.ArgdefList, Children: args}
	children := []*ast.Node{Name(name), argList}
	if returnType != nil {
		children = []*ast.Node{returnType, Name(name), argList}
	}
	return &ast.Node{Label: ast.FuncSignature, Children: children}
}

// FuncDef builds a FUNC_DEF node from a signature and a BLOCK body.
func FuncDef(sig *ast.Node, body *ast.Node) *ast.Node {
	return &ast.Node{Label: ast.FuncDef, Children: []*ast.Node{sig, body}}
}

// Block builds a BLOCK node from a sequence of statement nodes.
func Block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Label: ast.Block, Children: stmts}
}

// Source builds a SOURCE root from a sequence of top-level FUNC_DEF nodes.
func Source(defs ...*ast.Node) *ast.Node {
	return &ast.Node{Label: ast.Source, Children: defs}
}

// Call builds a FUNC_CALL expression invoking callee by name with args.
func Call(callee string, args ...*ast.Node) *ast.Node {
	children := append([]*ast.Node{Identifier(callee)}, args...)
	return &ast.Node{Label: ast.FuncCall, Children: children}
}

// ExprStmt wraps expr in an EXPR statement node.
func ExprStmt(expr *ast.Node) *ast.Node {
	return &ast.Node{Label: ast.Expr, Children: []*ast.Node{expr}}
}
