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

// Package typemodel parses TYPEREF AST subtrees into TypeInfo records.
package typemodel

import "mylang.dev/ir/ast"

// VoidTypeName is assigned to a function with no explicit return type
// (spec: FunctionInfo).
const VoidTypeName = "void"

// TypeInfo recursively describes a value type. If IsArray is false, Element
// is nil; if true, ArrayDim >= 1.
type TypeInfo struct {
	TypeName string
	Custom   bool
	IsArray  bool
	ArrayDim int
	Element  *TypeInfo
	Line     uint
	Pos      uint
}

// Void returns the built-in void type, positioned at the given coordinates
// (used when a function declares no explicit return type).
func Void(line, pos uint) TypeInfo {
	return TypeInfo{TypeName: VoidTypeName, Custom: false, Line: line, Pos: pos}
}

// ParseTyperef parses a TYPEREF AST subtree into a TypeInfo. A TYPEREF has
// either one child (a TYPE wrapping a BUILTIN_TYPE or CUSTOM_TYPE
// identifier) or two children (the same, plus an ARRAY node).
func ParseTyperef(n *ast.Node) TypeInfo {
	if n == nil || !n.Is(ast.Typeref) {
		panic(ast.InternalError{Label: "TYPEREF", Reason: "ParseTyperef called on non-TYPEREF node"})
	}

	typeNode := n.MustChild(0)
	info := parseType(typeNode)

	if n.NChildren() >= 2 {
		arrayNode := n.MustChild(1)
		info.IsArray = true
		info.ArrayDim = arrayDim(arrayNode)
		element := info
		element.IsArray = false
		element.ArrayDim = 0
		info.Element = &element
	}

	return info
}

// parseType reads the TYPE wrapper's single child (BUILTIN_TYPE or
// CUSTOM_TYPE) into a bare, non-array TypeInfo. The wrapper node itself
// carries only the built-in/custom distinction; the identifier text lives on
// the wrapper's own single child.
func parseType(typeNode *ast.Node) TypeInfo {
	wrapper := typeNode.MustChild(0)
	nameNode := wrapper.MustChild(0)
	return TypeInfo{
		TypeName: string(nameNode.Label),
		Custom:   wrapper.Is(ast.CustomType),
		Line:     nameNode.Line,
		Pos:      nameNode.Pos,
	}
}

// arrayDim computes the rank of the outermost array: if the ARRAY node has
// exactly one child, that child's child count is the dimension; otherwise
// the dimension is 1.
func arrayDim(arrayNode *ast.Node) int {
	if arrayNode.NChildren() == 1 {
		return arrayNode.Child(0).NChildren()
	}
	return 1
}
