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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"mylang.dev/ir/ast"
)

func TestNode_NilSafe(t *testing.T) {
	t.Parallel()

	var n *ast.Node
	require.Equal(t, 0, n.NChildren())
	require.Nil(t, n.Child(0))
	require.False(t, n.Is(ast.Block))
}

func TestNode_ChildAndIs(t *testing.T) {
	t.Parallel()

	child := &ast.Node{Label: ast.Expr}
	n := &ast.Node{Label: ast.Block, Children: []*ast.Node{child}}

	require.Equal(t, 1, n.NChildren())
	require.Same(t, child, n.Child(0))
	require.Nil(t, n.Child(1))
	require.True(t, n.Is(ast.Block))
	require.False(t, n.Is(ast.Expr))
}

func TestNode_MustChild_PanicsOnMissing(t *testing.T) {
	t.Parallel()

	n := &ast.Node{Label: ast.Block, Line: 3, Pos: 1}
	require.PanicsWithValue(t, ast.InternalError{Label: "BLOCK", Line: 3, Pos: 1,
		Reason: "expected child 0, node has 0"}, func() {
		n.MustChild(0)
	})
}

func TestInternalError_Error(t *testing.T) {
	t.Parallel()

	err := ast.InternalError{Label: "IF", Line: 2, Pos: 4, Reason: "missing guard"}
	require.Contains(t, err.Error(), "IF")
	require.Contains(t, err.Error(), "line 2")
	require.Contains(t, err.Error(), "col 5")
	require.Contains(t, err.Error(), "missing guard")
}

func TestClosedVocabularies(t *testing.T) {
	t.Parallel()

	require.True(t, ast.BinaryOps[ast.Plus])
	require.True(t, ast.UnaryOps[ast.Not])
	require.True(t, ast.Literals[ast.Dec])
	require.False(t, ast.BinaryOps[ast.Neg])
}
