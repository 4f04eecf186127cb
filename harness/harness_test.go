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

package harness_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"mylang.dev/ir/ast"
	"mylang.dev/ir/harness"
	"mylang.dev/ir/program"
)

func fileFor(name, fnName string) program.File {
	sig := &ast.Node{Label: ast.FuncSignature, Children: []*ast.Node{
		{Label: ast.Name, Children: []*ast.Node{{Label: ast.Label(fnName)}}},
		{Label: ast.ArgdefList},
	}}
	def := &ast.Node{Label: ast.FuncDef, Children: []*ast.Node{
		sig,
		{Label: ast.Block},
	}}
	return program.File{Name: name, Root: &ast.Node{Label: ast.Source, Children: []*ast.Node{def}}}
}

func TestBuildAll_OrderMatchesInput(t *testing.T) {
	t.Parallel()

	groups := [][]program.File{
		{fileFor("a.my", "alpha")},
		{fileFor("b.my", "bravo")},
		{fileFor("c.my", "charlie")},
	}

	progs, err := harness.BuildAll(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, progs, 3)
	require.Equal(t, "alpha", progs[0].Functions[0].FunctionName)
	require.Equal(t, "bravo", progs[1].Functions[0].FunctionName)
	require.Equal(t, "charlie", progs[2].Functions[0].FunctionName)
}

func TestBuildAll_Empty(t *testing.T) {
	t.Parallel()

	progs, err := harness.BuildAll(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, progs)
}

func TestBuildAll_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	groups := make([][]program.File, 100)
	for i := range groups {
		groups[i] = []program.File{fileFor("x.my", "x")}
	}

	_, err := harness.BuildAll(ctx, groups)
	require.Error(t, err)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
