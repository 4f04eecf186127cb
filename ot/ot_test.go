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

package ot_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"mylang.dev/ir/ot"
)

func TestNew(t *testing.T) {
	t.Parallel()

	child := ot.NewName("x", 1, 2)
	n := ot.New(ot.Read, 1, 2, child)
	require.Equal(t, ot.Read, n.Label)
	require.Equal(t, []*ot.Node{child}, n.Children)
	require.False(t, n.IsImaginary)
}

func TestImaginary(t *testing.T) {
	t.Parallel()

	n := ot.New(ot.Write, 0, 0).Imaginary()
	require.True(t, n.IsImaginary)
}

func TestRootLabel_NilSafe(t *testing.T) {
	t.Parallel()

	var n *ot.Node
	require.Equal(t, ot.Label(""), n.RootLabel())

	n = ot.New(ot.Call, 0, 0)
	require.Equal(t, ot.Call, n.RootLabel())
}

func TestIsBareName(t *testing.T) {
	t.Parallel()

	var nilNode *ot.Node
	require.False(t, nilNode.IsBareName())

	name := ot.NewName("foo", 0, 0)
	require.True(t, name.IsBareName())

	structured := ot.New(ot.Read, 0, 0)
	require.False(t, structured.IsBareName())
}
