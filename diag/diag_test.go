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

package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"mylang.dev/ir/diag"
)

func TestSink_AddConvertsToOneBasedColumn(t *testing.T) {
	t.Parallel()

	var s diag.Sink
	s.Add(diag.Redeclaration, "a.my", 4, 7, "function %q redeclared", "foo")

	require.Equal(t, 1, s.Len())
	entry := s.Entries()[0]
	require.Equal(t, diag.Redeclaration, entry.Kind)
	require.Equal(t, "a.my", entry.File)
	require.EqualValues(t, 4, entry.Line)
	require.EqualValues(t, 8, entry.Col)
	require.Equal(t, `function "foo" redeclared`, entry.Message)
}

func TestSink_Entries_InsertionOrder(t *testing.T) {
	t.Parallel()

	var s diag.Sink
	s.Add(diag.ControlUnreach, "a.my", 1, 0, "first")
	s.Add(diag.ControlOutLoop, "a.my", 2, 0, "second")

	entries := s.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "first", entries[0].Message)
	require.Equal(t, "second", entries[1].Message)
}

func TestEntry_String(t *testing.T) {
	t.Parallel()

	e := diag.Entry{Kind: diag.NoReturnWarning, File: "a.my", Line: 3, Col: 5, Message: "no value"}
	require.Equal(t, "no-return: no value (a.my:3:5)", e.String())
}
