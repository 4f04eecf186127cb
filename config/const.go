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

package config

// This file hosts non-user-configurable parameters -- these are for development and testing purposes only.

// MaxBlockRecursionDepth bounds the nested-BLOCK recursion depth CFGBuilder
// will descend before treating the input AST as a contract violation
// rather than silently recursing until the goroutine stack
// overflows. Real MyLang sources nest a handful of blocks deep at most;
// this is a generous ceiling meant to catch malformed or cyclic ASTs from
// a misbehaving upstream parser, not to constrain legitimate programs.
const MaxBlockRecursionDepth = 1000

// DefaultConfigFileName is the project settings file ProgramAssembler's
// CLI front-end (cmd/mylangir) looks for in the working directory when
// -config is not given.
const DefaultConfigFileName = ".mylangir.yaml"
