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

// main package makes it possible to run the IR toolchain over a small
// in-process demo program and inspect the resulting diagnostics and call
// graph from the command line. Real MyLang source parsing is out of scope
// here: the demo program below stands in for a parser's output.
package main

import (
	"flag"
	"fmt"
	"os"

	"mylang.dev/ir/cache"
	"mylang.dev/ir/callgraph"
	"mylang.dev/ir/config"
	"mylang.dev/ir/program"
	"mylang.dev/ir/report"
	"mylang.dev/ir/testfix"
)

var (
	_configPath = flag.String("config", config.DefaultConfigFileName, "project settings file to load, if present")
	_cachePath  = flag.String("cache-dir", "", "if set, cache the assembled program here and reuse it on unchanged input")
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mylangir:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fileConfig, err := config.LoadFile(*_configPath, config.DefaultConfig)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("mylangir", flag.ExitOnError)
	resolve := config.RegisterFlags(fs, fileConfig)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := resolve()

	files := demoFiles()
	prog, err := loadOrAssemble(files, cfg.MaxDepth)
	if err != nil {
		return err
	}

	cg := callgraph.Build(prog)
	fmt.Printf("functions: %d, call edges: %d\n", len(prog.Functions), countEdges(cg))

	return report.Write(os.Stdout, prog, cfg.ReportWarnings)
}

// loadOrAssemble consults the on-disk cache (if -cache-dir is set) before
// falling back to a fresh program.AssembleWithLimit run, honoring the
// resolved -max-depth.
func loadOrAssemble(files []program.File, maxDepth int) (*program.Program, error) {
	if *_cachePath == "" {
		return program.AssembleWithLimit(files, maxDepth), nil
	}

	sources := make(map[string][]byte, len(files))
	for _, f := range files {
		sources[f.Name] = []byte(fmt.Sprintf("%v", f.Root))
	}
	key := cache.KeyForSources(sources)
	path := *_cachePath + "/" + string(key) + ".cache"

	if prog, err := cache.Load(path); err == nil {
		return prog, nil
	}

	prog := program.AssembleWithLimit(files, maxDepth)
	if err := cache.Store(path, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func countEdges(cg *callgraph.CallGraph) int {
	n := 0
	for _, node := range cg.Nodes() {
		n += len(node.OutEdges())
	}
	return n
}

// demoFiles builds a tiny two-file program by hand, standing in for a real
// parser's output, to exercise ProgramAssembler end to end.
func demoFiles() []program.File {
	mainFn := testfix.FuncDef(
		testfix.Signature(testfix.BuiltinType("int"), "main"),
		testfix.Block(
			testfix.ExprStmt(testfix.Call("helper", testfix.Identifier("argc"))),
		),
	)
	helper := testfix.FuncDef(
		testfix.Signature(testfix.BuiltinType("int"), "helper",
			testfix.Argdef(testfix.BuiltinType("int"), "x")),
		testfix.Block(),
	)

	return []program.File{
		{Name: "main.my", Root: testfix.Source(mainFn)},
		{Name: "helper.my", Root: testfix.Source(helper)},
	}
}
