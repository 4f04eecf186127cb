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

// Package harness fans independent ProgramAssembler runs out over a bounded
// worker pool, one job per disjoint file group, the way
// assertion/function's per-function-declaration analysis fans out workers
// synchronized over a result channel and a context used only for
// cancellation. Groups share no state, matching the "independent Program
// builds over disjoint inputs may run in parallel" concurrency model.
package harness

import (
	"context"
	"runtime"
	"sync"

	"mylang.dev/ir/program"
)

// result pairs a completed Program with the index of the group it came
// from, so BuildAll can return results in input order even though the
// groups themselves may finish out of order.
type result struct {
	index int
	prog  *program.Program
}

// BuildAll runs program.Assemble once per entry of fileGroups, concurrently,
// and returns one *program.Program per group in the same order the groups
// were given. If ctx is canceled before all groups finish, BuildAll stops
// launching new work and returns ctx.Err(); results already produced are
// discarded, since a partial, order-matched slice would be more confusing
// than no slice at all.
func BuildAll(ctx context.Context, fileGroups [][]program.File) ([]*program.Program, error) {
	if len(fileGroups) == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(fileGroups) {
		workers = len(fileGroups)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan result, len(fileGroups))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- result{index: idx, prog: program.Assemble(fileGroups[idx])}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range fileGroups {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*program.Program, len(fileGroups))
	var filled int
	for r := range results {
		out[r.index] = r.prog
		filled++
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filled != len(fileGroups) {
		return nil, context.Canceled
	}
	return out, nil
}
