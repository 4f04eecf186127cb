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

// Package cache serializes an assembled program.Program to and from disk so
// repeated mylangir invocations over an unchanged file set can skip
// re-running ProgramAssembler entirely. The gob+s2 encoding and the
// GobEncode/GobDecode split across a compression writer follow
// inference.InferredMap's on-disk format.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/klauspost/compress/s2"
	"mylang.dev/ir/program"
)

// Key identifies a cached Program by the content of the file set it was
// built from, so a cache entry is reused only when every source file's
// contents (not just its name) are unchanged.
type Key string

// KeyForSources derives a Key from file name/content pairs. Map iteration
// order does not affect the result: names are sorted before hashing
// so the same file set always hashes the same way regardless of the order
// files were discovered on disk.
func KeyForSources(sources map[string][]byte) Key {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		fmt.Fprintf(h, "%s\x00", name)
		h.Write(sources[name])
		h.Write([]byte{0})
	}
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// entry is the gob-serializable payload written to disk. Program itself
// isn't registered with gob directly so that cache's on-disk format stays
// decoupled from program.Program's exported field layout evolving.
type entry struct {
	Functions []program.FunctionInfo
}

// Load reads and decodes a cached Program from path. A missing file is
// reported via os.IsNotExist on the returned error so callers can treat it
// as a cache miss rather than a failure.
func Load(path string) (*program.Program, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(raw)
	var e entry
	if err := gob.NewDecoder(s2.NewReader(buf)).Decode(&e); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	prog := program.New()
	for i := range e.Functions {
		prog.Functions = append(prog.Functions, &e.Functions[i])
	}
	prog.Reindex()
	return prog, nil
}

// Store encodes prog and writes it to path, compressed with s2 the same
// way InferredMap.GobEncode compresses its payload before returning the
// bytes. CFGs are intentionally not persisted: caching only requires the
// assembled FunctionInfo registry (signatures) to be cacheable across
// runs, and CFGs can be rebuilt cheaply from source when a file changes.
func Store(path string, prog *program.Program) (err error) {
	if prog == nil {
		return errors.New("cache: nil program")
	}

	e := entry{Functions: make([]program.FunctionInfo, 0, len(prog.Functions))}
	for _, fn := range prog.Functions {
		stripped := *fn
		stripped.CFG = nil
		e.Functions = append(e.Functions, stripped)
	}

	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if encErr := gob.NewEncoder(writer).Encode(e); encErr != nil {
		return encErr
	}
	if closeErr := writer.Close(); closeErr != nil {
		return closeErr
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
