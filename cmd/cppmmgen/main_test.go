// Copyright 2026 The cppmmgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-cppmm/cppmmgen/internal/cppmm/emit"
)

func TestWriteResultWritesRuntimeVectorsFilesAndManifest(t *testing.T) {
	dir := t.TempDir()
	result := emit.Result{
		Files: []emit.GeneratedFile{
			{HeaderPath: "widget.h", HeaderContent: "// header\n", ImplPath: "widget.cpp", ImplContent: "// impl\n"},
		},
		RuntimeHeader: "// runtime\n",
		VectorsHeader: "// vectors\n",
		Manifest:      "header: widget.h\n",
	}

	if err := writeResult(dir, result); err != nil {
		t.Fatalf("writeResult: %v", err)
	}

	for name, want := range map[string]string{
		"cppmm_runtime.h":   "// runtime\n",
		"cppmm_vectors.h":   "// vectors\n",
		"widget.h":          "// header\n",
		"widget.cpp":        "// impl\n",
		"cppmmgen.manifest": "header: widget.h\n",
	} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestWriteResultOmitsVectorsHeaderWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	result := emit.Result{RuntimeHeader: "// runtime\n", Manifest: "\n"}
	if err := writeResult(dir, result); err != nil {
		t.Fatalf("writeResult: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cppmm_vectors.h")); err == nil {
		t.Error("cppmm_vectors.h should not be written when VectorsHeader is empty")
	}
}
