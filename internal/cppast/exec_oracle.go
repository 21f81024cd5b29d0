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


package cppast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/golang/glog"
)

// ExecOracle is an Oracle that shells out to an external AST-dumping helper
// binary and decodes its JSON output. This mirrors how the teacher's
// funcShell.Eval invokes the platform shell via exec.Cmd and captures
// stdout: here the "shell command" is a clang-based dumper tool instead of
// $(shell ...), but the invocation shape — build argv, run, capture output,
// surface stderr on failure — is the same.
//
// ExecOracle never parses C++ itself; it is the one place cppmmgen reaches
// across the process boundary to the real AST facility §1 excludes from
// this core.
type ExecOracle struct {
	// Bin is the path to the AST-dumping helper, e.g. "cppmmgen-astdump".
	Bin string
	// ExtraArgs are passed through verbatim after the fixed flags below
	// (additional -I paths, -std=, etc).
	ExtraArgs []string
}

type astdumpRequest struct {
	Mode          string   `json:"mode"` // "bindings" or "library"
	Sources       []string `json:"sources"`
	ExtraIncludes []string `json:"extra_includes"`
}

func (o *ExecOracle) run(mode string, sources, extraIncludes []string) ([]TranslationUnit, error) {
	req := astdumpRequest{Mode: mode, Sources: sources, ExtraIncludes: extraIncludes}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("cppast: marshal request: %w", err)
	}

	args := append([]string{"-json"}, o.ExtraArgs...)
	cmd := exec.Command(o.Bin, args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	glog.V(1).Infof("cppast: running %s %v", o.Bin, args)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("cppast: %s failed: %w: %s", o.Bin, err, stderr.String())
	}
	if stderr.Len() > 0 {
		glog.V(2).Infof("cppast: %s stderr: %s", o.Bin, stderr.String())
	}

	var tus []TranslationUnit
	if err := json.Unmarshal(stdout.Bytes(), &tus); err != nil {
		return nil, fmt.Errorf("cppast: decode %s output: %w", o.Bin, err)
	}
	for i := range tus {
		if len(tus[i].RawIncludes) == 0 {
			includes, err := ScanIncludes(tus[i].Filename)
			if err != nil {
				glog.V(1).Infof("cppast: include scan fallback for %s: %v", tus[i].Filename, err)
				continue
			}
			tus[i].RawIncludes = includes
		}
	}
	return tus, nil
}

// ParseBindings implements Oracle.
func (o *ExecOracle) ParseBindings(sources []string, extraIncludes []string) ([]TranslationUnit, error) {
	return o.run("bindings", sources, extraIncludes)
}

// ParseLibrary implements Oracle.
func (o *ExecOracle) ParseLibrary(sources []string, extraIncludes []string) ([]TranslationUnit, error) {
	return o.run("library", sources, extraIncludes)
}

// ScanIncludes recovers "#include" lines at column 0 by scanning raw text.
// Spec §9 calls this a fallback: "a cleaner implementation uses a
// preprocessor hook from the AST Oracle. Treat the line-scan as a
// fallback." ExecOracle only reaches for it when the helper binary didn't
// already report includes for a translation unit.
func ScanIncludes(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var includes []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("#include")) {
			includes = append(includes, string(bytes.TrimRight(line, "\r")))
		}
	}
	return includes, nil
}
