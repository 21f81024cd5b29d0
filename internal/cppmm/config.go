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


package cppmm

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultManualSuffix is the stem suffix that routes a binding source to
// the (out-of-scope) manual-code pipeline instead of Pass 1 (spec §6 CLI
// surface).
const DefaultManualSuffix = "-manual"

// Config is the boundary request a run is built from (spec §6 CLI
// surface), the structural analog of the teacher's LoadReq: a plain struct
// the CLI fills in from flags, with no package-level mutable flag state
// leaking into the core.
type Config struct {
	// InputDir, if set, is scanned for "*.cpp" binding sources. Sources,
	// if non-empty, is used instead and InputDir is ignored.
	InputDir string
	Sources  []string

	OutputDir string

	// Renames are raw "from=to" values (spec §4.B), parsed by
	// BuildNamespaceRegistry.
	Renames []string

	ExtraIncludes []string
	ExtraLibs     []string

	ManualSuffix string
	WarnUnbound  bool
	Sentinel     string
}

// manualSuffix returns c.ManualSuffix, defaulting per spec §6.
func (c Config) manualSuffix() string {
	if c.ManualSuffix != "" {
		return c.ManualSuffix
	}
	return DefaultManualSuffix
}

// ResolveSources computes the binding sources Pass 1 should run over and
// the manual sources routed to the separate (out-of-scope) manual-code
// pipeline (spec §6: "excluding files whose stem ends in the configurable
// manual suffix").
func (c Config) ResolveSources() (bound, manual []string, err error) {
	if len(c.Sources) > 0 {
		for _, s := range c.Sources {
			if isManualStem(s, c.manualSuffix()) {
				manual = append(manual, s)
			} else {
				bound = append(bound, s)
			}
		}
		return bound, manual, nil
	}
	if c.InputDir == "" {
		return nil, nil, &ConfigError{Msg: "no input directory or source list given"}
	}
	err = filepath.Walk(c.InputDir, func(path string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if info.IsDir() || filepath.Ext(path) != ".cpp" {
			return nil
		}
		if isManualStem(path, c.manualSuffix()) {
			manual = append(manual, path)
		} else {
			bound = append(bound, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, &ConfigError{Msg: "scanning " + c.InputDir + ": " + err.Error()}
	}
	return bound, manual, nil
}

func isManualStem(path, suffix string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, suffix)
}

// BuildNamespaceRegistry parses every Renames entry and populates a fresh
// NamespaceRegistry, failing on the first malformed or conflicting pair
// (spec §7 configuration errors).
func (c Config) BuildNamespaceRegistry() (*NamespaceRegistry, error) {
	reg := NewNamespaceRegistry()
	for _, r := range c.Renames {
		from, to, err := ParseRenameFlag(r)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(from, to); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// EnsureOutputDir creates c.OutputDir (and parents) if it doesn't already
// exist; failure is a configuration error (spec §6 exit codes: "negative on
// output-directory creation failure").
func (c Config) EnsureOutputDir() error {
	if c.OutputDir == "" {
		return &ConfigError{Msg: "no output directory given"}
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return &ConfigError{Msg: "creating output directory " + c.OutputDir + ": " + err.Error()}
	}
	return nil
}
