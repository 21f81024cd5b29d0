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


// Command cppmmgen generates a C API wrapper around a curated subset of a
// C++ library's public API from a directory of hand-written binding
// declarations (spec §6 CLI surface).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/go-cppmm/cppmmgen/internal/cppast"
	"github.com/go-cppmm/cppmmgen/internal/cppmm"
	"github.com/go-cppmm/cppmmgen/internal/cppmm/emit"
	"github.com/go-cppmm/cppmmgen/internal/report"
)

// stringSliceFlag accumulates repeated occurrences of a flag, e.g.
// "-rename a=b -rename c=d" (spec §6: "one from=to per flag").
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }
func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	inputDirFlag     string
	outputDirFlag    string
	renameFlags      stringSliceFlag
	includeFlags     stringSliceFlag
	libFlags         stringSliceFlag
	manualSuffixFlag string
	warnUnboundFlag  bool
	oracleBinFlag    string
	sentinelFlag     string
)

func init() {
	flag.StringVar(&inputDirFlag, "input", "", "directory of binding declaration sources (all *.cpp files under it)")
	flag.StringVar(&outputDirFlag, "output", "", "output directory for generated header/implementation/manifest")
	flag.Var(&renameFlags, "rename", "namespace rename, from=to (repeatable)")
	flag.Var(&includeFlags, "I", "extra include directory passed to the AST Oracle (repeatable)")
	flag.Var(&libFlags, "l", "extra link library recorded in the manifest (repeatable)")
	flag.StringVar(&manualSuffixFlag, "manual-suffix", cppmm.DefaultManualSuffix, "stem suffix routing a source to the manual pipeline")
	flag.BoolVar(&warnUnboundFlag, "warn-unbound", false, "print unmatched library methods at the end of the run")
	flag.StringVar(&oracleBinFlag, "oracle-bin", "", "path to the AST Oracle helper binary")
	flag.StringVar(&sentinelFlag, "sentinel", cppmm.DefaultSentinelNamespace, "sentinel namespace marking export intents")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := cppmm.Config{
		InputDir:      inputDirFlag,
		Sources:       flag.Args(),
		OutputDir:     outputDirFlag,
		Renames:       renameFlags,
		ExtraIncludes: includeFlags,
		ExtraLibs:     libFlags,
		ManualSuffix:  manualSuffixFlag,
		WarnUnbound:   warnUnboundFlag,
		Sentinel:      sentinelFlag,
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		glog.Errorf("%v", err)
		os.Exit(-1)
	}

	if err := run(cfg); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg cppmm.Config) error {
	rpt := report.New()
	defer rpt.Dump(os.Stdout, cfg.WarnUnbound)

	namespaces, err := cfg.BuildNamespaceRegistry()
	if err != nil {
		return err
	}
	bound, manual, err := cfg.ResolveSources()
	if err != nil {
		return err
	}
	for _, m := range manual {
		glog.V(1).Infof("routing %s to the manual pipeline", m)
	}
	if len(bound) == 0 {
		return &cppmm.ConfigError{Msg: "no binding sources found"}
	}

	oracle := &cppast.ExecOracle{Bin: oracleBinFlag}

	sess := cppmm.NewSession()
	sess.Namespaces = namespaces
	sess.Sentinel = cfg.Sentinel
	sess.WarnUnbound = cfg.WarnUnbound

	var bindingUnits, libraryUnits []cppast.TranslationUnit
	err = rpt.Time("parse", func() error {
		var perr error
		bindingUnits, perr = oracle.ParseBindings(bound, cfg.ExtraIncludes)
		if perr != nil {
			return perr
		}
		libraryUnits, perr = oracle.ParseLibrary(bound, cfg.ExtraIncludes)
		return perr
	})
	if err != nil {
		return err
	}

	if err := rpt.Time("harvest", func() error {
		return cppmm.Harvest(sess.Exports, sess.Sentinel, bindingUnits)
	}); err != nil {
		return err
	}

	if err := rpt.Time("resolve", func() error {
		return cppmm.Resolve(sess, libraryUnits)
	}); err != nil {
		return err
	}

	for _, rj := range sess.Rejected() {
		rpt.AddRejected(rj.RecordCpp, rj.Sig.Name, rj.Sig.ParamSig)
	}

	var result emit.Result
	if err := rpt.Time("emit", func() error {
		var eerr error
		result, eerr = emit.Emit(sess, emit.Config{}, cfg.ExtraLibs)
		return eerr
	}); err != nil {
		return err
	}

	return writeResult(cfg.OutputDir, result)
}

func writeResult(outDir string, result emit.Result) error {
	if err := os.WriteFile(filepath.Join(outDir, "cppmm_runtime.h"), []byte(result.RuntimeHeader), 0o644); err != nil {
		return err
	}
	if result.VectorsHeader != "" {
		if err := os.WriteFile(filepath.Join(outDir, "cppmm_vectors.h"), []byte(result.VectorsHeader), 0o644); err != nil {
			return err
		}
	}
	for _, f := range result.Files {
		if err := os.WriteFile(filepath.Join(outDir, f.HeaderPath), []byte(f.HeaderContent), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, f.ImplPath), []byte(f.ImplContent), 0o644); err != nil {
			return err
		}
	}
	manifestPath := filepath.Join(outDir, "cppmmgen.manifest")
	if err := os.WriteFile(manifestPath, []byte(result.Manifest), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "cppmmgen: wrote %d file pair(s) to %s\n", len(result.Files), outDir)
	return nil
}
