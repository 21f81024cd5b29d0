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


package emit

import (
	"path/filepath"
	"strings"
	"text/template"

	"github.com/go-cppmm/cppmmgen/internal/cppmm"
)

// GeneratedFile is one input binding source's emitted pair (spec §4.F,
// "one C header, one C++ implementation file").
type GeneratedFile struct {
	HeaderPath, HeaderContent string
	ImplPath, ImplContent     string
}

// Result is everything Emit produces for a whole run: the per-file
// header/impl pairs, the shared runtime and vector-helper headers, and the
// build manifest text.
type Result struct {
	Files          []GeneratedFile
	RuntimeHeader  string // content for cppmm_runtime.h
	VectorsHeader  string // content for cfg.VectorsHeader, empty if no vectors were synthesized
	Manifest       string
}

// Emit consumes a fully resolved Session (Pass 2 complete) and produces one
// header/implementation pair per input file plus the project manifest
// (spec §4.F). libs are the link libraries from configuration, passed
// through verbatim into the manifest.
func Emit(sess *cppmm.Session, cfg Config, libs []string) (Result, error) {
	var res Result
	var entries []manifestEntry

	for _, f := range sess.Output.Files() {
		headerName := outputBaseName(f.Filename) + ".h"
		implName := outputBaseName(f.Filename) + ".cpp"

		res.Files = append(res.Files, GeneratedFile{
			HeaderPath:    headerName,
			HeaderContent: renderHeader(sess, f, cfg),
			ImplPath:      implName,
			ImplContent:   renderImpl(sess, f, headerName),
		})
		entries = append(entries, manifestEntry{
			Header:   headerName,
			Impl:     implName,
			Includes: f.RawIncludes,
		})
	}

	res.RuntimeHeader = renderRuntimeHeader()
	if len(sess.Output.Vectors()) > 0 {
		res.VectorsHeader = renderVectorsHeader(sess)
	}

	manifest, err := renderManifest(entries, libs)
	if err != nil {
		return Result{}, err
	}
	res.Manifest = manifest
	return res, nil
}

func outputBaseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type manifestEntry struct {
	Header, Impl string
	Includes     []string
}

var manifestTemplate = template.Must(template.New("manifest").Parse(
	`{{range .Entries}}header: {{.Header}}
impl: {{.Impl}}
{{range .Includes}}include: {{.}}
{{end}}{{end}}{{range .Libs}}lib: {{.}}
{{end}}`))

// renderManifest builds the line-oriented build manifest (SPEC_FULL
// expansion: host build system integration is out of scope, only the
// record of what was generated and what it needs is emitted).
func renderManifest(entries []manifestEntry, libs []string) (string, error) {
	var b strings.Builder
	err := manifestTemplate.Execute(&b, struct {
		Entries []manifestEntry
		Libs    []string
	}{entries, libs})
	return b.String(), err
}
