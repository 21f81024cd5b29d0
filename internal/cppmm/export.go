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
	"fmt"
	"strings"

	"github.com/go-cppmm/cppmmgen/internal/cppast"
)

// ExportedMethod is a signature-only comparator built from name + ordered
// parameter types + const/static flags + attribute directives + chosen
// c-name (spec §3). It is built from the binding source's re-declaration
// during Pass 1 and compared, during Pass 2, against every method the
// Matcher finds on the real library record.
type ExportedMethod struct {
	Name      string // cpp method name, e.g. "channel_bytes" or "operator=="
	ParamSig  []string
	IsConst   bool
	IsStatic  bool
	Directive Directives
	CName     string // RenameTo if set, else Name
	Loc       cppast.Loc
}

// Signature returns the comparable tuple the Matcher uses for equality
// (spec §4.E "build a comparison signature").
func (m ExportedMethod) Signature() MethodSignature {
	return MethodSignature{Name: m.Name, ParamSig: strings.Join(m.ParamSig, ","), IsConst: m.IsConst, IsStatic: m.IsStatic}
}

// MethodSignature is the (name, params, const, static) tuple spec §4.E
// compares library declarations against exported ones with.
type MethodSignature struct {
	Name     string
	ParamSig string
	IsConst  bool
	IsStatic bool
}

// ExportedRecord is a Pass-1 intended export (spec §3).
type ExportedRecord struct {
	CppName           QualifiedName
	CName             string
	Kind              RecordKind
	Directive         Directives
	SourceFile        string
	IsDependent       bool
	TemplateParmNames []string // primary template's formal parameter names, in order
	Methods           []ExportedMethod
	RejectedSigs      []MethodSignature // methods seen in the library but unmatched
}

// FindMethod linear-scans Methods for one whose signature matches sig,
// returning (method, true) on the first match (spec §4.E: "the first wins").
func (r *ExportedRecord) FindMethod(sig MethodSignature) (ExportedMethod, bool) {
	for _, m := range r.Methods {
		if m.Signature() == sig {
			return m, true
		}
	}
	return ExportedMethod{}, false
}

// ExportedEnum is a Pass-1 intended enum export.
type ExportedEnum struct {
	CppName    QualifiedName
	CName      string
	SourceFile string
}

// ExportedSpecialization is, for a dependent record, one concrete
// instantiation requested via a type-alias declaration (spec §3).
type ExportedSpecialization struct {
	Args      []QualifiedType            // ordered template arguments
	NamedArgs map[string]QualifiedType   // formal parameter name -> concrete type
	Alias     string                      // c-name to use for this instantiation
	BaseCpp   QualifiedName               // the dependent record's cpp-qualified-name
}

// ExportedFunction is the free-function analog of ExportedRecord.
type ExportedFunction struct {
	CppName        QualifiedName
	CName          string
	SourceFile     string
	Directive      Directives
	IsDependent    bool
	Specializations []ExportedSpecialization // keyed positionally, aligned via NamedArgs
}

// ExportedFile groups everything Pass 1 harvested from one source file,
// keyed by the filename the Oracle reported for each declaration's
// location (spec §3 File, "exported view").
type ExportedFile struct {
	Filename string
	Records  []*ExportedRecord
	Enums    []*ExportedEnum
	Funcs    []*ExportedFunction
	// RawIncludes are "#include" lines recovered from the binding source,
	// passed through verbatim into the emitted header (spec §4.F).
	RawIncludes []string
}

// ExportRegistry is the table produced by Pass 1 (spec §3, §4.C). It is
// filled once and read-only thereafter; Pass 2 only looks entries up by
// cpp-qualified-name.
type ExportRegistry struct {
	records map[string]*ExportedRecord
	enums   map[string]*ExportedEnum
	funcs   map[string]*ExportedFunction
	files   map[string]*ExportedFile
	order   []string // file names, insertion order, for deterministic emission

	// specs holds, for a dependent record's cpp-qualified-name key, every
	// ExportedSpecialization harvested from a type-alias declaration
	// (spec §4.C). Kept alongside rather than on ExportedRecord itself so
	// a plain (non-dependent) record never carries an unused field.
	specs map[string][]ExportedSpecialization
}

// NewExportRegistry builds an empty registry.
func NewExportRegistry() *ExportRegistry {
	return &ExportRegistry{
		records: make(map[string]*ExportedRecord),
		enums:   make(map[string]*ExportedEnum),
		funcs:   make(map[string]*ExportedFunction),
		files:   make(map[string]*ExportedFile),
		specs:   make(map[string][]ExportedSpecialization),
	}
}

// Specializations returns every ExportedSpecialization registered for the
// dependent record keyed by baseKey, in harvest order.
func (r *ExportRegistry) Specializations(baseKey string) []ExportedSpecialization {
	return r.specs[baseKey]
}

func (r *ExportRegistry) addSpecialization(baseKey string, s ExportedSpecialization) {
	r.specs[baseKey] = append(r.specs[baseKey], s)
}

func (r *ExportRegistry) fileFor(name string) *ExportedFile {
	f, ok := r.files[name]
	if !ok {
		f = &ExportedFile{Filename: name}
		r.files[name] = f
		r.order = append(r.order, name)
	}
	return f
}

// Files returns every ExportedFile in first-seen order.
func (r *ExportRegistry) Files() []*ExportedFile {
	files := make([]*ExportedFile, len(r.order))
	for i, name := range r.order {
		files[i] = r.files[name]
	}
	return files
}

// Record looks up an exported record by cpp-qualified-name.
func (r *ExportRegistry) Record(key string) (*ExportedRecord, bool) {
	rec, ok := r.records[key]
	return rec, ok
}

// Enum looks up an exported enum by cpp-qualified-name.
func (r *ExportRegistry) Enum(key string) (*ExportedEnum, bool) {
	e, ok := r.enums[key]
	return e, ok
}

// Function looks up an exported function by cpp-qualified-name.
func (r *ExportRegistry) Function(key string) (*ExportedFunction, bool) {
	fn, ok := r.funcs[key]
	return fn, ok
}

// addRecord inserts rec, keyed by its cpp-qualified-name. A duplicate
// discovery is a warning and is ignored (spec §3 invariants) — the first
// registration wins.
func (r *ExportRegistry) addRecord(rec *ExportedRecord) (inserted bool) {
	key := rec.CppName.Key()
	if _, exists := r.records[key]; exists {
		return false
	}
	r.records[key] = rec
	r.fileFor(rec.SourceFile).Records = append(r.fileFor(rec.SourceFile).Records, rec)
	return true
}

func (r *ExportRegistry) addEnum(e *ExportedEnum) (inserted bool) {
	key := e.CppName.Key()
	if _, exists := r.enums[key]; exists {
		return false
	}
	r.enums[key] = e
	r.fileFor(e.SourceFile).Enums = append(r.fileFor(e.SourceFile).Enums, e)
	return true
}

func (r *ExportRegistry) addFunction(fn *ExportedFunction) (inserted bool) {
	key := fn.CppName.Key()
	if existing, exists := r.funcs[key]; exists {
		return existing == fn
	}
	r.funcs[key] = fn
	r.fileFor(fn.SourceFile).Funcs = append(r.fileFor(fn.SourceFile).Funcs, fn)
	return true
}

// canonicalParamSpelling builds a deterministic, order-preserving string
// spelling for a parameter type, used purely as a comparison key by the
// Matcher (spec §4.E) — never emitted.
func canonicalParamSpelling(q cppast.QualType) string {
	var b strings.Builder
	if q.IsConst {
		b.WriteString("const ")
	}
	switch {
	case q.IsPointer:
		b.WriteString(canonicalParamSpelling(*q.Pointee))
		b.WriteString("*")
	case q.IsReference:
		b.WriteString(canonicalParamSpelling(*q.Pointee))
		b.WriteString("&")
	case q.IsBuiltin:
		b.WriteString(string(q.Builtin))
	case q.IsTemplateParm:
		b.WriteString(q.TemplateParmName)
	case q.IsTemplate:
		b.WriteString(strings.Join(q.TemplateName, "::"))
		b.WriteString("<")
		for i, a := range q.TemplateArgs {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(canonicalParamSpelling(a))
		}
		b.WriteString(">")
	case q.IsRecord:
		b.WriteString(strings.Join(q.RecordName, "::"))
	case q.IsEnum:
		b.WriteString(strings.Join(q.EnumName, "::"))
	default:
		b.WriteString("?")
	}
	return b.String()
}

func paramSigFromOracle(params []cppast.Param) []string {
	sig := make([]string, len(params))
	for i, p := range params {
		sig[i] = canonicalParamSpelling(p.Type)
	}
	return sig
}

func methodSigFromOracleDecl(name string, params []cppast.Param, isConst, isStatic bool) MethodSignature {
	return MethodSignature{
		Name:     name,
		ParamSig: strings.Join(paramSigFromOracle(params), ","),
		IsConst:  isConst,
		IsStatic: isStatic,
	}
}

func fmtLoc(l cppast.Loc) string { return fmt.Sprintf("%s:%d", l.File, l.Line) }
