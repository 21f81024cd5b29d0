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
	"fmt"
	"strings"
	"text/template"

	"github.com/go-cppmm/cppmmgen/internal/cppmm"
)

// headerTemplates holds the per-entity-kind snippets the header emitter
// fills in, mirroring the templated-body style the emitter's ambient stack
// is grounded on (text/template used for fixed-shape, data-driven output
// rather than ad hoc string concatenation for the repeated cases).
var headerTemplates = template.Must(template.New("header").Parse(`
{{define "opaqueptr"}}typedef struct {{.CName}}_t {{.CName}};
{{end}}
{{define "opaquebytes"}}typedef struct { char _private[{{.Size}}]; } {{.CName}} __attribute__((aligned({{.Align}})));
{{end}}
{{define "enum"}}typedef enum {
{{range $i, $e := .Values}}	{{$e.Name}} = {{$e.Value}},
{{end}}} {{.CName}};
{{end}}
{{define "vector_protos"}}typedef struct {{.CName}}_t {{.CName}};
{{.CName}}* {{.CName}}_ctor(void);
void {{.CName}}_dtor({{.CName}}*);
size_t {{.CName}}_size(const {{.CName}}*);
{{.Elem}}* {{.CName}}_data({{.CName}}*);
{{.Elem}} {{.CName}}_get(const {{.CName}}*, size_t);
void {{.CName}}_set({{.CName}}*, size_t, {{.Elem}});
{{end}}
`))

func execTemplate(name string, data interface{}) string {
	var b strings.Builder
	if err := headerTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("/* template error: %v */\n", err)
	}
	return b.String()
}

// IncludeGuardStyle selects how a header's include guard is spelled (spec
// expansion: the source's macro/alias it is silent on).
type IncludeGuardStyle int

const (
	GuardPragmaOnce IncludeGuardStyle = iota
	GuardIfndef
)

// Config governs how Emit renders text around the data the session
// resolved; it never changes what gets emitted, only its surface spelling.
type Config struct {
	GuardStyle      IncludeGuardStyle
	VectorsHeader   string // default "cppmm_vectors.h"
	RuntimeIncludes []string
}

func (c Config) vectorsHeaderName() string {
	if c.VectorsHeader != "" {
		return c.VectorsHeader
	}
	return "cppmm_vectors.h"
}

// renderHeader builds one input file's header text (spec §4.F "Header").
func renderHeader(sess *cppmm.Session, f *cppmm.File, cfg Config) string {
	var b strings.Builder
	guardName := includeGuardName(f.Filename)

	switch cfg.GuardStyle {
	case GuardIfndef:
		fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guardName, guardName)
	default:
		b.WriteString("#pragma once\n\n")
	}

	b.WriteString("#include <stddef.h>\n")
	b.WriteString("#include <stdbool.h>\n")
	fmt.Fprintf(&b, "#include \"%s\"\n", runtimeHeaderName)
	if len(f.Functions) > 0 || recordsNeedVectors(sess, f) {
		fmt.Fprintf(&b, "#include \"%s\"\n", cfg.vectorsHeaderName())
	}
	for _, inc := range f.RawIncludes {
		b.WriteString(strings.TrimRight(inc, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")

	for _, rec := range f.Records {
		b.WriteString(renderRecordDecl(sess, rec))
	}
	for _, en := range f.Enums {
		b.WriteString(execTemplate("enum", enumTemplateData(en)))
	}
	for _, rec := range f.Records {
		for _, cname := range rec.MethodOrder {
			b.WriteString(renderMethodPrototype(sess, rec, rec.Methods[cname]))
		}
	}
	for _, fn := range f.Functions {
		b.WriteString(renderFunctionPrototype(sess, fn))
	}

	b.WriteString("\n#ifdef __cplusplus\n}\n#endif\n")
	if cfg.GuardStyle == GuardIfndef {
		fmt.Fprintf(&b, "\n#endif /* %s */\n", guardName)
	}
	return b.String()
}

func recordsNeedVectors(sess *cppmm.Session, f *cppmm.File) bool {
	for _, rec := range f.Records {
		for _, cname := range rec.MethodOrder {
			if typeMentionsVector(rec.Methods[cname].Return) {
				return true
			}
			for _, p := range rec.Methods[cname].Params {
				if typeMentionsVector(p.Type) {
					return true
				}
			}
		}
	}
	for _, fn := range f.Functions {
		if typeMentionsVector(fn.Return) {
			return true
		}
	}
	return false
}

func typeMentionsVector(qt cppmm.QualifiedType) bool { return qt.Type.Kind == cppmm.TypeVector }

func includeGuardName(filename string) string {
	base := filename
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(base) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString("_H")
	return b.String()
}

func renderRecordDecl(sess *cppmm.Session, rec *cppmm.Record) string {
	switch rec.Kind {
	case cppmm.RecordOpaquePtr:
		return execTemplate("opaqueptr", struct{ CName string }{rec.CName})
	case cppmm.RecordOpaqueBytes:
		return execTemplate("opaquebytes", struct {
			CName       string
			Size, Align int
		}{rec.CName, rec.SizeBits / 8, rec.AlignBits / 8})
	case cppmm.RecordValueType:
		var b strings.Builder
		fmt.Fprintf(&b, "typedef struct {\n")
		for _, fld := range rec.Fields {
			fmt.Fprintf(&b, "\t%s %s;\n", cSpelling(sess, fld.Type), fld.Name)
		}
		fmt.Fprintf(&b, "} %s;\n", rec.CName)
		return b.String()
	}
	return ""
}

func enumTemplateData(en *cppmm.Enum) interface{} {
	return struct {
		CName  string
		Values []cppmm.EnumValue
	}{en.CName, en.Enumerators}
}

func renderMethodPrototype(sess *cppmm.Session, rec *cppmm.Record, m *cppmm.Method) string {
	var params []string
	if !m.IsStatic && !m.IsConstructor {
		self := rec.CName + "*"
		if m.IsConst {
			self = "const " + self
		}
		params = append(params, self+" self")
	}
	for _, p := range m.Params {
		params = append(params, fmt.Sprintf("%s %s", cSpelling(sess, p.Type), p.Name))
	}
	ret := "void"
	switch {
	case m.IsConstructor:
		ret = rec.CName + "*"
	case !m.IsDestructor:
		ret = cSpelling(sess, m.Return)
	}
	return fmt.Sprintf("%s %s(%s);\n", ret, m.CName, strings.Join(params, ", "))
}

func renderFunctionPrototype(sess *cppmm.Session, fn *cppmm.Function) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, fmt.Sprintf("%s %s", cSpelling(sess, p.Type), p.Name))
	}
	return fmt.Sprintf("%s %s(%s);\n", cSpelling(sess, fn.Return), fn.CName, strings.Join(params, ", "))
}

// renderVectorsHeader builds the single shared header declaring every
// synthesized Vector entry's opaque handle and helper prototypes (spec §8
// scenario 4).
func renderVectorsHeader(sess *cppmm.Session) string {
	var b strings.Builder
	b.WriteString("#pragma once\n\n#include <stddef.h>\n\n#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	for _, v := range sess.Output.Vectors() {
		b.WriteString(execTemplate("vector_protos", struct {
			CName string
			Elem  string
		}{v.CName, cSpelling(sess, v.Element)}))
	}
	b.WriteString("\n#ifdef __cplusplus\n}\n#endif\n")
	return b.String()
}
