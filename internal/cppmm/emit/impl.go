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

	"github.com/go-cppmm/cppmmgen/internal/cppmm"
)

// renderImpl builds one input file's C++ implementation (spec §4.F
// "Implementation"): every function/method body is chosen by inspecting its
// return QualifiedType against the return-shape dispatch table.
func renderImpl(sess *cppmm.Session, f *cppmm.File, headerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#include \"%s\"\n\n", headerName)
	for _, inc := range f.RawIncludes {
		b.WriteString(strings.TrimRight(inc, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("#include <new>\n#include <utility>\n#include <cstring>\n#include <cstdlib>\n#include <string>\n#include <string_view>\n\n")

	for _, rec := range f.Records {
		for _, cname := range rec.MethodOrder {
			b.WriteString(renderMethodBody(sess, rec, rec.Methods[cname]))
			b.WriteString("\n")
		}
	}
	for _, fn := range f.Functions {
		b.WriteString(renderFunctionBody(sess, fn))
		b.WriteString("\n")
	}
	return b.String()
}

// returnShape classifies a QualifiedType per spec §4.F's table.
type returnShape int

const (
	shapeVoid returnShape = iota
	shapeBuiltin
	shapeStringRef
	shapeValueType
	shapeOpaqueBytes
	shapeOpaquePtr
	shapeUniquePtr
)

func classifyReturn(sess *cppmm.Session, qt cppmm.QualifiedType) returnShape {
	if qt.IsUniquePtr {
		return shapeUniquePtr
	}
	switch qt.Type.Kind {
	case cppmm.TypePrimitive:
		if qt.Type.Primitive == "cppmm_string" || qt.Type.Primitive == "cppmm_string_view" {
			return shapeStringRef
		}
		return shapeBuiltin
	case cppmm.TypeRecord:
		rec, ok := sess.Output.Record(qt.Type.Key)
		if !ok {
			return shapeBuiltin
		}
		switch rec.Kind {
		case cppmm.RecordValueType:
			return shapeValueType
		case cppmm.RecordOpaqueBytes:
			return shapeOpaqueBytes
		default:
			return shapeOpaquePtr
		}
	default:
		return shapeBuiltin
	}
}

func renderMethodBody(sess *cppmm.Session, rec *cppmm.Record, m *cppmm.Method) string {
	var b strings.Builder

	var cParams, callArgs []string
	if !m.IsStatic && !m.IsConstructor {
		self := rec.CName + "*"
		if m.IsConst {
			self = "const " + self
		}
		cParams = append(cParams, self+" self")
	}
	for _, p := range m.Params {
		cParams = append(cParams, fmt.Sprintf("%s %s", cSpelling(sess, p.Type), p.Name))
		callArgs = append(callArgs, castArgExpr(sess, p))
	}

	cppRecordType := rec.CppName.CppName()
	if len(rec.TemplateArgs) > 0 {
		cppRecordType = specializationCppSpelling(sess, rec)
	}

	switch {
	case m.IsDestructor:
		fmt.Fprintf(&b, "void %s(%s) {\n", m.CName, strings.Join(cParams, ", "))
		fmt.Fprintf(&b, "\tdelete reinterpret_cast<%s*>(self);\n}\n", cppRecordType)
		return b.String()

	case m.IsConstructor:
		fmt.Fprintf(&b, "%s* %s(%s) {\n", rec.CName, m.CName, strings.Join(cParams, ", "))
		fmt.Fprintf(&b, "\treturn reinterpret_cast<%s*>(new %s(%s));\n}\n",
			rec.CName, cppRecordType, strings.Join(callArgs, ", "))
		return b.String()
	}

	shape := classifyReturn(sess, m.Return)
	ret := cSpelling(sess, m.Return)
	fmt.Fprintf(&b, "%s %s(%s) {\n", ret, m.CName, strings.Join(cParams, ", "))

	selfExpr := fmt.Sprintf("reinterpret_cast<%s*>(self)", stripConst(cppRecordType))
	if m.IsConst {
		selfExpr = fmt.Sprintf("reinterpret_cast<const %s*>(self)", stripConst(cppRecordType))
	}
	var call string
	if m.IsStatic {
		call = fmt.Sprintf("%s::%s(%s)", cppRecordType, m.CppLeaf, strings.Join(callArgs, ", "))
	} else {
		call = fmt.Sprintf("%s->%s(%s)", selfExpr, m.CppLeaf, strings.Join(callArgs, ", "))
	}
	writeReturnBody(&b, sess, shape, m.Return, call)
	b.WriteString("}\n")
	return b.String()
}

func renderFunctionBody(sess *cppmm.Session, fn *cppmm.Function) string {
	var b strings.Builder
	var cParams, callArgs []string
	for _, p := range fn.Params {
		cParams = append(cParams, fmt.Sprintf("%s %s", cSpelling(sess, p.Type), p.Name))
		callArgs = append(callArgs, castArgExpr(sess, p))
	}
	shape := classifyReturn(sess, fn.Return)
	ret := cSpelling(sess, fn.Return)
	fmt.Fprintf(&b, "%s %s(%s) {\n", ret, fn.CName, strings.Join(cParams, ", "))
	call := fmt.Sprintf("%s(%s)", fn.CppName.CppName(), strings.Join(callArgs, ", "))
	writeReturnBody(&b, sess, shape, fn.Return, call)
	b.WriteString("}\n")
	return b.String()
}

func writeReturnBody(b *strings.Builder, sess *cppmm.Session, shape returnShape, ret cppmm.QualifiedType, call string) {
	switch shape {
	case shapeVoid:
		fmt.Fprintf(b, "\t%s;\n", call)
	case shapeBuiltin:
		fmt.Fprintf(b, "\treturn %s;\n", call)
	case shapeStringRef:
		writeStringReturn(b, ret, call)
	case shapeValueType:
		cppType := stripConst(cppSpelling(sess, ret))
		fmt.Fprintf(b, "\t%s _tmp = %s;\n\t%s _out;\n\tstd::memcpy(&_out, &_tmp, sizeof(_out));\n\treturn _out;\n",
			cppType, call, cSpelling(sess, ret))
	case shapeOpaqueBytes:
		cppType := stripConst(cppSpelling(sess, ret))
		fmt.Fprintf(b, "\t%s _out;\n\tnew (&_out) %s(%s);\n\treturn *reinterpret_cast<%s*>(&_out);\n",
			cSpelling(sess, ret), cppType, call, cSpelling(sess, ret))
	case shapeOpaquePtr:
		cppType := stripConst(cppSpelling(sess, ret))
		fmt.Fprintf(b, "\t%s* _heap = new %s(%s);\n\treturn reinterpret_cast<%s>(_heap);\n",
			cppType, cppType, call, cSpelling(sess, ret))
	case shapeUniquePtr:
		fmt.Fprintf(b, "\treturn %s.release();\n", call)
	}
}

// writeStringReturn handles the two stdlib-string return rows of spec
// §4.F's table. basic_string is requires_cast=true (an owned conversion at
// the boundary, spec §4.D.4), so its contents are duplicated into a
// malloc'd buffer the caller owns and must release with
// cppmm_string_free — a single static/thread_local buffer would alias
// across overlapping calls and dangle once overwritten. string_view is
// requires_cast=false (a pass-through, spec §4.D.4): it already refers to
// memory the caller does not own, so it is handed back as-is with no copy
// and no matching free.
func writeStringReturn(b *strings.Builder, ret cppmm.QualifiedType, call string) {
	if ret.Type.Primitive == "cppmm_string_view" {
		fmt.Fprintf(b, "\tstd::string_view _tmp = %s;\n\treturn { _tmp.data(), _tmp.size() };\n", call)
		return
	}
	fmt.Fprintf(b, "\tstd::string _tmp = %s;\n\tchar* _buf = static_cast<char*>(std::malloc(_tmp.size()));\n"+
		"\tif (_buf != nullptr) {\n\t\tstd::memcpy(_buf, _tmp.data(), _tmp.size());\n\t}\n\treturn { _buf, _tmp.size() };\n", call)
}

// castArgExpr bridges a C parameter to the C++ call it feeds (spec §4.F
// "Requires cast"). A param whose C spelling is already a pointer (a
// handle, a unique_ptr release, or an explicit C++ pointer/reference) is
// reinterpret_cast straight through; a record/enum passed or returned by
// plain value has no C-side pointer to reinterpret, so its address must be
// taken first (spec §8 scenario 2's by-value TypeDesc constructor argument).
func castArgExpr(sess *cppmm.Session, p cppmm.Param) string {
	if !p.Type.RequiresCast {
		return p.Name
	}
	target := p.Name
	if !cIsPointerSpelling(p.Type) {
		target = "&" + p.Name
	}
	return fmt.Sprintf("*reinterpret_cast<%s*>(%s)", stripConst(cppSpelling(sess, p.Type)), target)
}

func stripConst(s string) string {
	return strings.TrimPrefix(strings.TrimSuffix(s, "*"), "const ")
}

// specializationCppSpelling renders a materialized specialization's
// original C++ instantiation, e.g. "ns::base_vec<float, 3>".
func specializationCppSpelling(sess *cppmm.Session, rec *cppmm.Record) string {
	var args []string
	for _, a := range rec.TemplateArgs {
		args = append(args, cppSpelling(sess, a))
	}
	return fmt.Sprintf("%s<%s>", rec.CppName.CppName(), strings.Join(args, ", "))
}
