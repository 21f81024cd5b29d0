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


// Package emit implements the C Emitter (spec §4.F): it consumes a fully
// resolved cppmm.Session and produces, per input file, a C header and a C++
// implementation, plus one project-wide manifest. It never mutates the
// session; the output registry is frozen by the time Emit runs (spec §5).
package emit

import (
	"fmt"
	"strings"

	"github.com/go-cppmm/cppmmgen/internal/cppmm"
)

// cSpelling renders the C-visible spelling of a resolved type: the handle
// name for a record/enum/vector back-reference, or the primitive spelling
// verbatim, with pointer/reference/const qualifiers applied left to right.
func cSpelling(sess *cppmm.Session, qt cppmm.QualifiedType) string {
	var base string
	switch qt.Type.Kind {
	case cppmm.TypePrimitive:
		base = primitiveSpelling(qt.Type.Primitive)
	case cppmm.TypeRecord:
		if rec, ok := sess.Output.Record(qt.Type.Key); ok {
			base = rec.CName
		} else {
			base = "void"
		}
	case cppmm.TypeEnum:
		if en, ok := sess.Output.Enum(qt.Type.Key); ok {
			base = en.CName
		} else {
			base = "int"
		}
	case cppmm.TypeVector:
		base = qt.Type.Primitive
	default:
		base = "void" // cppmm.TypeUnhandled; caller logs separately
	}

	var b strings.Builder
	if qt.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(base)
	if cIsPointerSpelling(qt) {
		b.WriteString("*")
	}
	return b.String()
}

func isHandleKind(k cppmm.TypeKind) bool {
	return k == cppmm.TypeVector
}

// cIsPointerSpelling reports whether qt's C-visible spelling (cSpelling) is
// itself a pointer — true for owning indirections, vector handles, and
// anything that was already a C++ pointer or reference. A
// record/enum value passed or returned by plain value has none of these set
// even when RequiresCast is true, so callers bridging such a value through
// reinterpret_cast must take its address rather than reinterpret_cast the
// value itself (castArgExpr).
func cIsPointerSpelling(qt cppmm.QualifiedType) bool {
	return qt.IsUniquePtr || isHandleKind(qt.Type.Kind) || qt.IsPointer || qt.IsReference
}

func primitiveSpelling(p string) string {
	switch p {
	case "bool":
		return "bool"
	case "cppmm_string":
		return "cppmm_string"
	case "cppmm_string_view":
		return "cppmm_string_view"
	default:
		return p
	}
}

// cppSpelling renders the original C++ type for use inside the
// implementation file's delegated call (casts reinterpret through this
// spelling, the emitted function signature uses cSpelling).
func cppSpelling(sess *cppmm.Session, qt cppmm.QualifiedType) string {
	var base string
	switch qt.Type.Kind {
	case cppmm.TypePrimitive:
		switch qt.Type.Primitive {
		case "cppmm_string":
			base = "std::string"
		case "cppmm_string_view":
			base = "std::string_view"
		default:
			base = qt.Type.Primitive
		}
	case cppmm.TypeRecord:
		if rec, ok := sess.Output.Record(qt.Type.Key); ok {
			base = rec.CppName.CppName()
		} else {
			base = "void"
		}
	case cppmm.TypeEnum:
		if en, ok := sess.Output.Enum(qt.Type.Key); ok {
			base = en.CppName.CppName()
		} else {
			base = "int"
		}
	case cppmm.TypeVector:
		elemSpelling := "void"
		if v, ok := sess.Output.Vector(qt.Type.Key); ok {
			elemSpelling = cppSpelling(sess, v.Element)
		}
		base = fmt.Sprintf("std::vector<%s>", elemSpelling)
	default:
		base = "void"
	}
	if qt.IsUniquePtr {
		base = fmt.Sprintf("std::unique_ptr<%s>", base)
	}
	var b strings.Builder
	if qt.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(base)
	if qt.IsPointer || qt.IsReference || qt.Type.Kind == cppmm.TypeRecord && requiresHandle(qt) {
		b.WriteString("*")
	}
	return b.String()
}

func requiresHandle(qt cppmm.QualifiedType) bool {
	return qt.RequiresCast && qt.Type.Kind == cppmm.TypeRecord
}
