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
	"testing"

	"github.com/go-cppmm/cppmmgen/internal/cppast"
)

func TestResolveRecordByKeyBuildsFullCNameAndDestructor(t *testing.T) {
	rd := cppast.RecordDecl{
		Loc:                  cppast.Loc{File: "widget.h"},
		Names:                []string{"ns", "Widget"},
		HasVisibleDestructor: true,
		Methods: []cppast.MethodDecl{
			{Names: []string{"ns", "Widget", "area"}, Return: cppast.QualType{IsBuiltin: true, Builtin: "float"}, IsConst: true},
		},
	}
	units := []cppast.TranslationUnit{{Filename: "widget.h", Records: []cppast.RecordDecl{rd}}}
	rv, sess := newTestResolver(units)
	if err := sess.Namespaces.Add("ns", "mylib"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sess.Exports.addRecord(&ExportedRecord{
		CppName: NewQualifiedName([]string{"ns", "Widget"}),
		CName:   "Widget",
		Kind:    RecordOpaquePtr,
		Methods: []ExportedMethod{
			{Name: "area", ParamSig: nil, IsConst: true, CName: "area"},
		},
	})

	rec, err := rv.resolveRecordByKey("ns::Widget", "widget.h")
	if err != nil {
		t.Fatalf("resolveRecordByKey: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a resolved record")
	}
	if rec.CName != "mylib_Widget" {
		t.Errorf("CName = %q, want %q (rename-aware full join)", rec.CName, "mylib_Widget")
	}
	area, ok := rec.Methods["area"]
	if !ok {
		t.Fatal("expected method area to be matched")
	}
	if area.CName != "mylib_Widget_area" {
		t.Errorf("area.CName = %q, want %q", area.CName, "mylib_Widget_area")
	}
	// spec §3 Method: "Namespaces of a method include the owning record's
	// c-name as the innermost segment".
	if got, want := area.Name.CppName(), "ns::mylib_Widget::area"; got != want {
		t.Errorf("area.Name.CppName() = %q, want %q (record c-name as innermost segment)", got, want)
	}
	dtor, ok := rec.Methods["dtor"]
	if !ok {
		t.Fatal("expected a synthesized destructor")
	}
	if dtor.CName != "mylib_Widget_dtor" || !dtor.IsDestructor {
		t.Errorf("dtor = %+v, want CName mylib_Widget_dtor and IsDestructor", dtor)
	}
	if got, want := dtor.Name.CppName(), "ns::mylib_Widget::dtor"; got != want {
		t.Errorf("dtor.Name.CppName() = %q, want %q", got, want)
	}
}

func TestResolveRecordByKeyIsReentrant(t *testing.T) {
	// Node holds a pointer to Node, forming a direct self-cycle through a
	// field. Materializing Node must not recurse forever.
	nodeRef := cppast.QualType{IsPointer: true, Pointee: &cppast.QualType{IsRecord: true, RecordName: []string{"ns", "Node"}}}
	rd := cppast.RecordDecl{
		Names:  []string{"ns", "Node"},
		Fields: []cppast.FieldDecl{{Name: "next", Type: nodeRef}},
	}
	units := []cppast.TranslationUnit{{Filename: "node.h", Records: []cppast.RecordDecl{rd}}}
	rv, sess := newTestResolver(units)
	sess.Exports.addRecord(&ExportedRecord{
		CppName: NewQualifiedName([]string{"ns", "Node"}),
		CName:   "Node",
		Kind:    RecordValueType,
	})

	rec, err := rv.resolveRecordByKey("ns::Node", "node.h")
	if err != nil {
		t.Fatalf("resolveRecordByKey: %v", err)
	}
	if rec == nil {
		t.Fatal("expected Node to resolve despite the self-reference")
	}
	if rec.Materializing() {
		t.Error("Node should be fully materialized (Finish called) after resolution completes")
	}
	// The cyclic pointer field is not plain data, so it's skipped rather
	// than rejected outright (fillValueFields logs and continues).
	if len(rec.Fields) != 0 {
		t.Errorf("pointer field should have been skipped as non-plain-data, got %v", rec.Fields)
	}
}

func TestResolveRecordByKeySuppressedByDirective(t *testing.T) {
	rd := cppast.RecordDecl{Names: []string{"ns", "Hidden"}}
	units := []cppast.TranslationUnit{{Filename: "h.h", Records: []cppast.RecordDecl{rd}}}
	rv, sess := newTestResolver(units)
	sess.Exports.addRecord(&ExportedRecord{
		CppName:   NewQualifiedName([]string{"ns", "Hidden"}),
		CName:     "Hidden",
		Kind:      RecordOpaquePtr,
		Directive: Directives{Ignore: true},
	})

	rec, err := rv.resolveRecordByKey("ns::Hidden", "h.h")
	if err != nil {
		t.Fatalf("resolveRecordByKey: %v", err)
	}
	if rec != nil {
		t.Error("a record suppressed by an ignore directive should not be materialized")
	}
	if _, ok := sess.Output.Record("ns::Hidden"); ok {
		t.Error("suppressed record should not appear in the output registry")
	}
}

func TestWalkMethodsRecordsRejectedSignature(t *testing.T) {
	rd := cppast.RecordDecl{
		Names: []string{"ns", "Widget"},
		Methods: []cppast.MethodDecl{
			{Names: []string{"ns", "Widget", "undeclaredMethod"}, Return: cppast.QualType{IsBuiltin: true, Builtin: "void"}},
		},
	}
	units := []cppast.TranslationUnit{{Filename: "widget.h", Records: []cppast.RecordDecl{rd}}}
	rv, sess := newTestResolver(units)
	sess.WarnUnbound = true
	sess.Exports.addRecord(&ExportedRecord{
		CppName: NewQualifiedName([]string{"ns", "Widget"}),
		CName:   "Widget",
		Kind:    RecordOpaquePtr,
	})

	if _, err := rv.resolveRecordByKey("ns::Widget", "widget.h"); err != nil {
		t.Fatalf("resolveRecordByKey: %v", err)
	}
	rejected := sess.Rejected()
	if len(rejected) != 1 || rejected[0].Sig.Name != "undeclaredMethod" {
		t.Errorf("Rejected() = %v, want one entry for undeclaredMethod", rejected)
	}
}

func TestMaterializeSpecializationUsesAliasVerbatim(t *testing.T) {
	rd := cppast.RecordDecl{
		Names:         []string{"ns", "base_vec"},
		IsTemplate:    true,
		IsDependent:   true,
		TemplateParms: []string{"T", "N"},
	}
	units := []cppast.TranslationUnit{{Filename: "vec.h", Records: []cppast.RecordDecl{rd}}}
	rv, sess := newTestResolver(units)
	if err := sess.Namespaces.Add("ns", "mylib"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	exp := &ExportedRecord{
		CppName:     NewQualifiedName([]string{"ns", "base_vec"}),
		CName:       "base_vec",
		Kind:        RecordValueType,
		IsDependent: true,
	}
	sess.Exports.addRecord(exp)
	args := []QualifiedType{
		{Type: Type{Kind: TypePrimitive, Primitive: "float"}},
		{Type: Type{Kind: TypePrimitive, Primitive: "int"}},
	}
	sp := ExportedSpecialization{Args: args, Alias: "vec3f", BaseCpp: exp.CppName}

	rec, err := rv.materializeSpecialization(rd, exp, sp, "vec.h")
	if err != nil {
		t.Fatalf("materializeSpecialization: %v", err)
	}
	// Per spec §6/§8 scenario 6, a specialization's c-name is the bare
	// alias, never namespace-prefixed via FullCName.
	if rec.CName != "vec3f" {
		t.Errorf("CName = %q, want bare alias %q (no namespace prefix)", rec.CName, "vec3f")
	}

	key := specializationKey("ns::base_vec", args)
	if _, ok := sess.Output.Record(key); !ok {
		t.Errorf("expected the specialization keyed by %q in the output registry", key)
	}
}

func TestMaterializeSpecializationRejectsOpaqueBytes(t *testing.T) {
	rd := cppast.RecordDecl{Names: []string{"ns", "base_vec"}, IsTemplate: true, IsDependent: true}
	rv, sess := newTestResolver(nil)
	exp := &ExportedRecord{
		CppName:     NewQualifiedName([]string{"ns", "base_vec"}),
		CName:       "base_vec",
		Kind:        RecordOpaqueBytes,
		IsDependent: true,
	}
	sess.Exports.addRecord(exp)
	sp := ExportedSpecialization{Alias: "vec3f", BaseCpp: exp.CppName}

	if _, err := rv.materializeSpecialization(rd, exp, sp, "vec.h"); err == nil {
		t.Error("expected an error materializing an opaquebytes specialization")
	}
}

func TestResolveTopLevelFunctionAppliesSpecializationAlias(t *testing.T) {
	fd := cppast.FunctionDecl{
		Names:      []string{"ns", "make"},
		IsTemplate: true,
		Return:     cppast.QualType{IsTemplateParm: true, TemplateParmIndex: 0},
		Params:     []cppast.Param{{Name: "v", Type: cppast.QualType{IsTemplateParm: true, TemplateParmIndex: 0}}},
	}
	units := []cppast.TranslationUnit{{Filename: "make.h", Functions: []cppast.FunctionDecl{fd}}}
	rv, sess := newTestResolver(units)
	exp := &ExportedFunction{
		CppName:     NewQualifiedName([]string{"ns", "make"}),
		CName:       "make",
		IsDependent: true,
		Specializations: []ExportedSpecialization{
			{Alias: "make_float", Args: []QualifiedType{{Type: Type{Kind: TypePrimitive, Primitive: "float"}}}},
		},
	}
	sess.Exports.addFunction(exp)

	if err := rv.resolveTopLevelFunction(fd, "make.h"); err != nil {
		t.Fatalf("resolveTopLevelFunction: %v", err)
	}
	key := specializationKey("ns::make", exp.Specializations[0].Args)
	fn, ok := sess.Output.funcs[key]
	if !ok {
		t.Fatalf("expected a materialized function keyed by %q", key)
	}
	if fn.CName != "make_float" {
		t.Errorf("CName = %q, want bare alias %q", fn.CName, "make_float")
	}
	if fn.Params[0].Type.Type.Primitive != "float" {
		t.Errorf("param type = %+v, want float (substituted via the specialization env)", fn.Params[0].Type)
	}
}
