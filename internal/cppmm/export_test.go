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

func TestExportedRecordFindMethodFirstWins(t *testing.T) {
	rec := &ExportedRecord{
		Methods: []ExportedMethod{
			{Name: "set", ParamSig: []string{"int"}, CName: "set_int"},
			{Name: "set", ParamSig: []string{"int"}, CName: "set_int_dup"},
			{Name: "set", ParamSig: []string{"float"}, CName: "set_float"},
		},
	}
	sig := MethodSignature{Name: "set", ParamSig: "int"}
	got, ok := rec.FindMethod(sig)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.CName != "set_int" {
		t.Errorf("FindMethod returned %q, want first match %q", got.CName, "set_int")
	}
}

func TestExportedRecordFindMethodNoMatch(t *testing.T) {
	rec := &ExportedRecord{
		Methods: []ExportedMethod{
			{Name: "set", ParamSig: []string{"int"}},
		},
	}
	if _, ok := rec.FindMethod(MethodSignature{Name: "get", ParamSig: "int"}); ok {
		t.Error("expected no match for an unrelated signature")
	}
}

func TestExportRegistryAddRecordDedup(t *testing.T) {
	reg := NewExportRegistry()
	first := &ExportedRecord{CppName: NewQualifiedName([]string{"ns", "Foo"}), SourceFile: "a.cpp"}
	second := &ExportedRecord{CppName: NewQualifiedName([]string{"ns", "Foo"}), SourceFile: "a.cpp"}

	if ok := reg.addRecord(first); !ok {
		t.Fatal("first addRecord should succeed")
	}
	if ok := reg.addRecord(second); ok {
		t.Error("second addRecord for the same key should be rejected")
	}
	got, ok := reg.Record("ns::Foo")
	if !ok || got != first {
		t.Error("Record should return the first-inserted entry")
	}
}

func TestExportRegistryFilesOrder(t *testing.T) {
	reg := NewExportRegistry()
	reg.addRecord(&ExportedRecord{CppName: NewQualifiedName([]string{"B"}), SourceFile: "b.cpp"})
	reg.addRecord(&ExportedRecord{CppName: NewQualifiedName([]string{"A"}), SourceFile: "a.cpp"})
	reg.addRecord(&ExportedRecord{CppName: NewQualifiedName([]string{"B2"}), SourceFile: "b.cpp"})

	files := reg.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Filename != "b.cpp" || files[1].Filename != "a.cpp" {
		t.Errorf("Files() order = [%s, %s], want first-seen order [b.cpp, a.cpp]", files[0].Filename, files[1].Filename)
	}
	if len(files[0].Records) != 2 {
		t.Errorf("b.cpp should carry 2 records, got %d", len(files[0].Records))
	}
}

func TestExportRegistrySpecializations(t *testing.T) {
	reg := NewExportRegistry()
	sp := ExportedSpecialization{Alias: "vec3f", BaseCpp: NewQualifiedName([]string{"Vec"})}
	reg.addSpecialization("ns::Vec", sp)

	got := reg.Specializations("ns::Vec")
	if len(got) != 1 || got[0].Alias != "vec3f" {
		t.Errorf("Specializations(ns::Vec) = %v, want one entry aliased vec3f", got)
	}
	if len(reg.Specializations("ns::Other")) != 0 {
		t.Error("Specializations for an unregistered key should be empty")
	}
}

func TestCanonicalParamSpellingBuiltinAndPointer(t *testing.T) {
	inner := cppast.QualType{IsBuiltin: true, Builtin: "int"}
	ptr := cppast.QualType{IsPointer: true, IsConst: true, Pointee: &inner}

	got := canonicalParamSpelling(ptr)
	want := "const int*"
	if got != want {
		t.Errorf("canonicalParamSpelling(ptr) = %q, want %q", got, want)
	}
}

func TestCanonicalParamSpellingTemplate(t *testing.T) {
	arg := cppast.QualType{IsBuiltin: true, Builtin: "float"}
	tmpl := cppast.QualType{
		IsTemplate:   true,
		TemplateName: []string{"std", "vector"},
		TemplateArgs: []cppast.QualType{arg},
	}
	got := canonicalParamSpelling(tmpl)
	want := "std::vector<float>"
	if got != want {
		t.Errorf("canonicalParamSpelling(tmpl) = %q, want %q", got, want)
	}
}

func TestMethodSigFromOracleDecl(t *testing.T) {
	params := []cppast.Param{
		{Name: "x", Type: cppast.QualType{IsBuiltin: true, Builtin: "float"}},
		{Name: "y", Type: cppast.QualType{IsBuiltin: true, Builtin: "float"}},
	}
	sig := methodSigFromOracleDecl("set", params, true, false)
	want := MethodSignature{Name: "set", ParamSig: "float,float", IsConst: true, IsStatic: false}
	if sig != want {
		t.Errorf("methodSigFromOracleDecl = %+v, want %+v", sig, want)
	}
}
