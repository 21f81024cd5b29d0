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

import "testing"

func TestNewQualifiedName(t *testing.T) {
	tests := []struct {
		path    []string
		wantNs  []string
		wantLeaf string
	}{
		{nil, nil, ""},
		{[]string{"Foo"}, []string{}, "Foo"},
		{[]string{"ns", "sub", "Foo"}, []string{"ns", "sub"}, "Foo"},
	}
	for _, tt := range tests {
		got := NewQualifiedName(tt.path)
		if got.Leaf != tt.wantLeaf {
			t.Errorf("NewQualifiedName(%v).Leaf = %q, want %q", tt.path, got.Leaf, tt.wantLeaf)
		}
		if len(got.Namespaces) != len(tt.wantNs) {
			t.Errorf("NewQualifiedName(%v).Namespaces = %v, want %v", tt.path, got.Namespaces, tt.wantNs)
		}
	}
}

func TestQualifiedNameCppName(t *testing.T) {
	q := NewQualifiedName([]string{"ns", "sub", "Foo"})
	if got := q.CppName(); got != "ns::sub::Foo" {
		t.Errorf("CppName() = %q, want %q", got, "ns::sub::Foo")
	}
	leaf := NewQualifiedName([]string{"Foo"})
	if got := leaf.CppName(); got != "Foo" {
		t.Errorf("CppName() = %q, want %q", got, "Foo")
	}
}

func TestQualifiedNameCName(t *testing.T) {
	q := NewQualifiedName([]string{"ns", "sub", "Foo"})
	if got := q.CName(nil); got != "ns_sub_Foo" {
		t.Errorf("CName(nil) = %q, want %q", got, "ns_sub_Foo")
	}

	reg := NewNamespaceRegistry()
	if err := reg.Add("ns", "renamed"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := q.CName(reg); got != "renamed_sub_Foo" {
		t.Errorf("CName(reg) = %q, want %q", got, "renamed_sub_Foo")
	}
}

func TestQualifiedNameKeyIsRenameIndependent(t *testing.T) {
	q := NewQualifiedName([]string{"ns", "Foo"})
	reg := NewNamespaceRegistry()
	if err := reg.Add("ns", "renamed"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := q.Key()
	_ = q.CName(reg)
	after := q.Key()
	if before != after {
		t.Errorf("Key() changed across rename application: %q != %q", before, after)
	}
	if after != "ns::Foo" {
		t.Errorf("Key() = %q, want original cpp name %q", after, "ns::Foo")
	}
}

func TestQualifiedNameWithLeaf(t *testing.T) {
	q := NewQualifiedName([]string{"ns", "Foo"})
	renamed := q.WithLeaf("Bar")
	if renamed.Leaf != "Bar" {
		t.Errorf("WithLeaf Leaf = %q, want %q", renamed.Leaf, "Bar")
	}
	if renamed.CppName() != "ns::Bar" {
		t.Errorf("WithLeaf CppName = %q, want %q", renamed.CppName(), "ns::Bar")
	}
	if q.Leaf != "Foo" {
		t.Errorf("WithLeaf mutated receiver: q.Leaf = %q", q.Leaf)
	}
}

func TestQualifiedNameAppend(t *testing.T) {
	q := NewQualifiedName([]string{"ns", "Method"})
	appended := q.Append("Record")
	if got := appended.CppName(); got != "ns::Record::Method" {
		t.Errorf("Append CppName() = %q, want %q", got, "ns::Record::Method")
	}
	if len(q.Namespaces) != 1 {
		t.Errorf("Append mutated receiver namespaces: %v", q.Namespaces)
	}
}
