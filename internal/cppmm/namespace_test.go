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
	"reflect"
	"testing"
)

func TestNamespaceRegistryAddAndRename(t *testing.T) {
	reg := NewNamespaceRegistry()
	if err := reg.Add("detail", "impl"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := reg.RenameNamespace("detail"); got != "impl" {
		t.Errorf("RenameNamespace(detail) = %q, want %q", got, "impl")
	}
	if got := reg.RenameNamespace("other"); got != "other" {
		t.Errorf("RenameNamespace(other) = %q, want unchanged %q", got, "other")
	}
}

func TestNamespaceRegistryAddConflict(t *testing.T) {
	reg := NewNamespaceRegistry()
	if err := reg.Add("detail", "impl"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := reg.Add("detail", "other"); err == nil {
		t.Error("Add with conflicting output expected an error, got nil")
	}
	// Re-adding the same pair is not a conflict.
	if err := reg.Add("detail", "impl"); err != nil {
		t.Errorf("Add with identical pair returned an error: %v", err)
	}
}

func TestNamespaceRegistryRenameAll(t *testing.T) {
	reg := NewNamespaceRegistry()
	if err := reg.Add("detail", "impl"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got := reg.RenameAll([]string{"outer", "detail", "inner"})
	want := []string{"outer", "impl", "inner"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenameAll = %v, want %v", got, want)
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix(nil, "::"); got != "" {
		t.Errorf("Prefix(nil) = %q, want empty", got)
	}
	if got := Prefix([]string{"a", "b"}, "::"); got != "a::b::" {
		t.Errorf("Prefix = %q, want %q", got, "a::b::")
	}
}

func TestParseRenameFlag(t *testing.T) {
	tests := []struct {
		in         string
		wantFrom   string
		wantTo     string
		wantErr    bool
	}{
		{"from=to", "from", "to", false},
		{"a::b=c::d", "a::b", "c::d", false},
		{"noequals", "", "", true},
		{"=to", "", "", true},
		{"from=", "", "", true},
	}
	for _, tt := range tests {
		from, to, err := ParseRenameFlag(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRenameFlag(%q) expected error, got nil", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRenameFlag(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if from != tt.wantFrom || to != tt.wantTo {
			t.Errorf("ParseRenameFlag(%q) = (%q, %q), want (%q, %q)", tt.in, from, to, tt.wantFrom, tt.wantTo)
		}
	}
}
