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

func TestDefaultOperatorName(t *testing.T) {
	tests := []struct {
		symbol  string
		isUnary bool
		want    string
	}{
		{"+", false, "op_add"},
		{"==", false, "op_eq"},
		{"[]", false, "op_index"},
		{"*", false, "op_mul"},
		{"*", true, "op_deref"},
		{"?", false, "op_unknown"},
	}
	for _, tt := range tests {
		if got := defaultOperatorName(tt.symbol, tt.isUnary); got != tt.want {
			t.Errorf("defaultOperatorName(%q, %v) = %q, want %q", tt.symbol, tt.isUnary, got, tt.want)
		}
	}
}

func TestDefaultConversionName(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"bool", "op_to_bool"},
		{"std::string", "op_to_std_string"},
	}
	for _, tt := range tests {
		if got := defaultConversionName(tt.target); got != tt.want {
			t.Errorf("defaultConversionName(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestSanitizeTypeSpelling(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bool", "bool"},
		{"std::string", "std_string"},
		{"const Foo *", "const_Foo_"},
	}
	for _, tt := range tests {
		if got := sanitizeTypeSpelling(tt.in); got != tt.want {
			t.Errorf("sanitizeTypeSpelling(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
