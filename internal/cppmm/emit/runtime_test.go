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
	"strings"
	"testing"
)

func TestRenderRuntimeHeaderDeclaresStringTypes(t *testing.T) {
	got := renderRuntimeHeader()
	for _, want := range []string{"cppmm_string", "cppmm_string_view", "cppmm_string_free", "extern \"C\""} {
		if !strings.Contains(got, want) {
			t.Errorf("renderRuntimeHeader missing %q in:\n%s", want, got)
		}
	}
}
