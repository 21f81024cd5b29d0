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

func TestNewSessionDefaults(t *testing.T) {
	sess := NewSession()
	if sess.Sentinel != DefaultSentinelNamespace {
		t.Errorf("Sentinel = %q, want %q", sess.Sentinel, DefaultSentinelNamespace)
	}
	if sess.Namespaces == nil || sess.Exports == nil || sess.Output == nil {
		t.Fatal("NewSession should populate all three registries")
	}
}

func TestSessionFullCName(t *testing.T) {
	sess := NewSession()
	if err := sess.Namespaces.Add("detail", "impl"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	qname := NewQualifiedName([]string{"detail", "Widget"})
	if got := sess.FullCName(qname, "widget_t"); got != "impl_widget_t" {
		t.Errorf("FullCName = %q, want %q", got, "impl_widget_t")
	}
}

func TestSessionRejectedRequiresWarnUnbound(t *testing.T) {
	sess := NewSession()
	sig := MethodSignature{Name: "foo"}
	sess.recordRejected("ns::Foo", sig)
	if len(sess.Rejected()) != 0 {
		t.Error("recordRejected should be a no-op when WarnUnbound is false")
	}

	sess.WarnUnbound = true
	sess.recordRejected("ns::Foo", sig)
	got := sess.Rejected()
	if len(got) != 1 || got[0].RecordCpp != "ns::Foo" || got[0].Sig != sig {
		t.Errorf("Rejected() = %v, want one entry for ns::Foo/%v", got, sig)
	}
}
