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

// Session bundles the registries a cppmmgen run threads through both
// passes (spec §9: "bundle these into a single Session context passed by
// reference through Pass 1 and Pass 2; this removes hidden dependencies and
// enables test-level isolation"), replacing the source's process-wide
// mutable globals.
//
// Namespaces is populated from configuration before Pass 1. Exports is
// filled once by Harvest and is read-only from then on (spec §3
// Lifecycles). Output grows monotonically during Resolve.
type Session struct {
	Namespaces *NamespaceRegistry
	Exports    *ExportRegistry
	Output     *OutputRegistry

	// Sentinel is the namespace Pass 1 filters declarations to (glossary:
	// "Sentinel namespace"). Defaults to DefaultSentinelNamespace.
	Sentinel string

	// WarnUnbound, when true, causes Resolve to accumulate a report of
	// every rejected (unmatched) method signature for the end-of-run
	// summary described in spec §7.
	WarnUnbound bool

	rejected []RejectedMethod
}

// RejectedMethod is one library method the Matcher saw but could not pair
// with an exported declaration (ExportedRecord.RejectedSigs, spec §3,
// §7 "Matcher aggregates rejected methods per record").
type RejectedMethod struct {
	RecordCpp string
	Sig       MethodSignature
}

// NewSession builds a Session with fresh, empty registries.
func NewSession() *Session {
	return &Session{
		Namespaces: NewNamespaceRegistry(),
		Exports:    NewExportRegistry(),
		Output:     NewOutputRegistry(),
		Sentinel:   DefaultSentinelNamespace,
	}
}

// FullCName joins qname's renamed namespace path with localName (spec §6
// Output layout: "the rename-aware underscore join of the full namespace
// path followed by the local c-name"). Specializations bypass this and use
// their type-alias's spelling verbatim instead (spec §6, §8 scenario 6).
func (s *Session) FullCName(qname QualifiedName, localName string) string {
	return qname.WithLeaf(localName).CName(s.Namespaces)
}

func (s *Session) recordRejected(recordCpp string, sig MethodSignature) {
	if !s.WarnUnbound {
		return
	}
	s.rejected = append(s.rejected, RejectedMethod{RecordCpp: recordCpp, Sig: sig})
}

// Rejected returns every rejected method accumulated so far. Empty unless
// WarnUnbound was set before Resolve ran.
func (s *Session) Rejected() []RejectedMethod { return s.rejected }
