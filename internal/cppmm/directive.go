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

// DirectiveKind tags an AttrDirective's variant (spec §3 AttrDirective).
type DirectiveKind int

const (
	// DirIgnore marks a declaration as matched but not emitted.
	DirIgnore DirectiveKind = iota
	// DirRename overrides the emitted C name.
	DirRename
	// DirManual marks a declaration as matched, not emitted, and routed to
	// the (out of scope, spec §1) manual-code pipeline.
	DirManual
	// DirValueType selects RecordKind ValueType.
	DirValueType
	// DirOpaqueBytes selects RecordKind OpaqueBytes.
	DirOpaqueBytes
	// DirOpaquePtr selects RecordKind OpaquePtr (also the default).
	DirOpaquePtr
)

// AttrDirective is one parsed "cppmm:<verb>[:<arg>]" annotation (spec §3,
// §4.A). NewName/Symbol hold the verb's argument when present.
type AttrDirective struct {
	Kind    DirectiveKind
	NewName string // DirRename
	Symbol  string // DirManual
}

// Directives is the composed set of directives attached to one declaration.
// Multiple directives compose per spec §4.A: rename overrides the c-name;
// ignore/manual both suppress emission but still count as a match.
type Directives struct {
	Ignore    bool
	Manual    bool
	ManualSym string
	RenameTo  string // empty if no rename directive present
	Kind      RecordKind
	HasKind   bool // true iff a valuetype/opaqueptr/opaquebytes directive was seen
}

// Suppressed reports whether the declaration should be matched but not
// emitted (spec §4.A: ignore or manual).
func (d Directives) Suppressed() bool { return d.Ignore || d.Manual }
