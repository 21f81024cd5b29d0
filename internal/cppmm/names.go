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


// Package cppmm implements the binding-discovery, type-translation and
// matching core of cppmmgen: components A–E of spec §2. Component F (the C
// emitter) lives in the sibling emit package so that the output registry
// this package builds can be frozen and handed off to a stage that never
// mutates it (spec §5).
package cppmm

import "strings"

// QualifiedName is an ordered sequence of namespace segments plus a leaf
// identifier (spec §3). It supports joining with either "::" (C++ form) or
// "_" (C form) and per-segment renaming through a NamespaceRegistry.
type QualifiedName struct {
	Namespaces []string
	Leaf       string
}

// NewQualifiedName builds a QualifiedName from an Oracle-reported name path,
// where the last element is the leaf identifier.
func NewQualifiedName(path []string) QualifiedName {
	if len(path) == 0 {
		return QualifiedName{}
	}
	ns := make([]string, len(path)-1)
	copy(ns, path[:len(path)-1])
	return QualifiedName{Namespaces: ns, Leaf: path[len(path)-1]}
}

// CppName joins the qualified name in C++ form: A::B::leaf.
func (q QualifiedName) CppName() string {
	return joinName(q.Namespaces, q.Leaf, "::")
}

// CName joins the qualified name in C form: A_B_leaf, after applying reg's
// renames to every namespace segment (spec §4.B rename_all).
func (q QualifiedName) CName(reg *NamespaceRegistry) string {
	ns := q.Namespaces
	if reg != nil {
		ns = reg.RenameAll(ns)
	}
	return joinName(ns, q.Leaf, "_")
}

func joinName(namespaces []string, leaf, sep string) string {
	if len(namespaces) == 0 {
		return leaf
	}
	return strings.Join(namespaces, sep) + sep + leaf
}

// Key returns a stable, rename-independent identity for use as a map key in
// the Export/Output registries — always the original C++ qualified name,
// since matching against the library AST uses original names (spec §4.B).
func (q QualifiedName) Key() string { return q.CppName() }

// WithLeaf returns a copy of q with a different leaf identifier. Used when a
// directive renames a declaration (spec §4.A rename) without touching its
// enclosing namespace path.
func (q QualifiedName) WithLeaf(leaf string) QualifiedName {
	return QualifiedName{Namespaces: q.Namespaces, Leaf: leaf}
}

// Append returns a copy of q with an additional innermost namespace segment
// — used to build a method's qualified name from its owning record's C name
// (spec §3 Method: "Namespaces of a method include the owning record's
// c-name as the innermost segment").
func (q QualifiedName) Append(segment string) QualifiedName {
	ns := make([]string, 0, len(q.Namespaces)+1)
	ns = append(ns, q.Namespaces...)
	ns = append(ns, segment)
	return QualifiedName{Namespaces: ns, Leaf: q.Leaf}
}
