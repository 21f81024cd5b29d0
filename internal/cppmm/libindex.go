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

import "github.com/go-cppmm/cppmmgen/internal/cppast"

// libraryIndex indexes every declaration the Oracle found while parsing the
// library headers (Pass 2 input), keyed by cpp-qualified-name, so both the
// Matcher's top-level walk and the Type Translator's on-demand nested
// resolution (spec §4.D.4: "invoke Pass-2 record resolution on the
// underlying class declaration") can look a declaration up without
// re-walking the AST.
type libraryIndex struct {
	records   map[string]cppast.RecordDecl
	enums     map[string]cppast.EnumDecl
	functions map[string]cppast.FunctionDecl
	fileOf    map[string]string // cpp-qname -> filename it was found in
}

func buildLibraryIndex(units []cppast.TranslationUnit) *libraryIndex {
	idx := &libraryIndex{
		records:   make(map[string]cppast.RecordDecl),
		enums:     make(map[string]cppast.EnumDecl),
		functions: make(map[string]cppast.FunctionDecl),
		fileOf:    make(map[string]string),
	}
	for _, tu := range units {
		for _, r := range tu.Records {
			key := NewQualifiedName(r.Names).Key()
			if _, exists := idx.records[key]; !exists {
				idx.records[key] = r
				idx.fileOf[key] = tu.Filename
			}
		}
		for _, e := range tu.Enums {
			key := NewQualifiedName(e.Names).Key()
			if _, exists := idx.enums[key]; !exists {
				idx.enums[key] = e
				idx.fileOf[key] = tu.Filename
			}
		}
		for _, f := range tu.Functions {
			key := NewQualifiedName(f.Names).Key()
			if _, exists := idx.functions[key]; !exists {
				idx.functions[key] = f
				idx.fileOf[key] = tu.Filename
			}
		}
	}
	return idx
}
