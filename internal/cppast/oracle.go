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


// Package cppast defines the boundary between cppmmgen and the C++ AST
// facility it depends on (spec §6, "AST Oracle contract"). The real facility
// is a C++ parser (clang LibTooling in the original implementation); this
// package never implements one. It only describes the shape of the
// declarations an Oracle must produce and the queries the core is allowed to
// make against them.
package cppast

// Decl is one declaration an Oracle surfaces to a pass. Every concrete decl
// kind below embeds Loc so callers can always recover the reporting file and
// qualified name without a type switch.
type Decl interface {
	Location() Loc
	QualifiedName() []string // enclosing namespace/record segments + leaf name
	Comment() string         // raw, unprocessed comment text attached to the decl
	Annotations() []string   // raw attribute-annotation strings, e.g. "cppmm:rename:foo"
}

// Loc is a declaration's source location as reported by the Oracle.
type Loc struct {
	File string
	Line int
}

// Builtin is the canonical spelling of a builtin type as the Oracle reports
// it. _Bool is reported as-is; the Type Translator is responsible for
// rewriting it to "bool" (spec §4.D.2).
type Builtin string

// QualType is the Oracle's view of a (possibly cv/ref/pointer qualified)
// C++ type. It is intentionally shallow: one level of pointer/reference is
// peeled per QualType, mirroring how the Type Translator recurses (§4.D.1).
type QualType struct {
	IsConst     bool
	IsPointer   bool
	IsReference bool

	IsBuiltin  bool
	Builtin    Builtin
	IsRecord   bool
	IsEnum     bool
	IsTemplate bool // is-specialization per Oracle's template inspection

	// RecordName/EnumName is the qualified name of the referenced record or
	// enum when IsRecord/IsEnum is set and the type is not itself dependent.
	RecordName []string
	EnumName   []string

	// TemplateParmIndex is set when the Oracle classifies this type as a
	// TemplateTypeParm; Index is its position in the enclosing template's
	// parameter list.
	IsTemplateParm    bool
	TemplateParmIndex int
	TemplateParmName  string

	// TemplateName/TemplateArgs describe a class-template specialization,
	// either concrete (IsTemplate, args fully resolved) or dependent
	// (args may themselves be TemplateParm types, resolved by the caller's
	// environment — spec §4.D.6).
	TemplateName []string
	TemplateArgs []QualType

	// Pointee is set when IsPointer or IsReference; recursing into it is
	// how the Type Translator strips one indirection level at a time.
	Pointee *QualType
}

// Param is one function/method parameter as seen by the Oracle. Name may be
// empty — the Oracle is not required to recover parameter names from the
// library header (spec §3 Param, §4.E "Parameter naming").
type Param struct {
	Name string
	Type QualType
}

// RecordDecl is a class/struct declaration found while walking library
// headers (Pass 2) or binding sources (Pass 1).
type RecordDecl struct {
	Loc
	Names       []string
	RawComment  string
	RawAttrs    []string
	IsTemplate  bool // declared as (or is) a class template
	IsDependent bool // the primary template itself, not a specialization
	TemplateParms []string // primary template's formal parameter names, in order
	Methods     []MethodDecl
	Fields      []FieldDecl
	SizeBits    int // only valid when !IsTemplate; 0 if unknown
	AlignBits   int

	// HasVisibleDestructor/DestructorDeleted describe the class's
	// destructor independent of whether it also appears in Methods,
	// since a defaulted destructor may not be surfaced as an explicit
	// declaration by the Oracle.
	HasVisibleDestructor bool
	DestructorDeleted    bool
}

func (d RecordDecl) Location() Loc          { return d.Loc }
func (d RecordDecl) QualifiedName() []string { return d.Names }
func (d RecordDecl) Comment() string        { return d.RawComment }
func (d RecordDecl) Annotations() []string  { return d.RawAttrs }

// FieldDecl is a non-static data member, used when assessing whether a
// record is plain-data for ValueType/OpaqueBytes (spec §3 invariants).
type FieldDecl struct {
	Name string
	Type QualType
}

// MethodDecl is a member function as seen by the Oracle.
type MethodDecl struct {
	Loc
	Names              []string
	RawComment         string
	RawAttrs           []string
	Params             []Param
	Return             QualType
	IsConst            bool
	IsStatic            bool
	IsConstructor      bool
	IsDestructor       bool
	IsCopyConstructor  bool
	IsCopyAssignment   bool
	IsDeleted          bool
	IsOperator         bool   // name starts with "operator"
	IsConversion       bool   // "operator <type>" with no operand
	OperatorSymbol     string // e.g. "+", "==", "[]"; empty for non-operators
	ConversionTarget   string // spelling of <type> for conversion operators
	OwnTemplateParms   []string
	TemplateEnvNamed   map[string]QualType // set when instantiated from a dependent record
}

func (d MethodDecl) Location() Loc          { return d.Loc }
func (d MethodDecl) QualifiedName() []string { return d.Names }
func (d MethodDecl) Comment() string        { return d.RawComment }
func (d MethodDecl) Annotations() []string  { return d.RawAttrs }

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Loc
	Names       []string
	RawComment  string
	RawAttrs    []string
	Enumerators []Enumerator
}

// Enumerator is one (name, value) pair of an enum.
type Enumerator struct {
	Name  string
	Value int64
}

func (d EnumDecl) Location() Loc          { return d.Loc }
func (d EnumDecl) QualifiedName() []string { return d.Names }
func (d EnumDecl) Comment() string        { return d.RawComment }
func (d EnumDecl) Annotations() []string  { return d.RawAttrs }

// FunctionDecl is a free function declaration (outside any record).
type FunctionDecl struct {
	Loc
	Names            []string
	RawComment       string
	RawAttrs         []string
	Params           []Param
	Return           QualType
	IsTemplate       bool
	TemplateParms    []string // primary template's formal parameter names, in order
	TemplateArgs     []QualType // set when this decl is itself a specialization
}

func (d FunctionDecl) Location() Loc          { return d.Loc }
func (d FunctionDecl) QualifiedName() []string { return d.Names }
func (d FunctionDecl) Comment() string        { return d.RawComment }
func (d FunctionDecl) Annotations() []string  { return d.RawAttrs }

// TypeAliasDecl is a `using` (or `typedef`) declaration. Pass 1 only cares
// about aliases whose target is a class-template specialization (spec §4.C).
type TypeAliasDecl struct {
	Loc
	Names      []string
	RawComment string
	RawAttrs   []string
	Target     QualType
}

func (d TypeAliasDecl) Location() Loc          { return d.Loc }
func (d TypeAliasDecl) QualifiedName() []string { return d.Names }
func (d TypeAliasDecl) Comment() string        { return d.RawComment }
func (d TypeAliasDecl) Annotations() []string  { return d.RawAttrs }

// TranslationUnit is everything an Oracle recovered from parsing one input
// file (a binding source in Pass 1, a library header reached transitively
// in Pass 2).
type TranslationUnit struct {
	Filename     string
	RawIncludes  []string // "#include ..." lines recovered verbatim, in order
	Records      []RecordDecl
	Enums        []EnumDecl
	Functions    []FunctionDecl
	TypeAliases  []TypeAliasDecl
}

// Oracle is the black-box AST facility the core depends on (spec §6). A
// real implementation wraps a C++ parser; cppmmgen never re-specifies one,
// per spec §1's explicit exclusion.
//
// ParseBindings parses the binding declaration sources (Pass 1 input): only
// declarations inside the sentinel namespace are meaningful, everything
// else is ignored by the caller.
//
// ParseLibrary parses the same sources' transitive includes (Pass 2 input):
// the real library declarations the binding sources merely re-declare.
//
// Implementations must never be asked for SizeBits/AlignBits of a
// dependent template or a specialization thereof (spec §6, "Any call that
// would crash on template metrics is not invoked").
type Oracle interface {
	ParseBindings(sources []string, extraIncludes []string) ([]TranslationUnit, error)
	ParseLibrary(sources []string, extraIncludes []string) ([]TranslationUnit, error)
}
