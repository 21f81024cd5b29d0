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

// RecordKind is the C representation chosen for a record (spec §3).
type RecordKind int

const (
	// RecordOpaquePtr: forward-declared handle, C++ object heap-owned.
	RecordOpaquePtr RecordKind = iota
	// RecordOpaqueBytes: fixed-size aligned byte array, placement-constructed.
	RecordOpaqueBytes
	// RecordValueType: transparent struct mirroring C++ field layout.
	RecordValueType
)

func (k RecordKind) String() string {
	switch k {
	case RecordOpaquePtr:
		return "opaqueptr"
	case RecordOpaqueBytes:
		return "opaquebytes"
	case RecordValueType:
		return "valuetype"
	default:
		return "unknown"
	}
}

// TypeKind tags which lattice member a Type refers to.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeRecord
	TypeEnum
	TypeVector
	// TypeUnhandled is the §4.D.7/§7 "UNHANDLED" sentinel: emission can
	// fail loudly later rather than corrupting output silently.
	TypeUnhandled
)

// Type is a named primitive or a back-reference to a Record, Enum, or
// Vector entry (spec §3). Record and enum Types carry only the registry Key
// of the referenced entry; the emitter looks the entry up by Key to spell
// its C name.
type Type struct {
	Kind TypeKind

	// Primitive is the canonical spelling for TypePrimitive (e.g. "int",
	// "bool", "cppmm_string" for basic_string, or a template-parameter's
	// substituted spelling).
	Primitive string

	// Key is the key into the owning registry: the cpp-qualified name for
	// TypeRecord/TypeEnum, the element's C base name for TypeVector (whose
	// Primitive holds the vector's C name).
	Key string
}

// QualifiedType is a Type plus the flags the Type Translator attaches
// (spec §3 QualifiedType).
type QualifiedType struct {
	Type Type

	IsConst     bool
	IsPointer   bool
	IsReference bool

	// IsUniquePtr marks an owning indirection translated from
	// std::unique_ptr<T> (spec §4.D.4).
	IsUniquePtr bool

	// RequiresCast is true when the C handle differs from the C++ type
	// and the emitter must bridge via reinterpret_cast at the boundary
	// (spec §3 QualifiedType, §4.F).
	RequiresCast bool
}

// Unhandled reports whether translation bottomed out at the §4.D.7/§7
// sentinel.
func (q QualifiedType) Unhandled() bool { return q.Type.Kind == TypeUnhandled }

// UnhandledType is the shared sentinel value produced by the Type
// Translator on non-fatal unknowns (spec §4.D.7).
var UnhandledType = QualifiedType{Type: Type{Kind: TypeUnhandled, Primitive: "UNHANDLED"}}

// Param is a function/method parameter: a name plus a QualifiedType (spec
// §3). The name may originate from the library header, from the binding
// re-declaration, or be synthesized as _param_NN (spec §4.E).
type Param struct {
	Name string
	Type QualifiedType
}
