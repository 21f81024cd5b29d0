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
	"strings"

	"github.com/go-cppmm/cppmmgen/internal/cppast"
	"github.com/golang/glog"
)

// TemplateEnv carries the substitution environment a translation runs
// under: an ordered vector of concrete types for positional TemplateTypeParm
// lookup, plus a named map keyed by the formal parameter name (spec §4.D).
type TemplateEnv struct {
	Positional []QualifiedType
	Named      map[string]QualifiedType
}

func (e TemplateEnv) at(i int) (QualifiedType, bool) {
	if i < 0 || i >= len(e.Positional) {
		return QualifiedType{}, false
	}
	return e.Positional[i], true
}

func (e TemplateEnv) byName(name string) (QualifiedType, bool) {
	qt, ok := e.Named[name]
	return qt, ok
}

// translate is the Type Translator (spec §4.D): a recursive function from a
// qualified C++ type plus a template environment to a qualified C type with
// cast/ownership flags. It is a method on Resolver because record and
// dependent-specialization resolution (dispatch steps 4 and 6) invoke
// Pass-2 record resolution on demand (spec §5 reentrancy).
func (rv *Resolver) translate(q cppast.QualType, env TemplateEnv, file string) (QualifiedType, error) {
	// 1. Pointer/reference outer wrapper.
	if q.IsPointer || q.IsReference {
		inner, err := rv.translate(*q.Pointee, env, file)
		if err != nil {
			return QualifiedType{}, err
		}
		inner.IsPointer = q.IsPointer
		inner.IsReference = q.IsReference
		inner.IsConst = inner.IsConst || q.IsConst
		return inner, nil
	}

	// 2. Builtin.
	if q.IsBuiltin {
		spelling := string(q.Builtin)
		if spelling == "_Bool" {
			spelling = "bool"
		}
		return QualifiedType{
			Type:    Type{Kind: TypePrimitive, Primitive: spelling},
			IsConst: q.IsConst,
		}, nil
	}

	// 3. Template type parameter.
	if q.IsTemplateParm {
		if qt, ok := env.at(q.TemplateParmIndex); ok {
			qt.IsConst = qt.IsConst || q.IsConst
			return qt, nil
		}
		if qt, ok := env.byName(q.TemplateParmName); ok {
			qt.IsConst = qt.IsConst || q.IsConst
			return qt, nil
		}
		glog.Warningf("%s: unresolved template parameter %q (index %d), no substitution in environment",
			file, q.TemplateParmName, q.TemplateParmIndex)
		return UnhandledType, nil
	}

	// 4. Record type, including the well-known standard-library templates.
	if q.IsTemplate {
		if kind := stdlibTemplateKind(q.TemplateName); kind != "" {
			return rv.translateStdlibTemplate(kind, q, env, file)
		}
		// Not a recognized standard-library template: treated as a
		// dependent template specialization (dispatch step 6 below).
		return rv.translateDependentSpecialization(q, env, file)
	}
	if q.IsRecord {
		key := NewQualifiedName(q.RecordName).Key()
		rec, err := rv.resolveRecordByKey(key, file)
		if err != nil {
			return QualifiedType{}, err
		}
		if rec == nil {
			glog.V(1).Infof("%s: record %s not exported, leaving unhandled", file, key)
			return UnhandledType, nil
		}
		return QualifiedType{
			Type:         Type{Kind: TypeRecord, Key: key},
			IsConst:      q.IsConst,
			RequiresCast: true,
		}, nil
	}

	// 5. Enum.
	if q.IsEnum {
		key := NewQualifiedName(q.EnumName).Key()
		if _, ok := rv.resolveEnumByKey(key, file); !ok {
			glog.V(1).Infof("%s: enum %s not exported, leaving unhandled", file, key)
			return UnhandledType, nil
		}
		return QualifiedType{
			Type:    Type{Kind: TypeEnum, Key: key},
			IsConst: q.IsConst,
		}, nil
	}

	// 7. Otherwise: log and produce the sentinel.
	glog.Warningf("%s: type translation fell through every dispatch rule, marking UNHANDLED", file)
	return UnhandledType, nil
}

// stdlibTemplateKind classifies a template name path as one of the
// standard-library templates the Type Translator special-cases (spec
// §4.D.4), or "" if it is not one of them.
func stdlibTemplateKind(path []string) string {
	if len(path) == 0 {
		return ""
	}
	switch path[len(path)-1] {
	case "unique_ptr":
		return "unique_ptr"
	case "vector":
		return "vector"
	case "basic_string", "string":
		return "basic_string"
	case "basic_string_view", "string_view":
		return "string_view"
	default:
		return ""
	}
}

func (rv *Resolver) translateStdlibTemplate(kind string, q cppast.QualType, env TemplateEnv, file string) (QualifiedType, error) {
	switch kind {
	case "unique_ptr":
		if len(q.TemplateArgs) == 0 {
			return UnhandledType, nil
		}
		inner, err := rv.translate(q.TemplateArgs[0], env, file)
		if err != nil {
			return QualifiedType{}, err
		}
		inner.IsUniquePtr = true
		inner.IsConst = inner.IsConst || q.IsConst
		return inner, nil

	case "vector":
		if len(q.TemplateArgs) == 0 {
			return UnhandledType, nil
		}
		elem, err := rv.translate(q.TemplateArgs[0], env, file)
		if err != nil {
			return QualifiedType{}, err
		}
		elemBase := elementCBaseName(rv.sess, elem)
		v := rv.sess.Output.EnsureVector(elemBase, elem)
		return QualifiedType{
			Type:         Type{Kind: TypeVector, Primitive: v.CName, Key: elemBase},
			IsConst:      q.IsConst,
			RequiresCast: true,
		}, nil

	case "basic_string":
		return QualifiedType{
			Type:         Type{Kind: TypePrimitive, Primitive: "cppmm_string"},
			IsConst:      q.IsConst,
			RequiresCast: true,
		}, nil

	case "string_view":
		return QualifiedType{
			Type:         Type{Kind: TypePrimitive, Primitive: "cppmm_string_view"},
			IsConst:      q.IsConst,
			RequiresCast: false,
		}, nil
	}
	return UnhandledType, nil
}

// elementCBaseName derives the unqualified C base name EnsureVector
// deduplicates and builds "<base>_vector" from (spec §8 property 5:
// "c_qname == element.c_qname + \"_vector\"", basic_string collapsing to
// "cppmm_string").
func elementCBaseName(sess *Session, qt QualifiedType) string {
	switch qt.Type.Kind {
	case TypeRecord:
		if rec, ok := sess.Output.Record(qt.Type.Key); ok {
			return rec.CName
		}
	case TypeEnum:
		if en, ok := sess.Output.Enum(qt.Type.Key); ok {
			return en.CName
		}
	case TypeVector:
		return qt.Type.Primitive
	}
	return qt.Type.Primitive
}

// translateDependentSpecialization implements dispatch step 6: a template
// name seen inside a dependent context, resolved by substituting its
// arguments through env and locating a matching ExportedSpecialization.
func (rv *Resolver) translateDependentSpecialization(q cppast.QualType, env TemplateEnv, file string) (QualifiedType, error) {
	baseKey := NewQualifiedName(q.TemplateName).Key()
	exp, ok := rv.sess.Exports.Record(baseKey)
	if !ok {
		glog.Warningf("%s: dependent specialization of unexported template %s, marking UNHANDLED", file, baseKey)
		return UnhandledType, nil
	}

	args := make([]QualifiedType, 0, len(q.TemplateArgs))
	for _, a := range q.TemplateArgs {
		qt, err := rv.translate(a, env, file)
		if err != nil {
			return QualifiedType{}, err
		}
		args = append(args, qt)
	}

	skey := specializationKey(baseKey, args)
	if _, ok := rv.sess.Output.Record(skey); ok {
		return QualifiedType{Type: Type{Kind: TypeRecord, Key: skey}, IsConst: q.IsConst, RequiresCast: true}, nil
	}

	specs := rv.sess.Exports.Specializations(baseKey)
	var match *ExportedSpecialization
	for i := range specs {
		if specializationArgsEqual(specs[i].Args, args) {
			match = &specs[i]
			break
		}
	}
	if match == nil {
		glog.Warningf("%s: no registered specialization of %s matches the requested arguments, marking UNHANDLED",
			file, baseKey)
		return UnhandledType, nil
	}

	rd, ok := rv.idx.records[baseKey]
	if !ok {
		glog.Warningf("%s: specialization base %s has no library declaration, marking UNHANDLED", file, baseKey)
		return UnhandledType, nil
	}
	if _, err := rv.materializeSpecialization(rd, exp, *match, file); err != nil {
		return QualifiedType{}, err
	}
	return QualifiedType{Type: Type{Kind: TypeRecord, Key: skey}, IsConst: q.IsConst, RequiresCast: true}, nil
}

func specializationArgsEqual(a, b []QualifiedType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if qualifiedTypeSpelling(a[i]) != qualifiedTypeSpelling(b[i]) {
			return false
		}
	}
	return true
}

// specializationKey builds the output registry key for one concrete
// instantiation of a dependent record, e.g. "ns::base_vec<float,3>" (spec
// §8 scenario 6: "exactly one materialized Record keyed by base_vec<float,3>").
func specializationKey(baseKey string, args []QualifiedType) string {
	var b strings.Builder
	b.WriteString(baseKey)
	b.WriteString("<")
	for i, a := range args {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(qualifiedTypeSpelling(a))
	}
	b.WriteString(">")
	return b.String()
}

func qualifiedTypeSpelling(q QualifiedType) string {
	var b strings.Builder
	if q.IsConst {
		b.WriteString("const ")
	}
	if q.Type.Kind == TypePrimitive {
		b.WriteString(q.Type.Primitive)
	} else {
		b.WriteString(q.Type.Key)
	}
	if q.IsPointer {
		b.WriteString("*")
	}
	if q.IsReference {
		b.WriteString("&")
	}
	return b.String()
}
