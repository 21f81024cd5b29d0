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
	"fmt"

	"github.com/go-cppmm/cppmmgen/internal/cppast"
	"github.com/golang/glog"
)

// Resolver runs Pass 2 (spec §4.E): it walks the library declarations,
// pairs each with its Export Registry entry, invokes the Type Translator
// for every signature, and fills sess.Output. idx lets both the top-level
// walk and the Type Translator's on-demand nested resolution look a library
// declaration up by cpp-qualified-name without re-walking the AST.
type Resolver struct {
	sess *Session
	idx  *libraryIndex
}

// Resolve runs Pass 2 over the library translation units the AST Oracle
// produced. Pass 1 (Harvest) must have already populated sess.Exports.
func Resolve(sess *Session, units []cppast.TranslationUnit) error {
	rv := &Resolver{sess: sess, idx: buildLibraryIndex(units)}
	for _, tu := range units {
		for _, rd := range tu.Records {
			if err := rv.resolveTopLevelRecord(rd, tu.Filename); err != nil {
				return err
			}
		}
		for _, ed := range tu.Enums {
			rv.resolveTopLevelEnum(ed, tu.Filename)
		}
		for _, fd := range tu.Functions {
			if err := rv.resolveTopLevelFunction(fd, tu.Filename); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rv *Resolver) resolveTopLevelRecord(rd cppast.RecordDecl, file string) error {
	key := NewQualifiedName(rd.Names).Key()
	exp, ok := rv.sess.Exports.Record(key)
	if !ok {
		glog.V(2).Infof("%s: library record %s not in export registry, skipping", file, key)
		return nil
	}
	if exp.Directive.Suppressed() {
		glog.V(2).Infof("%s: record %s suppressed by directive, skipping", file, key)
		return nil
	}

	if rd.IsDependent {
		for _, sp := range rv.sess.Exports.Specializations(key) {
			if _, err := rv.materializeSpecialization(rd, exp, sp, file); err != nil {
				return err
			}
		}
		return nil
	}
	if rd.IsTemplate {
		// A concrete specialization found directly in the library is
		// expected to have already been materialized through its
		// type-alias path (spec §4.E).
		skey := key
		if _, ok := rv.sess.Output.Record(skey); !ok {
			glog.Errorf("%s: concrete specialization %s found in library but never requested via a type alias", file, key)
		}
		return nil
	}

	_, err := rv.resolveRecordByKey(key, file)
	return err
}

// resolveRecordByKey materializes a non-dependent, non-template record by
// cpp-qualified-name, or returns the existing entry if Pass 2 (or an
// earlier recursive call from the Type Translator) already did. This is
// the reentrancy point spec §5 describes: it inserts a placeholder before
// walking members so a cycle back to key finds the placeholder instead of
// recursing forever.
func (rv *Resolver) resolveRecordByKey(key, file string) (*Record, error) {
	if existing, ok := rv.sess.Output.Record(key); ok {
		return existing, nil
	}
	rd, ok := rv.idx.records[key]
	if !ok {
		return nil, nil
	}
	exp, ok := rv.sess.Exports.Record(key)
	if !ok {
		return nil, nil
	}
	if exp.Directive.Suppressed() {
		return nil, nil
	}
	if rd.IsDependent || rd.IsTemplate {
		// Reached only through a plain (non-template) QualType naming a
		// templated record directly, which the Oracle should not produce;
		// treat conservatively as unresolved rather than guessing an
		// instantiation.
		return nil, nil
	}

	recFile := file
	if f, ok := rv.idx.fileOf[key]; ok {
		recFile = f
	}
	fullName := rv.sess.FullCName(exp.CppName, exp.CName)
	placeholder, fresh := rv.sess.Output.RecordPlaceholder(key, fullName, exp.Kind, exp.CppName, recFile)
	if !fresh {
		return placeholder, nil
	}
	defer placeholder.Finish()

	if exp.Kind == RecordOpaqueBytes {
		placeholder.HasSize = true
		placeholder.SizeBits = rd.SizeBits
		placeholder.AlignBits = rd.AlignBits
	} else {
		placeholder.HasSize = rd.SizeBits > 0
		placeholder.SizeBits = rd.SizeBits
		placeholder.AlignBits = rd.AlignBits
	}

	if exp.Kind == RecordValueType {
		if err := rv.fillValueFields(rd, placeholder, TemplateEnv{}, file); err != nil {
			return nil, err
		}
	}
	rv.walkMethods(rd, exp, placeholder, TemplateEnv{}, file)
	synthesizeDestructor(rd, placeholder)
	return placeholder, nil
}

// synthesizeDestructor supplements the binding source: every OpaquePtr
// record with a visible, non-deleted destructor gets a "<CName>_dtor" even
// if the author never re-declared one, since heap-owned handles are
// useless without a release function. ValueType and OpaqueBytes records
// are caller-owned storage and never get one.
func synthesizeDestructor(rd cppast.RecordDecl, rec *Record) {
	if rec.Kind != RecordOpaquePtr {
		return
	}
	if !rd.HasVisibleDestructor || rd.DestructorDeleted {
		return
	}
	local := "dtor"
	cname := rec.CName + "_" + local
	if _, exists := rec.Methods[local]; exists {
		return
	}
	rec.AddMethod(local, &Method{
		Name:         rec.CppName.Append(rec.CName).WithLeaf(local),
		CName:        cname,
		CppLeaf:      "~" + rec.CppName.Leaf,
		IsDestructor: true,
	})
}

// materializeSpecialization resolves one ExportedSpecialization of a
// dependent record (spec §4.E "Method monomorphization"): it replays the
// member walk using the specialization's template environment so every
// method signature and ValueType field is translated against concrete
// types, keyed by specializationKey rather than the primary template's key.
func (rv *Resolver) materializeSpecialization(rd cppast.RecordDecl, exp *ExportedRecord, sp ExportedSpecialization, file string) (*Record, error) {
	baseKey := exp.CppName.Key()
	skey := specializationKey(baseKey, sp.Args)

	placeholder, fresh := rv.sess.Output.RecordPlaceholder(skey, sp.Alias, exp.Kind, exp.CppName.WithLeaf(sp.Alias), file)
	if !fresh {
		return placeholder, nil
	}
	defer placeholder.Finish()

	if exp.Kind == RecordOpaqueBytes {
		return nil, ErrOpaqueBytesSpecialization(fmt.Sprintf("%s<%s>", exp.CppName.CppName(), sp.Alias))
	}

	placeholder.TemplateArgs = sp.Args
	env := TemplateEnv{Positional: sp.Args, Named: sp.NamedArgs}

	if exp.Kind == RecordValueType {
		if err := rv.fillValueFields(rd, placeholder, env, file); err != nil {
			return nil, err
		}
	}
	rv.walkMethods(rd, exp, placeholder, env, file)
	synthesizeDestructor(rd, placeholder)
	return placeholder, nil
}

func (rv *Resolver) fillValueFields(rd cppast.RecordDecl, rec *Record, env TemplateEnv, file string) error {
	for _, f := range rd.Fields {
		qt, err := rv.translate(f.Type, env, file)
		if err != nil {
			return err
		}
		if qt.Unhandled() || !rv.fieldIsPlainData(qt) {
			glog.Errorf("%s: valuetype %s has non-plain-data field %q, record will not translate cleanly",
				file, rec.CppName.CppName(), f.Name)
			continue
		}
		rec.Fields = append(rec.Fields, RecordField{Name: f.Name, Type: qt})
	}
	return nil
}

// fieldIsPlainData enforces spec §3's ValueType invariant: every field must
// be a primitive or another ValueType record (spec §8 property 1).
func (rv *Resolver) fieldIsPlainData(qt QualifiedType) bool {
	if qt.IsPointer || qt.IsReference || qt.IsUniquePtr {
		return false
	}
	switch qt.Type.Kind {
	case TypePrimitive:
		return true
	case TypeRecord:
		nested, ok := rv.sess.Output.Record(qt.Type.Key)
		return ok && nested.Kind == RecordValueType
	default:
		return false
	}
}

func (rv *Resolver) walkMethods(rd cppast.RecordDecl, exp *ExportedRecord, rec *Record, env TemplateEnv, file string) {
	for _, md := range rd.Methods {
		if exp.IsDependent && len(md.OwnTemplateParms) > 0 {
			glog.Warningf("nested function template on dependent record %s: not bound, partial "+
				"specializations on bindings cannot be detected", exp.CppName.CppName())
			continue
		}
		sig := methodSigFromOracleDecl(leafMethodName(md), md.Params, md.IsConst, md.IsStatic)
		em, found := exp.FindMethod(sig)
		if !found {
			exp.RejectedSigs = append(exp.RejectedSigs, sig)
			rv.sess.recordRejected(exp.CppName.CppName(), sig)
			continue
		}
		if em.Directive.Suppressed() {
			continue
		}

		params := make([]Param, 0, len(md.Params))
		for i, p := range md.Params {
			qt, err := rv.translate(p.Type, env, file)
			if err != nil {
				glog.Errorf("%s: %s: %v", file, exp.CppName.CppName(), err)
				continue
			}
			name := p.Name
			if name == "" {
				name = fmt.Sprintf("_param_%d", i)
			}
			if (md.IsCopyConstructor || md.IsCopyAssignment) && i == 0 {
				name = "other"
			}
			params = append(params, Param{Name: name, Type: qt})
		}
		ret, err := rv.translate(md.Return, env, file)
		if err != nil {
			glog.Errorf("%s: %s: %v", file, exp.CppName.CppName(), err)
			continue
		}

		m := &Method{
			Name:              rec.CppName.Append(rec.CName).WithLeaf(em.CName),
			CName:             rec.CName + "_" + em.CName,
			CppLeaf:           em.Name,
			Params:            params,
			Return:            ret,
			IsConst:           md.IsConst,
			IsStatic:          md.IsStatic,
			IsConstructor:     md.IsConstructor,
			IsCopyConstructor: md.IsCopyConstructor,
			IsCopyAssignment:  md.IsCopyAssignment,
			IsOperator:        md.IsOperator,
			IsConversionOp:    md.IsConversion,
			OperatorSymbol:    md.OperatorSymbol,
		}
		if !rec.AddMethod(em.CName, m) {
			glog.Errorf("%s: two methods of %s both resolve to c-name %q; add a rename directive to disambiguate",
				file, exp.CppName.CppName(), em.CName)
		}
	}
}

func (rv *Resolver) resolveTopLevelEnum(ed cppast.EnumDecl, file string) {
	key := NewQualifiedName(ed.Names).Key()
	rv.resolveEnumByKey(key, file)
}

func (rv *Resolver) resolveEnumByKey(key, file string) (*Enum, bool) {
	if existing, ok := rv.sess.Output.Enum(key); ok {
		return existing, true
	}
	ed, ok := rv.idx.enums[key]
	if !ok {
		return nil, false
	}
	exp, ok := rv.sess.Exports.Enum(key)
	if !ok {
		glog.V(2).Infof("%s: library enum %s not in export registry, skipping", file, key)
		return nil, false
	}
	e := &Enum{CppName: exp.CppName, CName: rv.sess.FullCName(exp.CppName, exp.CName)}
	for _, v := range ed.Enumerators {
		e.Enumerators = append(e.Enumerators, EnumValue{Name: v.Name, Value: v.Value})
	}
	recFile := file
	if f, ok := rv.idx.fileOf[key]; ok {
		recFile = f
	}
	return rv.sess.Output.AddEnum(key, e, recFile), true
}

func (rv *Resolver) resolveTopLevelFunction(fd cppast.FunctionDecl, file string) error {
	key := NewQualifiedName(fd.Names).Key()
	exp, ok := rv.sess.Exports.Function(key)
	if !ok {
		glog.V(2).Infof("%s: library function %s not in export registry, skipping", file, key)
		return nil
	}
	if exp.Directive.Suppressed() {
		return nil
	}

	if exp.IsDependent {
		for _, sp := range exp.Specializations {
			if err := rv.materializeFunction(fd, exp, sp, file); err != nil {
				return err
			}
		}
		return nil
	}
	return rv.materializeFunction(fd, exp, ExportedSpecialization{}, file)
}

func (rv *Resolver) materializeFunction(fd cppast.FunctionDecl, exp *ExportedFunction, sp ExportedSpecialization, file string) error {
	env := TemplateEnv{Positional: sp.Args, Named: sp.NamedArgs}
	key := exp.CppName.Key()
	cname := rv.sess.FullCName(exp.CppName, exp.CName)
	if sp.Alias != "" {
		cname = sp.Alias
		key = specializationKey(key, sp.Args)
	}
	if _, ok := rv.sess.Output.funcs[key]; ok {
		return nil
	}

	params := make([]Param, 0, len(fd.Params))
	for i, p := range fd.Params {
		qt, err := rv.translate(p.Type, env, file)
		if err != nil {
			return err
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("_param_%d", i)
		}
		params = append(params, Param{Name: name, Type: qt})
	}
	ret, err := rv.translate(fd.Return, env, file)
	if err != nil {
		return err
	}

	fn := &Function{CppName: exp.CppName, CName: cname, Params: params, Return: ret}
	rv.sess.Output.AddFunction(key, fn, file)
	return nil
}
