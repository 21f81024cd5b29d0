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
	"github.com/go-cppmm/cppmmgen/internal/cppast"
	"github.com/golang/glog"
)

// DefaultSentinelNamespace is the reserved outer namespace convention that
// marks declarations as export intents rather than real code (glossary:
// "Sentinel namespace").
const DefaultSentinelNamespace = "cppmm_bind"

// Harvest runs Pass 1 (spec §4.C): it walks the binding declaration
// translation units, filters to declarations inside the sentinel
// namespace, and populates reg. Pass 1 must fully complete before Pass 2
// begins (spec §5).
func Harvest(reg *ExportRegistry, sentinel string, units []cppast.TranslationUnit) error {
	if sentinel == "" {
		sentinel = DefaultSentinelNamespace
	}
	for _, tu := range units {
		file := reg.fileFor(tu.Filename)
		file.RawIncludes = append(file.RawIncludes, tu.RawIncludes...)

		for _, ta := range tu.TypeAliases {
			if !inSentinel(ta.QualifiedName(), sentinel) {
				continue
			}
			if err := harvestTypeAlias(reg, tu.Filename, ta); err != nil {
				return err
			}
		}
		for _, ed := range tu.Enums {
			if !inSentinel(ed.QualifiedName(), sentinel) {
				continue
			}
			harvestEnum(reg, tu.Filename, ed)
		}
		for _, rd := range tu.Records {
			if !inSentinel(rd.QualifiedName(), sentinel) {
				continue
			}
			harvestRecord(reg, tu.Filename, rd)
		}
		for _, fd := range tu.Functions {
			if !inSentinel(fd.QualifiedName(), sentinel) {
				continue
			}
			harvestFunction(reg, tu.Filename, fd)
		}
	}
	return nil
}

func inSentinel(path []string, sentinel string) bool {
	return len(path) > 0 && path[0] == sentinel
}

// strippedName drops the sentinel namespace segment, since it is a Pass-1
// bookkeeping marker, not part of the entity's real C++ qualified name.
func strippedName(path []string) QualifiedName {
	if len(path) > 1 {
		return NewQualifiedName(path[1:])
	}
	return NewQualifiedName(path)
}

func harvestEnum(reg *ExportRegistry, file string, ed cppast.EnumDecl) {
	qname := strippedName(ed.Names)
	dirs := ComposeDirectives(ed.Annotations())
	cname := qname.Leaf
	if dirs.RenameTo != "" {
		cname = dirs.RenameTo
	}
	e := &ExportedEnum{CppName: qname, CName: cname, SourceFile: file}
	if !reg.addEnum(e) {
		glog.Warningf("%s: duplicate enum export %s, ignoring", file, qname.CppName())
	}
}

func harvestRecord(reg *ExportRegistry, file string, rd cppast.RecordDecl) {
	qname := strippedName(rd.Names)
	if rd.IsTemplate && !rd.IsDependent {
		// A concrete class-template specialization declared directly
		// (rather than through a type alias) is not how cppmm binds
		// specializations; skip it (spec §4.C).
		glog.V(2).Infof("%s: skipping directly-declared template specialization %s", file, qname.CppName())
		return
	}
	dirs := ComposeDirectives(rd.Annotations())
	cname := qname.Leaf
	if dirs.RenameTo != "" {
		cname = dirs.RenameTo
	}
	rec := &ExportedRecord{
		CppName:           qname,
		CName:             cname,
		Kind:              dirs.Kind,
		Directive:         dirs,
		SourceFile:        file,
		IsDependent:       rd.IsDependent,
		TemplateParmNames: rd.TemplateParms,
	}
	for _, md := range rd.Methods {
		rec.Methods = append(rec.Methods, exportedMethodFromDecl(md))
	}
	if !reg.addRecord(rec) {
		glog.Warningf("%s: duplicate record export %s, ignoring", file, qname.CppName())
	}
}

func exportedMethodFromDecl(md cppast.MethodDecl) ExportedMethod {
	dirs := ComposeDirectives(md.Annotations())
	name := leafMethodName(md)
	cname := name
	switch {
	case dirs.RenameTo != "":
		cname = dirs.RenameTo
	case md.IsConversion:
		cname = defaultConversionName(md.ConversionTarget)
	case md.IsOperator:
		cname = defaultOperatorName(md.OperatorSymbol, len(md.Params) == 0)
	}
	return ExportedMethod{
		Name:      name,
		ParamSig:  paramSigFromOracle(md.Params),
		IsConst:   md.IsConst,
		IsStatic:  md.IsStatic,
		Directive: dirs,
		CName:     cname,
		Loc:       md.Loc,
	}
}

func leafMethodName(md cppast.MethodDecl) string {
	if len(md.Names) == 0 {
		return ""
	}
	return md.Names[len(md.Names)-1]
}

func harvestFunction(reg *ExportRegistry, file string, fd cppast.FunctionDecl) {
	qname := strippedName(fd.Names)
	dirs := ComposeDirectives(fd.Annotations())
	cname := qname.Leaf
	if dirs.RenameTo != "" {
		cname = dirs.RenameTo
	}

	if fd.IsTemplate && len(fd.TemplateArgs) > 0 {
		// This declaration is itself a specialization: align its
		// template arguments with the primary template's parameter
		// names to build the named-argument map (spec §4.C).
		existing, ok := reg.funcs[qname.Key()]
		if !ok {
			existing = &ExportedFunction{CppName: qname, CName: cname, SourceFile: file, Directive: dirs, IsDependent: true}
			reg.addFunction(existing)
		}
		named := make(map[string]QualifiedType)
		var args []QualifiedType
		for i, a := range fd.TemplateArgs {
			qt, err := translateBuiltinOnly(a)
			if err != nil {
				glog.Warningf("%s: %s: %v", file, qname.CppName(), err)
				continue
			}
			args = append(args, qt)
			if i < len(fd.TemplateParms) {
				named[fd.TemplateParms[i]] = qt
			}
		}
		existing.Specializations = append(existing.Specializations, ExportedSpecialization{
			Args:      args,
			NamedArgs: named,
			Alias:     cname,
			BaseCpp:   qname,
		})
		return
	}

	fn := &ExportedFunction{
		CppName:    qname,
		CName:      cname,
		SourceFile: file,
		Directive:  dirs,
	}
	if !reg.addFunction(fn) {
		glog.Warningf("%s: duplicate function export %s, ignoring", file, qname.CppName())
	}
}

func harvestTypeAlias(reg *ExportRegistry, file string, ta cppast.TypeAliasDecl) error {
	target := ta.Target
	if !target.IsTemplate {
		// Not a class-template specialization; nothing to harvest.
		return nil
	}
	baseKey := NewQualifiedName(target.TemplateName).Key()
	base, ok := reg.Record(baseKey)
	if !ok {
		// The author did not ask for the base template (spec §4.C: skip).
		glog.V(2).Infof("%s: type alias %s targets unregistered template %s, skipping",
			file, strippedName(ta.Names).CppName(), baseKey)
		return nil
	}

	dirs := ComposeDirectives(ta.Annotations())
	alias := strippedName(ta.Names).Leaf
	if dirs.RenameTo != "" {
		alias = dirs.RenameTo
	}

	var args []QualifiedType
	named := make(map[string]QualifiedType)
	for i, a := range target.TemplateArgs {
		if !a.IsBuiltin {
			return ErrTemplateArgNotBuiltin(strippedName(ta.Names).CppName(), canonicalParamSpelling(a))
		}
		qt, err := translateBuiltinOnly(a)
		if err != nil {
			return err
		}
		args = append(args, qt)
		if i < len(base.TemplateParmNames) {
			named[base.TemplateParmNames[i]] = qt
		}
	}
	base.IsDependent = true

	reg.addSpecialization(baseKey, ExportedSpecialization{
		Args:      args,
		NamedArgs: named,
		Alias:     alias,
		BaseCpp:   NewQualifiedName(target.TemplateName),
	})
	return nil
}

func translateBuiltinOnly(q cppast.QualType) (QualifiedType, error) {
	if q.IsPointer || q.IsReference {
		inner, err := translateBuiltinOnly(*q.Pointee)
		if err != nil {
			return QualifiedType{}, err
		}
		inner.IsPointer = q.IsPointer
		inner.IsReference = q.IsReference
		inner.IsConst = q.IsConst
		return inner, nil
	}
	if !q.IsBuiltin {
		return QualifiedType{}, ErrTemplateArgNotBuiltin("", canonicalParamSpelling(q))
	}
	spelling := string(q.Builtin)
	if spelling == "_Bool" {
		spelling = "bool"
	}
	return QualifiedType{Type: Type{Kind: TypePrimitive, Primitive: spelling}, IsConst: q.IsConst}, nil
}
