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

import "strings"

const directivePrefix = "cppmm:"

// ParseDirective reads a single annotation string of the form
// "cppmm:<verb>[:<arg>]" and yields an AttrDirective (spec §4.A). Unknown
// verbs, and strings that don't carry the cppmm: prefix at all, are ignored
// silently — ok is false in both cases.
func ParseDirective(annotation string) (AttrDirective, bool) {
	if !strings.HasPrefix(annotation, directivePrefix) {
		return AttrDirective{}, false
	}
	rest := annotation[len(directivePrefix):]
	verb, arg, hasArg := strings.Cut(rest, ":")

	switch verb {
	case "ignore":
		return AttrDirective{Kind: DirIgnore}, true
	case "rename":
		if !hasArg || arg == "" {
			return AttrDirective{}, false
		}
		return AttrDirective{Kind: DirRename, NewName: arg}, true
	case "manual":
		sym := arg
		return AttrDirective{Kind: DirManual, Symbol: sym}, true
	case "valuetype":
		return AttrDirective{Kind: DirValueType}, true
	case "opaquebytes":
		return AttrDirective{Kind: DirOpaqueBytes}, true
	case "opaqueptr":
		return AttrDirective{Kind: DirOpaquePtr}, true
	default:
		return AttrDirective{}, false
	}
}

// ComposeDirectives parses every annotation on a declaration and composes
// them per spec §4.A: rename overrides the c-name; ignore causes the
// declaration to be matched but not emitted; manual causes it to be
// matched, not emitted, and its symbol recorded for the (out of scope)
// manual pipeline. The default RecordKind is OpaquePtr (spec §3).
func ComposeDirectives(annotations []string) Directives {
	d := Directives{Kind: RecordOpaquePtr}
	for _, a := range annotations {
		dir, ok := ParseDirective(a)
		if !ok {
			continue
		}
		switch dir.Kind {
		case DirIgnore:
			d.Ignore = true
		case DirRename:
			d.RenameTo = dir.NewName
		case DirManual:
			d.Manual = true
			d.ManualSym = dir.Symbol
		case DirValueType:
			d.Kind = RecordValueType
			d.HasKind = true
		case DirOpaqueBytes:
			d.Kind = RecordOpaqueBytes
			d.HasKind = true
		case DirOpaquePtr:
			d.Kind = RecordOpaquePtr
			d.HasKind = true
		}
	}
	return d
}
