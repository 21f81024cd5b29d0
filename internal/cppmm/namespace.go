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

// NamespaceRegistry is a bidirectional string map between source namespace
// names and renamed output namespace prefixes (spec §4.B). A cppmmgen run
// uses exactly one of these, built from configuration before Pass 1.
type NamespaceRegistry struct {
	toOutput map[string]string
	toSource map[string]string
}

// NewNamespaceRegistry builds an empty registry.
func NewNamespaceRegistry() *NamespaceRegistry {
	return &NamespaceRegistry{
		toOutput: make(map[string]string),
		toSource: make(map[string]string),
	}
}

// Add records a source=output rename pair. It returns an error if the
// source name is already mapped to a different output name — configuration
// errors abort the run (spec §7).
func (r *NamespaceRegistry) Add(source, output string) error {
	if existing, ok := r.toOutput[source]; ok && existing != output {
		return &ConfigError{Msg: "conflicting namespace rename for " + source + ": " +
			existing + " and " + output}
	}
	r.toOutput[source] = output
	r.toSource[output] = source
	return nil
}

// RenameNamespace returns the rewrite for name if present, else name
// unchanged (spec §4.B rename_namespace).
func (r *NamespaceRegistry) RenameNamespace(name string) string {
	if out, ok := r.toOutput[name]; ok {
		return out
	}
	return name
}

// RenameAll applies RenameNamespace element-wise (spec §4.B rename_all).
func (r *NamespaceRegistry) RenameAll(path []string) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[i] = r.RenameNamespace(p)
	}
	return out
}

// Prefix joins a path with sep, with a trailing copy of sep iff the path is
// non-empty (spec §4.B prefix helper).
func Prefix(path []string, sep string) string {
	if len(path) == 0 {
		return ""
	}
	return strings.Join(path, sep) + sep
}

// ParseRenameFlag parses one "-rename from=to" CLI flag value (spec §6 CLI
// surface). A malformed pair is a configuration error.
func ParseRenameFlag(s string) (source, output string, err error) {
	i := strings.IndexByte(s, '=')
	if i <= 0 || i == len(s)-1 {
		return "", "", &ConfigError{Msg: "malformed -rename value (want from=to): " + s}
	}
	return s[:i], s[i+1:], nil
}
