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

import "fmt"

// ConfigError represents spec §7's "Configuration errors" class: bad output
// directory, malformed rename pair. These abort the run.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "cppmmgen: configuration: " + e.Msg }

// FatalError represents spec §7's "Fatal translation errors" class:
// non-builtin template argument, opaque-bytes template specialization.
// These abort the run with a message; they are never recovered from by
// continuing the pass that raised them (spec §4.E "Failure semantics").
type FatalError struct {
	Kind string // e.g. "TemplateArgNotBuiltin"
	Msg  string
}

func (e *FatalError) Error() string { return fmt.Sprintf("cppmmgen: %s: %s", e.Kind, e.Msg) }

// ErrTemplateArgNotBuiltin builds the FatalError spec §4.C/§4.E name by name
// ("TemplateArgNotBuiltin").
func ErrTemplateArgNotBuiltin(qname, arg string) error {
	return &FatalError{
		Kind: "TemplateArgNotBuiltin",
		Msg:  fmt.Sprintf("%s: template argument %q is not a builtin", qname, arg),
	}
}

// ErrOpaqueBytesSpecialization builds the FatalError for an OpaqueBytes
// record requested on a template specialization, whose size/alignment the
// Oracle cannot be asked for reliably (spec §3 invariants, §4.E).
func ErrOpaqueBytesSpecialization(qname string) error {
	return &FatalError{
		Kind: "OpaqueBytesSpecialization",
		Msg:  fmt.Sprintf("%s: opaquebytes is not supported on template specializations", qname),
	}
}
