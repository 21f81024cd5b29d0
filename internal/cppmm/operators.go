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

// operatorSpellings maps a C++ operator's symbol (cppast.MethodDecl's
// OperatorSymbol) to its default emitted c-name suffix, supplementing the
// source's rename-only disambiguation with a deterministic fallback so an
// author only needs a rename directive for true overload collisions.
var operatorSpellings = map[string]string{
	"+":  "op_add",
	"-":  "op_sub",
	"*":  "op_mul",
	"/":  "op_div",
	"%":  "op_mod",
	"==": "op_eq",
	"!=": "op_ne",
	"<":  "op_lt",
	"<=": "op_le",
	">":  "op_gt",
	">=": "op_ge",
	"[]": "op_index",
	"()": "op_call",
	"+=": "op_add_assign",
	"-=": "op_sub_assign",
	"*=": "op_mul_assign",
	"/=": "op_div_assign",
	"=":  "op_assign",
	"!":  "op_not",
	"&&": "op_and",
	"||": "op_or",
	"&":  "op_bitand",
	"|":  "op_bitor",
	"^":  "op_bitxor",
	"~":  "op_bitnot",
	"++": "op_inc",
	"--": "op_dec",
	"->": "op_arrow",
	"*u": "op_deref", // unary dereference, distinguished from binary "*" by the caller
}

// defaultOperatorName returns the c-name fallback for an operator method
// with no explicit rename directive. isUnary distinguishes the overloaded
// "*" (multiply vs. dereference). Conversion operators are named separately
// by defaultConversionName.
func defaultOperatorName(symbol string, isUnary bool) string {
	if symbol == "*" && isUnary {
		return operatorSpellings["*u"]
	}
	if name, ok := operatorSpellings[symbol]; ok {
		return name
	}
	return "op_unknown"
}

// defaultConversionName builds the c-name fallback for a conversion
// operator ("operator bool", "operator std::string"), since such methods
// have no ordinary identifier to fall back to.
func defaultConversionName(target string) string {
	return "op_to_" + sanitizeTypeSpelling(target)
}

// sanitizeTypeSpelling turns a raw C++ type spelling into a valid C
// identifier fragment: "::" and whitespace become "_", everything else not
// in [A-Za-z0-9_] is dropped.
func sanitizeTypeSpelling(s string) string {
	s = strings.ReplaceAll(s, "::", "_")
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			// drop pointer/reference/template punctuation
		}
	}
	return b.String()
}
