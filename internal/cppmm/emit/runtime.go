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


package emit

// runtimeHeaderName is the shared header declaring the small set of
// built-in C types the Type Translator's special cases need (spec §4.D.4:
// basic_string, string_view), since C has no native equivalent.
const runtimeHeaderName = "cppmm_runtime.h"

func renderRuntimeHeader() string {
	return `#pragma once

#include <stddef.h>
#include <stdlib.h>

#ifdef __cplusplus
extern "C" {
#endif

/* cppmm_string owns its data: it is a malloc'd copy of a bound library's
 * std::string result and must be released with cppmm_string_free. */
typedef struct {
	char* data;
	size_t size;
} cppmm_string;

/* cppmm_string_view never owns its data: it aliases memory owned by the
 * library object it came from and must not outlive it; there is no free
 * function for it. */
typedef struct {
	const char* data;
	size_t size;
} cppmm_string_view;

static inline void cppmm_string_free(cppmm_string* s) {
	free(s->data);
	s->data = NULL;
	s->size = 0;
}

#ifdef __cplusplus
}
#endif
`
}
