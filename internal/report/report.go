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


// Package report accumulates run statistics — pass timings and the
// rejected-method ledger — and prints them at the end of a run, the way
// the teacher's stats.go accumulates and dumps eval statistics.
package report

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// PassTiming is one named phase's wall-clock duration (harvest, resolve,
// emit).
type PassTiming struct {
	Name     string
	Duration time.Duration
}

// RejectedEntry is one unmatched method signature, keyed by the record it
// belongs to (mirrors cppmm.RejectedMethod, kept decoupled from the core
// package so report has no dependency on it).
type RejectedEntry struct {
	RecordCpp string
	Name      string
	ParamSig  string
}

// Report is a single run's accumulated statistics. Safe for concurrent use,
// though cppmmgen itself is single-threaded (spec §5).
type Report struct {
	mu       sync.Mutex
	timings  []PassTiming
	rejected []RejectedEntry
}

// New builds an empty Report.
func New() *Report { return &Report{} }

// Time runs fn and records its wall-clock duration under name.
func (r *Report) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.mu.Lock()
	r.timings = append(r.timings, PassTiming{Name: name, Duration: time.Since(start)})
	r.mu.Unlock()
	return err
}

// AddRejected records one unmatched method signature for the end-of-run
// warn-unbound summary (spec §7: "the Matcher aggregates rejected methods
// per record to enable a single end-of-run report").
func (r *Report) AddRejected(recordCpp, name, paramSig string) {
	r.mu.Lock()
	r.rejected = append(r.rejected, RejectedEntry{RecordCpp: recordCpp, Name: name, ParamSig: paramSig})
	r.mu.Unlock()
}

// Dump prints pass timings and, when warnUnbound is true, the rejected
// method ledger grouped by record.
func (r *Report) Dump(w io.Writer, warnUnbound bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(w, "pass,duration")
	for _, t := range r.timings {
		fmt.Fprintf(w, "%s,%v\n", t.Name, t.Duration)
	}

	if !warnUnbound || len(r.rejected) == 0 {
		return
	}
	byRecord := make(map[string][]RejectedEntry)
	for _, e := range r.rejected {
		byRecord[e.RecordCpp] = append(byRecord[e.RecordCpp], e)
	}
	records := make([]string, 0, len(byRecord))
	for k := range byRecord {
		records = append(records, k)
	}
	sort.Strings(records)

	fmt.Fprintln(w, "\nunbound methods:")
	for _, rec := range records {
		fmt.Fprintf(w, "  %s\n", rec)
		for _, e := range byRecord[rec] {
			fmt.Fprintf(w, "    %s(%s)\n", e.Name, e.ParamSig)
		}
	}
}
