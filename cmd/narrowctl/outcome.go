package main

import (
	"sort"

	"github.com/narrowhq/narrow/internal/flow"
)

// Outcome is the post-condition snapshot a fixture's expect block is
// checked against: the handful of Analyzer-state fields the S1-S6
// scenarios care about, rendered to plain strings so a txtar-embedded
// YAML block can express an expectation without importing this
// module's types.
type Outcome struct {
	Vars        map[string]string   `yaml:"vars,omitempty"`
	Excludes    map[string][]string `yaml:"excludes,omitempty"`
	Unreachable bool                `yaml:"unreachable,omitempty"`
}

// snapshotOutcome reads a's current true-facts (and reachability flag)
// into an Outcome. Only non-empty maps are populated so the YAML form
// stays terse, matching the teacher's convention of omitting
// zero-value struct fields from serialized config (builtins_yaml.go).
func snapshotOutcome(a *flow.Analyzer) Outcome {
	o := Outcome{Unreachable: a.InUnreachable}
	if len(a.CurFacts.True.Vars) > 0 {
		o.Vars = make(map[string]string, len(a.CurFacts.True.Vars))
		for name, ty := range a.CurFacts.True.Vars {
			o.Vars[name.String()] = ty.String()
		}
	}
	if len(a.CurFacts.True.Excludes) > 0 {
		o.Excludes = make(map[string][]string, len(a.CurFacts.True.Excludes))
		for name, tys := range a.CurFacts.True.Excludes {
			rendered := make([]string, len(tys))
			for i, t := range tys {
				rendered[i] = t.String()
			}
			sort.Strings(rendered)
			o.Excludes[name.String()] = rendered
		}
	}
	return o
}

// diff compares got against want, returning a human-readable list of
// mismatches (empty when they agree). want's maps are the fixture's
// expectations; a key absent from want is not checked, so a fixture
// can assert on only the facts it cares about.
func diff(want, got Outcome) []string {
	var mismatches []string
	if want.Unreachable != got.Unreachable {
		mismatches = append(mismatches, fieldMismatch("unreachable", want.Unreachable, got.Unreachable))
	}
	for k, wantTy := range want.Vars {
		gotTy, ok := got.Vars[k]
		if !ok || gotTy != wantTy {
			mismatches = append(mismatches, fieldMismatch("vars["+k+"]", wantTy, gotTy))
		}
	}
	for k, wantTys := range want.Excludes {
		gotTys := got.Excludes[k]
		if !equalStrSlices(wantTys, gotTys) {
			mismatches = append(mismatches, fieldMismatch("excludes["+k+"]", wantTys, gotTys))
		}
	}
	return mismatches
}

func equalStrSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fieldMismatch(field string, want, got interface{}) string {
	return field + ": want " + toStr(want) + ", got " + toStr(got)
}

func toStr(v interface{}) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	case []string:
		out := "["
		for i, s := range t {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out + "]"
	default:
		return ""
	}
}
