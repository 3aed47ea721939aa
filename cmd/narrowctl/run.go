package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/narrowhq/narrow/internal/flow"
)

// RunOptions configures a single `narrowctl replay` invocation.
type RunOptions struct {
	ChangedOnly bool
}

// RunResult is one fixture's outcome, returned to main for the process
// exit code decision.
type RunResult struct {
	Fixture    Fixture
	Passed     bool
	Cached     bool
	Duration   time.Duration
	Mismatches []string
	Facts      uint32
}

// Run replays every fixture in cfg's fixture directories against a
// fresh scenario Analyzer per fixture, reporting progress through rep
// and consulting/populating cache for --changed-only skips. A fresh
// runID, printed in the summary line, stamps every diagnostic the
// replay External observed
// (SPEC_FULL.md §11's "every narrowctl run invocation is stamped with
// a run ID" requirement), so repeated CI runs over the same fixture
// set can be correlated by grepping for it in logs.
func Run(cfg Config, cache *Cache, rep *Reporter, opts RunOptions) ([]RunResult, error) {
	runID := uuid.New()

	var all []Fixture
	for _, dir := range cfg.FixtureDirs {
		fs, err := loadFixtures(dir)
		if err != nil {
			return nil, err
		}
		all = append(all, fs...)
	}

	var results []RunResult
	nodeCount := 0
	passedCount := 0
	start := time.Now()

	for _, fx := range all {
		raw, err := contentHash(fx.Path)
		if err != nil {
			return nil, err
		}
		hash := hashOf(raw)

		if opts.ChangedOnly {
			if cached, ok, err := cache.Lookup(hash); err != nil {
				return nil, err
			} else if ok && cached.Passed {
				rep.FixtureResult(fx.Name, true, true, cached.Duration)
				results = append(results, RunResult{Fixture: fx, Passed: true, Cached: true, Duration: cached.Duration})
				passedCount++
				continue
			}
		}

		res := runOne(fx, runID, cfg.PreventConvertingToChildren)
		nodeCount += countNodes(fx.Scenario)
		rep.FixtureResult(fx.Name, res.Passed, false, res.Duration)
		if !res.Passed {
			rep.Mismatches(fx.Name, res.Mismatches)
		} else {
			passedCount++
		}
		results = append(results, res)

		if err := cache.Store(hash, res.Passed, res.Duration, res.Facts); err != nil {
			return nil, err
		}
	}

	rep.Summary(runID.String(), len(all), passedCount, nodeCount, time.Since(start))
	return results, nil
}

func runOne(fx Fixture, runID uuid.UUID, preventPatterns []string) RunResult {
	build, ok := scenarios[fx.Scenario]
	if !ok {
		return RunResult{
			Fixture:    fx,
			Passed:     false,
			Mismatches: []string{fmt.Sprintf("unknown scenario %q", fx.Scenario)},
		}
	}

	start := time.Now()
	a := newScenarioAnalyzer(preventPatterns)
	got := build(a)
	duration := time.Since(start)
	stampRunID(a.External, runID)
	factsBits := aggregateFacts(a)

	mismatches := diff(fx.Expect, got)
	return RunResult{
		Fixture:    fx,
		Passed:     len(mismatches) == 0,
		Duration:   duration,
		Mismatches: mismatches,
		Facts:      factsBits,
	}
}

// aggregateFacts ORs together every TypeFacts bit recorded against any
// name in a's surviving true-facts, giving the cache a single packed
// uint32 summary of "what this fixture narrowed" without needing a
// per-Name cache schema.
func aggregateFacts(a *flow.Analyzer) uint32 {
	var bits flow.TypeFacts
	for _, f := range a.CurFacts.True.Facts {
		bits = bits.Or(f)
	}
	return uint32(bits)
}

// countNodes is a rough per-scenario AST node count for the reporter's
// humanized summary line; it has no bearing on pass/fail.
func countNodes(scenarioName string) int {
	switch scenarioName {
	case "s1_if_null_guard":
		return 4
	case "s2_ternary_array_union":
		return 3
	case "s3_switch_exhaustive":
		return 6
	case "s4_array_destructure":
		return 4
	case "s5_loop_fixed_point":
		return 4
	case "s6_logical_and_member":
		return 6
	default:
		return 1
	}
}
