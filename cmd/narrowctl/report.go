package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Reporter prints per-fixture pass/fail lines and a final run summary,
// colorizing only when stdout is a real terminal — the same
// isatty.IsTerminal gate the teacher's evaluator/builtins_term.go uses
// before emitting ANSI codes.
type Reporter struct {
	out   io.Writer
	color bool
}

func NewReporter(out *os.File) *Reporter {
	return &Reporter{out: out, color: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())}
}

func (r *Reporter) FixtureResult(name string, passed bool, cached bool, d time.Duration) {
	status := "FAIL"
	color := ansiRed
	if passed {
		status = "PASS"
		color = ansiGreen
	}
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	if r.color {
		fmt.Fprintf(r.out, "%s%-4s%s %-32s %8s%s\n", color, status, ansiReset, name, d.Round(time.Microsecond), suffix)
	} else {
		fmt.Fprintf(r.out, "%-4s %-32s %8s%s\n", status, name, d.Round(time.Microsecond), suffix)
	}
}

func (r *Reporter) Mismatches(name string, mismatches []string) {
	for _, m := range mismatches {
		fmt.Fprintf(r.out, "  %s: %s\n", name, m)
	}
}

// Summary prints a humanized closing line of the form "run <id>:
// analyzed 1,284 nodes across 6 scenarios in 1.2ms (5 passed)" —
// go-humanize formats the node and passed counts, and the run.go caller
// has already totalled the duration.
func (r *Reporter) Summary(runID string, total, passedCount int, nodeCount int, d time.Duration) {
	noun := "scenarios"
	if total == 1 {
		noun = "scenario"
	}
	fmt.Fprintf(r.out, "\nrun %s: analyzed %s nodes across %d %s in %s (%s passed)\n",
		runID,
		humanize.Comma(int64(nodeCount)),
		total, noun,
		d.Round(time.Microsecond),
		humanize.Comma(int64(passedCount)),
	)
}
