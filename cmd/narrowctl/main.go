// Command narrowctl is the fixture-replay/debugging driver for the
// control-flow narrowing core in internal/flow. It is the "outer
// visitor" spec.md §1 explicitly keeps out of the core's scope: it
// talks to internal/flow exclusively through the flow.External
// interface boundary, the same way a real type checker would.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "replay":
		os.Exit(runReplay(os.Args[2:]))
	case "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: narrowctl replay <fixture-dir> [--config narrowctl.yaml] [--changed-only]")
}

func runReplay(args []string) int {
	if len(args) < 1 {
		usage()
		return 2
	}

	fixtureDir := args[0]
	configPath := ""
	changedOnly := false
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--changed-only":
			changedOnly = true
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				return 2
			}
			configPath = args[i+1]
			i++
		}
	}

	var cfg Config
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		cfg = loaded
	} else if defaultPath := filepath.Join(fixtureDir, "narrowctl.yaml"); fileExists(defaultPath) {
		loaded, err := loadConfig(defaultPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		cfg = loaded
	} else {
		cfg = defaultConfig(fixtureDir)
	}

	cache, err := OpenCache(cfg.CacheFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	defer cache.Close()

	rep := NewReporter(os.Stdout)

	results, err := Run(cfg, cache, rep, RunOptions{ChangedOnly: changedOnly})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	for _, r := range results {
		if !r.Passed {
			return 1
		}
	}
	return 0
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
