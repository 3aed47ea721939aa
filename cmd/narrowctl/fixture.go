package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// Fixture is one replayable scenario: a name identifying which
// scenario builder in scenarios.go to run, and the Outcome its author
// expects back. Fixtures ship as .txtar archives (SPEC_FULL.md §11)
// rather than source files, since this module has no parser to turn
// source text back into the AST the core visits — the archive's
// "scenario" file names a Go-side builder instead of literal source.
type Fixture struct {
	Path     string
	Name     string
	Scenario string
	Expect   Outcome
}

// loadFixtures parses every *.txtar file in dir into a Fixture, sorted
// by path for deterministic run order.
func loadFixtures(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fixture dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	fixtures := make([]Fixture, 0, len(paths))
	for _, p := range paths {
		f, err := loadFixture(p)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func loadFixture(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	arc := txtar.Parse(raw)
	f := Fixture{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), ".txtar"),
	}

	var haveScenario, haveExpect bool
	for _, file := range arc.Files {
		switch file.Name {
		case "scenario":
			f.Scenario = strings.TrimSpace(string(file.Data))
			haveScenario = true
		case "expect.yaml":
			if err := yaml.Unmarshal(file.Data, &f.Expect); err != nil {
				return Fixture{}, fmt.Errorf("%s: parsing expect.yaml: %w", path, err)
			}
			haveExpect = true
		}
	}
	if !haveScenario {
		return Fixture{}, fmt.Errorf("%s: missing \"scenario\" file in archive", path)
	}
	if !haveExpect {
		return Fixture{}, fmt.Errorf("%s: missing \"expect.yaml\" file in archive", path)
	}
	return f, nil
}

// contentHash is the cache key for a fixture: its archive bytes,
// unparsed, so any edit (including comment-only changes to expect.yaml)
// invalidates the cached result.
func contentHash(path string) ([]byte, error) {
	return os.ReadFile(path)
}
