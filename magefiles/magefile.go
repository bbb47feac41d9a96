// Package main contains Mage build targets for cubequad developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// catalogDir is where the CLI keeps its SQLite catalog and exports.
const catalogDir = "catalog"

// Init creates the catalog directory used by --save and catalog export.
func Init() error {
	for _, dir := range []string{catalogDir, filepath.Join(catalogDir, "exports")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Catalog directory initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "cubequad"
	cmdPkg  = "./cmd/cubequad"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Demo builds the CLI, sweeps a small grid into the catalog, and exports
// every distinct quadruplet found as CSV.
func Demo() error {
	mg.Deps(Build, Init)
	bin := filepath.Join(binDir, binName)
	steps := [][]string{
		{"search", "5", "1", "--families", "--save"},
		{"range", "--a-start", "1", "--a-end", "40", "--n-start", "1", "--n-end", "6", "--workers", "4", "--save"},
		{"verify", "5", "4", "3", "6"},
		{"catalog", "list"},
		{"catalog", "export", "--format", "csv"},
	}
	for _, args := range steps {
		fmt.Printf("\n$ cubequad %v\n", args)
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("cubequad %s: %w", args[0], err)
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and word count of the
// top-level Markdown documents.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// countGoLines walks the module tree and counts non-blank lines in Go files,
// skipping directories the go tool ignores (names starting with _ or .).
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in the Markdown files directly under root.
func countDocWords(root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", root, err)
	}
	total := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, e.Name()))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}
