package testkit

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Fixture is one txtar archive from testdata.
//
//	-- input.fe --   source to lint
//	-- want --       expected short diagnostics, one per line
//	-- fixed.fe --   optional: source after applying every fix
type Fixture struct {
	Name    string
	Comment string
	files   map[string]string
}

// File returns the named section and whether it exists.
func (f Fixture) File(name string) (string, bool) {
	s, ok := f.files[name]
	return s, ok
}

// Want returns the `want` section without trailing newlines.
func (f Fixture) Want() string {
	return strings.TrimRight(f.files["want"], "\n")
}

// LoadFixtures reads every *.txtar under dir, sorted by name.
func LoadFixtures(t testing.TB, dir string) []Fixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		t.Fatalf("glob %s: %v", dir, err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures in %s", dir)
	}
	out := make([]Fixture, 0, len(paths))
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		fx := Fixture{
			Name:    strings.TrimSuffix(filepath.Base(path), ".txtar"),
			Comment: strings.TrimSpace(string(ar.Comment)),
			files:   make(map[string]string, len(ar.Files)),
		}
		for _, f := range ar.Files {
			fx.files[f.Name] = string(f.Data)
		}
		if _, ok := fx.files["input.fe"]; !ok {
			t.Fatalf("%s: missing input.fe section", path)
		}
		out = append(out, fx)
	}
	return out
}
