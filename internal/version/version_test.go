package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColored(t *testing.T) {
	saved, savedNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = saved, savedNoColor })
	color.NoColor = true

	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Fatalf("Colored(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	saved := [3]string{Version, GitCommit, BuildDate}
	savedNoColor := color.NoColor
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = saved[0], saved[1], saved[2]
		color.NoColor = savedNoColor
	})
	color.NoColor = true

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Line(); got != "ferrite 1.2.3" {
		t.Fatalf("got %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15"
	if got := Line(); got != "ferrite 1.2.3 (abc123, 2024-01-15)" {
		t.Fatalf("got %q", got)
	}
	GitCommit = ""
	if got := Line(); got != "ferrite 1.2.3 (2024-01-15)" {
		t.Fatalf("got %q", got)
	}
}
