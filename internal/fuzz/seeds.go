package fuzztests

import (
	"path/filepath"
	"testing"

	"ferrite/internal/testkit"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// addCorpusSeeds seeds f with every lint fixture input plus a few shapes that
// stress struct literal parsing.
func addCorpusSeeds(f *testing.F) {
	for _, fx := range testkit.LoadFixtures(f, filepath.Join("..", "lints", "redundantfieldnames", "testdata")) {
		input, _ := fx.File("input.fe")
		f.Add(clampSeed([]byte(input)))
	}
	f.Add([]byte{})
	f.Add([]byte("fn main() { let p = Foo { a: a }; }\n"))
	f.Add([]byte("fn main() { let p = Foo { a: a, ..base }; }\n"))
	f.Add([]byte("fn main() { let p = Foo { a: Foo { a: a } }; }\n"))
	f.Add([]byte("fn main() { let p = Foo { a: a"))
	f.Add([]byte("fn main() { let p = Foo { : }; }\n"))
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
