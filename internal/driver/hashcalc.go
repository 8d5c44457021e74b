package driver

import (
	"crypto/sha256"
	"strconv"

	"ferrite/internal/lint"
	"ferrite/internal/version"
)

// Digest is a SHA-256 value; file contents and cache keys use it.
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// settingsDigest hashes everything besides the file content that changes the
// diagnostics: the level overrides, the diagnostic cap, the tool version and
// the payload schema.
func settingsDigest(levels lint.Levels, maxDiagnostics int) Digest {
	s := "levels=" + levels.Digest() +
		"|max=" + strconv.Itoa(maxDiagnostics) +
		"|version=" + version.Version +
		"|schema=" + strconv.Itoa(int(diskCacheSchemaVersion))
	return sha256.Sum256([]byte(s))
}

func cacheKey(content [32]byte, levels lint.Levels, maxDiagnostics int) Digest {
	return combineDigest(content, settingsDigest(levels, maxDiagnostics))
}
