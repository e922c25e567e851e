package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSRT is a small, canonical three-cue subtitle file.
const SampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello there!

2
00:00:04,000 --> 00:00:06,500
How are you?
Fine, thanks.

3
00:00:07,000 --> 00:00:09,000
Goodbye.

`

// WriteSRT writes content to name inside dir (a fresh temp dir when dir is
// empty) and returns the path.
func WriteSRT(t testing.TB, dir, name, content string) string {
	t.Helper()

	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
