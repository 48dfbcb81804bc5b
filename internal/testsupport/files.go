package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTitles writes one title per line to path, creating parent
// directories. Lines are joined with sep so CRLF input can be exercised.
func WriteTitles(t testing.TB, path, sep string, titles ...string) string {
	t.Helper()

	if sep == "" {
		sep = "\n"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(titles, sep)+sep), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
