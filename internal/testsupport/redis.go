package testsupport

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// StartRedis runs an in-process Redis server for the duration of the test.
func StartRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}
