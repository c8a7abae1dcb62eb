package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// withClock pins the store's write timestamps to the returned counter.
func withClock(s *Store, start int64) *int64 {
	now := start
	s.now = func() time.Time { return time.Unix(now, 0) }
	return &now
}
