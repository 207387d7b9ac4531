package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a store on a fresh temp path with the given fields.
// The file does not exist until the first Create.
func newTestStore(t *testing.T, fields ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.csv")
	return openTestStore(t, path, fields...)
}

// openTestStore opens a store at path, failing the test on error.
func openTestStore(t *testing.T, path string, fields ...string) *Store {
	t.Helper()
	st, err := Open(path, fields...)
	require.NoError(t, err, "Open(%s) failed", path)
	return st
}

// writeTestFile writes raw file content, for seeding on-disk states that
// the store itself would not produce.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// readTestFile returns the raw bytes of the store file.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// mustCreate creates a record, failing the test on error.
func mustCreate(t *testing.T, st *Store, rec Values) {
	t.Helper()
	require.NoError(t, st.Create(rec))
}
