// Package testutil holds helpers shared by the integration test
// packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot walks up two levels from the test's working directory to the
// repository root, where the fixtures/ directory lives.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// FixturePath resolves a file under fixtures/ relative to the
// repository root.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", name)
}

// WriteBlueprint writes a blueprint document into dir and returns its
// path. Tests use it to build throwaway blueprints without touching
// the committed fixtures.
func WriteBlueprint(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
