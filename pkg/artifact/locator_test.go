package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestFindLatest(t *testing.T) {
	tmpDir := t.TempDir()
	base := time.Now().Add(-1 * time.Hour)

	writeFileAt(t, tmpDir, "transaction_benchmark_20250101.json", base)
	newest := writeFileAt(t, tmpDir, "transaction_benchmark_20250301.json", base.Add(20*time.Minute))
	writeFileAt(t, tmpDir, "transaction_benchmark_20250201.json", base.Add(10*time.Minute))
	// Different category, newer than everything; must not be picked
	writeFileAt(t, tmpDir, "sharding_benchmark_20250401.json", base.Add(30*time.Minute))

	path, err := FindLatest(tmpDir, "transaction_benchmark_*.json")
	require.NoError(t, err)
	assert.Equal(t, newest, path)
}

func TestFindLatest_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := FindLatest(tmpDir, "transaction_benchmark_*.json")
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestFindLatest_MissingDirectory(t *testing.T) {
	_, err := FindLatest(filepath.Join(t.TempDir(), "does-not-exist"), "*.json")
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestFindLatest_IgnoresDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "cpu_report_dir.txt"), 0755))

	_, err := FindLatest(tmpDir, "cpu_report_*.txt")
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestPatternForCategory(t *testing.T) {
	for _, category := range Categories {
		pattern, ok := PatternForCategory(category)
		assert.True(t, ok, category)
		assert.Contains(t, pattern, category)
	}

	_, ok := PatternForCategory("consensus")
	assert.False(t, ok)
}
