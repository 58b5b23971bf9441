package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add badge index", "add_badge_index"},
		{"Add-Badge-Index", "add_badge_index"},
		{"ADD_BADGE_INDEX", "add_badge_index"},
		{"add__badge__index", "add_badge_index"},
		{"Badges 2", "badges_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create badges", "Badge table")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_badges.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_badges.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- 000001 create_badges"))
	assert.Contains(t, string(up), "-- Badge table")

	second, err := CreateMigration(dir, "create sessions", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)

	bases, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_badges", "000002_create_sessions"}, bases)
}

func TestCreateMigration_ContinuesAfterGap(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_old.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_old.down.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "next", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations_MissingDir(t *testing.T) {
	bases, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, bases)
}

func TestEmbeddedFiles(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	assert.Contains(t, names, "000001_create_badges.up.sql")
	assert.Contains(t, names, "000002_create_sessions.down.sql")
	for _, n := range names {
		assert.True(t, strings.HasSuffix(n, ".sql"), n)
	}
}
