package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cursor, err := LastCursor(dir, "assets")
	require.NoError(t, err)
	assert.Empty(t, cursor)

	require.NoError(t, SaveCursor(dir, "assets", "AAA_GBAU_credit_alphanum4"))
	cursor, err = LastCursor(dir, "assets")
	require.NoError(t, err)
	assert.Equal(t, "AAA_GBAU_credit_alphanum4", cursor)

	require.NoError(t, SaveCursor(dir, "assets", "ABC_GAQQ_credit_alphanum4"))
	cursor, err = LastCursor(dir, "assets")
	require.NoError(t, err)
	assert.Equal(t, "ABC_GAQQ_credit_alphanum4", cursor)

	require.NoError(t, ClearCursor(dir, "assets"))
	require.NoError(t, ClearCursor(dir, "assets"))
	cursor, err = LastCursor(dir, "assets")
	require.NoError(t, err)
	assert.Empty(t, cursor)
}

func TestCursorStreamsAreIndependent(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveCursor(dir, "assets", "one"))
	require.NoError(t, SaveCursor(dir, "assets:USD", "two"))

	first, err := LastCursor(dir, "assets")
	require.NoError(t, err)
	second, err := LastCursor(dir, "assets:USD")
	require.NoError(t, err)

	assert.Equal(t, "one", first)
	assert.Equal(t, "two", second)
}

func TestGetCursorFilePath(t *testing.T) {
	dir := t.TempDir()

	path, err := GetCursorFilePath(dir, "assets/../../etc")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, "assets_______etc_cursor.json", filepath.Base(path))

	_, err = GetCursorFilePath(dir, "")
	require.Error(t, err)
}

func TestResolveDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	resolved, err := ResolveDir("~/.horizon-client")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".horizon-client"), resolved)

	info, err := os.Stat(resolved)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLastCursor_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets_cursor.json"), []byte("{"), 0600))

	_, err := LastCursor(dir, "assets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
