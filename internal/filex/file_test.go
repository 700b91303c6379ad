package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("annotated")
	require.NoError(t, err)

	want := filepath.Join(tmp, "annotated")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	first, err := EnsureSubdDir("annotated")
	require.NoError(t, err)
	require.Equal(t, got, first)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("annotated", []byte("x"), 0o660))

	_, err := EnsureSubdDir("annotated")
	require.Error(t, err)
}

func TestReadNamed(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "chest.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))

	name, data, err := ReadNamed(path)
	require.NoError(t, err)
	require.Equal(t, "chest.jpg", name)
	require.Equal(t, []byte("img"), data)

	_, _, err = ReadNamed(filepath.Join(tmp, "missing.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveInSubdDir(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	path, err := SaveInSubdDir("annotated", "annotated_", "../x/chest.jpg", []byte("out"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "annotated", "annotated_chest.jpg"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("out"), got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestSaveInSubdDir_EmptyName(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	_, err := SaveInSubdDir("annotated", "annotated_", "  ", []byte("out"))
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestSave_MissingDir(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "a.jpg"), []byte("x"))
	require.Error(t, err)
}
