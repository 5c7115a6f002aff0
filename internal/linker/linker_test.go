package linker_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/linker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// setupDirs creates a profile directory holding files and an empty install directory.
func setupDirs(t *testing.T, files map[string]string) (profileDir, installDir string) {
	t.Helper()
	dir := t.TempDir()
	profileDir = filepath.Join(dir, "profiles", "default")
	installDir = filepath.Join(dir, "game")
	require.NoError(t, os.MkdirAll(profileDir, 0755))
	require.NoError(t, os.MkdirAll(installDir, 0755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(profileDir, name), []byte(content), 0644))
	}
	return profileDir, installDir
}

func TestLink_RoundTrip(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{
		"a.dll": "assembly bytes",
		"b.cfg": "key=value",
	})

	l := linker.New(zaptest.NewLogger(t))
	linked, err := l.Link(installDir, profileDir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(installDir, "a.dll"),
		filepath.Join(installDir, "b.cfg"),
	}, linked)

	for _, name := range []string{"a.dll", "b.cfg"} {
		want, err := os.ReadFile(filepath.Join(profileDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(installDir, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)

		// Copies, not links
		info, err := os.Lstat(filepath.Join(installDir, name))
		require.NoError(t, err)
		assert.True(t, info.Mode().IsRegular())
	}
}

func TestLink_Idempotent(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{
		"a.dll": "a",
		"b.cfg": "b",
	})

	l := linker.New(nil)
	first, err := l.Link(installDir, profileDir, nil)
	require.NoError(t, err)

	second, err := l.Link(installDir, profileDir, first)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, p := range second {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestLink_ExcludesReservedMetadataFile(t *testing.T) {
	for _, name := range []string{"mods.yml", "MODS.YML", "Mods.Yml"} {
		t.Run(name, func(t *testing.T) {
			profileDir, installDir := setupDirs(t, map[string]string{
				name:    "mods: []",
				"a.dll": "a",
			})

			linked, err := linker.New(nil).Link(installDir, profileDir, nil)
			require.NoError(t, err)

			assert.Equal(t, []string{filepath.Join(installDir, "a.dll")}, linked)
			_, err = os.Stat(filepath.Join(installDir, name))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestLink_LeavesForeignFilesAlone(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})
	keep := filepath.Join(installDir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("not ours"), 0644))

	l := linker.New(nil)
	first, err := l.Link(installDir, profileDir, nil)
	require.NoError(t, err)

	// Switch to an unrelated profile
	otherDir := filepath.Join(filepath.Dir(profileDir), "other")
	require.NoError(t, os.MkdirAll(otherDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(otherDir, "c.dll"), []byte("c"), 0644))

	second, err := l.Link(installDir, otherDir, first)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(installDir, "c.dll")}, second)

	content, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "not ours", string(content))

	_, err = os.Stat(filepath.Join(installDir, "a.dll"))
	assert.True(t, os.IsNotExist(err), "previous profile's file should be gone")
}

func TestLink_SkipsSubdirectories(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})
	require.NoError(t, os.MkdirAll(filepath.Join(profileDir, "plugins"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(profileDir, "plugins", "nested.dll"), []byte("n"), 0644))

	linked, err := linker.New(nil).Link(installDir, profileDir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(installDir, "a.dll")}, linked)
	_, err = os.Stat(filepath.Join(installDir, "plugins"))
	assert.True(t, os.IsNotExist(err))
}

func TestLink_SkipsMissingPreviousPaths(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})

	previous := []string{filepath.Join(installDir, "gone.dll")}
	linked, err := linker.New(nil).Link(installDir, profileDir, previous)
	require.NoError(t, err)
	assert.Len(t, linked, 1)
}

func TestLink_RemovesPreviousDirectories(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})
	oldDir := filepath.Join(installDir, "BepInEx")
	require.NoError(t, os.MkdirAll(filepath.Join(oldDir, "plugins", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(oldDir, "plugins", "deep", "x.dll"), []byte("x"), 0644))

	_, err := linker.New(nil).Link(installDir, profileDir, []string{oldDir})
	require.NoError(t, err)

	_, err = os.Stat(oldDir)
	assert.True(t, os.IsNotExist(err))
}

func TestLink_ReplacesExistingSymlink(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "new"})
	elsewhere := filepath.Join(t.TempDir(), "old.dll")
	require.NoError(t, os.WriteFile(elsewhere, []byte("old"), 0644))
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(installDir, "a.dll")))

	_, err := linker.New(nil).Link(installDir, profileDir, nil)
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(installDir, "a.dll"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	// The symlink target is untouched
	content, err := os.ReadFile(elsewhere)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
}

func TestLink_DeleteFailureCopiesNothing(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})

	// A path below a regular file can never be removed (ENOTDIR)
	blocker := filepath.Join(installDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	previous := []string{filepath.Join(blocker, "child")}

	linked, err := linker.New(nil).Link(installDir, profileDir, previous)
	require.Error(t, err)
	assert.Nil(t, linked)
	assert.True(t, errors.Is(err, domain.ErrDeleteFailure))

	var e *domain.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Unable to delete file", e.Title)
	assert.NotEmpty(t, e.Hint)

	_, err = os.Stat(filepath.Join(installDir, "a.dll"))
	assert.True(t, os.IsNotExist(err), "nothing should be copied after a failed cleanup")
}

func TestLink_DeleteFailureOnLockedDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not stop root")
	}
	profileDir, installDir := setupDirs(t, map[string]string{"a.dll": "a"})

	lockedDir := filepath.Join(installDir, "locked")
	require.NoError(t, os.MkdirAll(lockedDir, 0755))
	stale := filepath.Join(lockedDir, "stale.dll")
	require.NoError(t, os.WriteFile(stale, []byte("s"), 0644))
	require.NoError(t, os.Chmod(lockedDir, 0555))
	t.Cleanup(func() { _ = os.Chmod(lockedDir, 0755) })

	_, err := linker.New(nil).Link(installDir, profileDir, []string{stale})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDeleteFailure))

	_, err = os.Stat(filepath.Join(installDir, "a.dll"))
	assert.True(t, os.IsNotExist(err))
}

func TestLink_ReadFailure(t *testing.T) {
	_, installDir := setupDirs(t, nil)
	missing := filepath.Join(t.TempDir(), "no-such-profile")

	_, err := linker.New(nil).Link(installDir, missing, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReadFailure))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var e *domain.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Title, "no-such-profile")
}

func TestLink_CopyFailureStopsAtFirstFile(t *testing.T) {
	profileDir, installDir := setupDirs(t, map[string]string{
		"a.dll": "a",
		"b.dll": "b",
	})

	// A non-empty directory named like the first file cannot be replaced
	require.NoError(t, os.MkdirAll(filepath.Join(installDir, "a.dll", "inner"), 0755))

	linked, err := linker.New(nil).Link(installDir, profileDir, nil)
	require.Error(t, err)
	assert.Nil(t, linked)
	assert.True(t, errors.Is(err, domain.ErrCopyFailure))
	assert.Contains(t, err.Error(), "a.dll")

	var e *domain.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Failed to install required files", e.Title)
	assert.Contains(t, e.Hint, "must not be running")

	_, err = os.Stat(filepath.Join(installDir, "b.dll"))
	assert.True(t, os.IsNotExist(err), "remaining files should not be copied")
}

func TestRemove_LogsFilesToRemove(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := linker.New(zap.New(core))

	installDir := t.TempDir()
	target := filepath.Join(installDir, "a.dll")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0644))

	require.NoError(t, l.Remove([]string{target}))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 1, logs.FilterMessage("files to remove").Len())
	assert.Equal(t, 1, logs.FilterMessage("removing previously copied file").Len())
}

func TestRemoveTree_MissingDirectoryFails(t *testing.T) {
	err := linker.RemoveTree(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCopyFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("short"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("much longer old content"), 0644))

	require.NoError(t, linker.CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), content)
}

func TestCopyFile_SameFileIsRefused(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.dll")
	require.NoError(t, os.WriteFile(path, []byte("precious"), 0644))

	err := linker.CopyFile(path, filepath.Join(dir, ".", "a.dll"))
	assert.ErrorIs(t, err, linker.ErrSameFile)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(content))
}
