package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/modlink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCmd_Structure(t *testing.T) {
	assert.Equal(t, "link", linkCmd.Use)
	assert.NotEmpty(t, linkCmd.Short)
	assert.NotEmpty(t, linkCmd.Long)
	assert.NotNil(t, linkCmd.Flags().Lookup("profile"))
	assert.NotNil(t, linkCmd.Flags().Lookup("force"))
}

func TestUnlinkCmd_Structure(t *testing.T) {
	assert.Equal(t, "unlink", unlinkCmd.Use)
	assert.NotEmpty(t, unlinkCmd.Short)
}

func TestLink_NoGame(t *testing.T) {
	setupTest(t)

	_, err := runCommand(t, linkCmd, "", "link")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no game specified")
}

func TestLink_NoActiveProfile(t *testing.T) {
	setupTest(t)
	gameID = "valheim"

	_, err := runCommand(t, linkCmd, "", "link")
	assert.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

// writeProfile creates a profile through the profile commands and adds files to it
func writeProfile(t *testing.T, name string, files map[string]string) {
	t.Helper()
	_, err := runCommand(t, profileCmd, "", "profile", "create", name)
	require.NoError(t, err)

	src := t.TempDir()
	args := []string{"profile", "add", name}
	for file, content := range files {
		path := filepath.Join(src, file)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		args = append(args, path)
	}
	if len(files) > 0 {
		_, err = runCommand(t, profileCmd, "", args...)
		require.NoError(t, err)
	}
}

func TestLink_ReplacesPreviousProfile(t *testing.T) {
	env := setupTest(t)
	gameID = "valheim"
	writeProfile(t, "main", map[string]string{"a.dll": "A", "b.dll": "B"})
	writeProfile(t, "pvp", map[string]string{"c.dll": "C"})

	out, err := runCommand(t, linkCmd, "", "link")
	require.NoError(t, err)
	assert.Contains(t, out, `Linked 2 file(s) from "main"`)
	assert.FileExists(t, filepath.Join(env.installDir, "a.dll"))
	assert.FileExists(t, filepath.Join(env.installDir, "b.dll"))
	assert.NoFileExists(t, filepath.Join(env.installDir, domain.ReservedMetadataFile))

	out, err = runCommand(t, linkCmd, "", "link", "--profile", "pvp")
	require.NoError(t, err)
	assert.Contains(t, out, `Linked 1 file(s) from "pvp"`)
	assert.NoFileExists(t, filepath.Join(env.installDir, "a.dll"))
	assert.NoFileExists(t, filepath.Join(env.installDir, "b.dll"))
	assert.FileExists(t, filepath.Join(env.installDir, "c.dll"))
	assert.FileExists(t, filepath.Join(env.installDir, "valheim.exe"))
}

func TestLink_RefusesWhileGameRunning(t *testing.T) {
	env := setupTest(t)
	gameID = "valheim"
	writeProfile(t, "main", map[string]string{"a.dll": "A"})
	env.running = true

	_, err := runCommand(t, linkCmd, "", "link")
	assert.ErrorIs(t, err, domain.ErrGameRunning)
	assert.NoFileExists(t, filepath.Join(env.installDir, "a.dll"))

	_, err = runCommand(t, linkCmd, "", "link", "--force")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.installDir, "a.dll"))
}

func TestUnlink_RemovesLinkedFiles(t *testing.T) {
	env := setupTest(t)
	gameID = "valheim"
	writeProfile(t, "main", map[string]string{"a.dll": "A"})

	_, err := runCommand(t, linkCmd, "", "link")
	require.NoError(t, err)

	out, err := runCommand(t, unlinkCmd, "", "unlink")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 linked file(s)")
	assert.NoFileExists(t, filepath.Join(env.installDir, "a.dll"))

	out, err = runCommand(t, unlinkCmd, "", "unlink")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing is linked.")
}
