package db_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDatabase(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NotNil(t, database)
}

func TestNew_RunsMigrations(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM linked_files").Scan(&count)
	assert.NoError(t, err)

	err = database.QueryRow("SELECT COUNT(*) FROM link_runs").Scan(&count)
	assert.NoError(t, err)

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modlink.db")

	database, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, database.ReplaceLinkedFiles("ror2", []string{"/game/a.dll"}))
	require.NoError(t, database.Close())

	database, err = db.New(path)
	require.NoError(t, err)
	defer database.Close()

	paths, err := database.GetLinkedFiles("ror2")
	require.NoError(t, err)
	assert.Equal(t, []string{"/game/a.dll"}, paths)
}

func TestLinkedFiles_EmptyByDefault(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	paths, err := database.GetLinkedFiles("ror2")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLinkedFiles_ReplaceKeepsOrder(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	want := []string{"/game/z.dll", "/game/a.dll", "/game/m.cfg"}
	require.NoError(t, database.ReplaceLinkedFiles("ror2", want))

	got, err := database.GetLinkedFiles("ror2")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLinkedFiles_ReplaceIsWholesale(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.ReplaceLinkedFiles("ror2", []string{"/game/a.dll", "/game/b.dll"}))
	require.NoError(t, database.ReplaceLinkedFiles("ror2", []string{"/game/c.dll"}))

	got, err := database.GetLinkedFiles("ror2")
	require.NoError(t, err)
	assert.Equal(t, []string{"/game/c.dll"}, got)

	require.NoError(t, database.ReplaceLinkedFiles("ror2", nil))
	got, err = database.GetLinkedFiles("ror2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLinkedFiles_PerGame(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.ReplaceLinkedFiles("ror2", []string{"/ror2/a.dll"}))
	require.NoError(t, database.ReplaceLinkedFiles("valheim", []string{"/valheim/b.dll"}))
	require.NoError(t, database.ReplaceLinkedFiles("ror2", nil))

	got, err := database.GetLinkedFiles("valheim")
	require.NoError(t, err)
	assert.Equal(t, []string{"/valheim/b.dll"}, got)
}

func TestLinkRuns_LastRun(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	none, err := database.LastLinkRun("ror2")
	require.NoError(t, err)
	assert.Nil(t, none)

	earlier := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	require.NoError(t, database.RecordLinkRun(domain.LinkRun{ID: "run-1", GameID: "ror2", ProfileName: "default", FileCount: 2, LinkedAt: earlier}))
	require.NoError(t, database.RecordLinkRun(domain.LinkRun{ID: "run-2", GameID: "ror2", ProfileName: "survivors", FileCount: 5, LinkedAt: later}))

	last, err := database.LastLinkRun("ror2")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-2", last.ID)
	assert.Equal(t, "survivors", last.ProfileName)
	assert.Equal(t, 5, last.FileCount)
	assert.True(t, later.Equal(last.LinkedAt))
}
