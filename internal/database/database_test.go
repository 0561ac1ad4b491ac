package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "seasons", "season_stats", "matches", "player_match_stats", "player_match_ratings"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, teardown, err := InitDB(path, "", "")
	require.NoError(t, err)
	teardown()

	db, teardown, err := InitDB(path, "", "")
	require.NoError(t, err, "re-running migrations on an existing database should be a no-op")
	defer teardown()

	var version int64
	err = db.QueryRow("SELECT MAX(version_id) FROM goose_db_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO season_stats (steam_id, season_id, pts) VALUES (1, 1, 1000)`)
	assert.Error(t, err, "season_stats without a player and season must be rejected")
}

func TestInitDB_SingleCurrentSeason(t *testing.T) {
	db, teardown, err := InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO seasons (number, started_at, is_current) VALUES (1, 0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO seasons (number, started_at, is_current) VALUES (2, 0, 1)`)
	assert.Error(t, err, "a second current season must violate the partial unique index")
}

func TestMigrate_TursoDialect(t *testing.T) {
	db, err := sql.Open("sqlite3", localDSN(filepath.Join(t.TempDir(), "turso.db")))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrate(db, dialectTurso), "the remote dialect must be accepted by goose")

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='matches'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "matches", name)
}
