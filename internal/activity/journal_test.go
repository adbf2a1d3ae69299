package activity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

func TestNullJournalIsNoop(t *testing.T) {
	var j Journal = Null{}
	assert.NotPanics(t, func() {
		j.Record("addGroup:any", map[string]any{"name": "g"}, result.OK(nil))
	})
	assert.NoError(t, j.Close())
}

func TestLevelForInfersFromStatus(t *testing.T) {
	assert.Equal(t, LevelInfo, levelFor(result.OK(nil)))
	assert.Equal(t, LevelError, levelFor(result.Err(470, "boom")))
}

func TestSQLiteJournalRecordsRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity.sqlite")

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	j.Record("addGroup:SchedulerManager", map[string]any{"name": "admins"}, result.OK(nil))
	j.Record("deleteGroup:SchedulerManager", map[string]any{"name": "admins"}, result.Err(470, "denied"))

	var count int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM activity`).Scan(&count))
	assert.Equal(t, 2, count)

	var status int
	var typ string
	require.NoError(t, j.db.QueryRow(`SELECT status, type FROM activity WHERE action = ?`, "deleteGroup:SchedulerManager").Scan(&status, &typ))
	assert.Equal(t, 470, status)
	assert.Equal(t, "ERROR", typ)
}

func TestSQLiteJournalTailReturnsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity.sqlite")

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	j.Record("addGroup:SchedulerManager", map[string]any{"name": "admins"}, result.OK(nil))
	j.Record("deleteGroup:SchedulerManager", map[string]any{"name": "admins"}, result.Err(470, "denied"))

	rows, err := j.Tail(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "deleteGroup:SchedulerManager", rows[0].Action)
	assert.Equal(t, 470, rows[0].Status)
}

func TestSQLiteJournalCreatesTableOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.sqlite")

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	var name string
	err = j.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='activity'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "activity", name)
}
