package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"streakd/internal/models"
	"streakd/internal/testutil"
	"streakd/internal/tracker/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zstdCompressor(t *testing.T) interfaces.CompressorInterface {
	t.Helper()
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	return c
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.bin")

	store := models.NewStateStore()
	store.ApplyCompletion("2026-03-10", 12, "alice", "https://cdn.example/a.png")
	store.Update(func(s *models.TrackerState) {
		s.ReminderTime = "08:30"
		s.LastUrgentNotification = "2026-03-09"
		s.CompletedProblems[1] = struct{}{}
		s.CompletedProblems[146] = struct{}{}
	})

	fm := NewFileManager(zstdCompressor(t), store, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(fileName))

	restored := models.NewStateStore()
	fm2 := NewFileManager(zstdCompressor(t), restored, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(fileName))

	snap := restored.Snapshot()
	assert.Equal(t, "2026-03-10", snap.LastVisitedDate)
	assert.Equal(t, 12, snap.Streak)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, "08:30", snap.ReminderTime)
	assert.Equal(t, "2026-03-09", snap.LastUrgentNotification)
	assert.Equal(t, map[int]struct{}{1: {}, 146: {}}, snap.CompletedProblems)
}

func TestLoadFromFile_MissingFileKeepsDefaults(t *testing.T) {
	store := models.NewStateStore()
	fm := NewFileManager(zstdCompressor(t), store, &testutil.MockLogger{})

	require.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.bin")))

	snap := store.Snapshot()
	assert.True(t, snap.BadgeStreakEnabled)
	assert.True(t, snap.NotificationsEnabled)
	assert.Equal(t, models.DefaultReminderTime, snap.ReminderTime)
}

func TestLoadFromFile_LegacyUncompressedMigration(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.bin")
	legacy := `{"lastVisitedDate": "2026-03-01", "streak": 4, "notificationsEnabled": false, "completedProblems": [1, 20]}`
	require.NoError(t, os.WriteFile(fileName, []byte(legacy), 0644))

	store := models.NewStateStore()
	fm := NewFileManager(zstdCompressor(t), store, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(fileName))

	snap := store.Snapshot()
	assert.Equal(t, "2026-03-01", snap.LastVisitedDate)
	assert.Equal(t, 4, snap.Streak)
	assert.False(t, snap.NotificationsEnabled)
	// Absent booleans default to enabled, not false.
	assert.True(t, snap.BadgeStreakEnabled)
	assert.Equal(t, models.DefaultReminderTime, snap.ReminderTime)
	assert.Equal(t, map[int]struct{}{1: {}, 20: {}}, snap.CompletedProblems)
}

func TestLoadFromFile_GarbageIsAnError(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.bin")
	require.NoError(t, os.WriteFile(fileName, []byte("not json at all"), 0644))

	store := models.NewStateStore()
	fm := NewFileManager(zstdCompressor(t), store, &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(fileName))
}

func TestSaveToFile_CompressorFailure(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.bin")
	compressor := &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("boom") },
	}

	fm := NewFileManager(compressor, models.NewStateStore(), &testutil.MockLogger{})
	assert.Error(t, fm.SaveToFile(fileName))
	_, err := os.Stat(fileName)
	assert.True(t, os.IsNotExist(err), "failed save must not leave a file behind")
}

func TestSaveToFile_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "state.bin")

	fm := NewFileManager(zstdCompressor(t), models.NewStateStore(), &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(fileName))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.bin", entries[0].Name())
}

func TestLoadFromFile_NormalizesEmptyReminderTime(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.bin")

	store := models.NewStateStore()
	store.Update(func(s *models.TrackerState) {
		s.ReminderTime = ""
		s.Streak = -3
	})
	fm := NewFileManager(zstdCompressor(t), store, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(fileName))

	restored := models.NewStateStore()
	require.NoError(t, NewFileManager(zstdCompressor(t), restored, &testutil.MockLogger{}).LoadFromFile(fileName))

	snap := restored.Snapshot()
	assert.Equal(t, models.DefaultReminderTime, snap.ReminderTime)
	assert.Equal(t, 0, snap.Streak)
}
