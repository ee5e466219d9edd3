package tracker

import (
	"os"
	"sort"

	"streakd/internal/models"
	"streakd/internal/providers"
	"streakd/internal/tracker/interfaces"

	json "github.com/goccy/go-json"
)

// FileManager persists the tracker state to a single zstd-compressed JSON
// file. Saves write to a temp file and rename into place so a crash never
// leaves a torn state file behind.
type FileManager struct {
	store      *models.StateStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.StateStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snap := f.store.Snapshot()

	completed := make([]int, 0, len(snap.CompletedProblems))
	for id := range snap.CompletedProblems {
		completed = append(completed, id)
	}
	sort.Ints(completed)

	envelope := models.StateFileV2{
		Version:           models.StateFileVersion,
		State:             snap,
		CompletedProblems: completed,
	}

	jsonData, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		// Files from before compression was introduced are plain JSON.
		decompressed = data
	}

	// Current format: versioned envelope.
	var envelope models.StateFileV2
	if err := json.Unmarshal(decompressed, &envelope); err == nil && envelope.Version == models.StateFileVersion {
		state := envelope.State
		state.CompletedProblems = make(map[int]struct{}, len(envelope.CompletedProblems))
		for _, id := range envelope.CompletedProblems {
			state.CompletedProblems[id] = struct{}{}
		}
		normalize(&state)
		f.store.Replace(state)
		return nil
	}

	// Legacy format: version-less flat object with absent-means-default
	// booleans.
	f.logger.Warnf(providers.TypeApp, "Inconsistent state file found, try to migrate from old data format")
	var legacy models.LegacyStateFile
	if err := json.Unmarshal(decompressed, &legacy); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	f.store.Replace(legacy.ToState())
	return nil
}

// normalize fills defaults for fields the file left empty, matching the
// undefined-reads-as-default storage semantics.
func normalize(state *models.TrackerState) {
	if state.ReminderTime == "" {
		state.ReminderTime = models.DefaultReminderTime
	}
	if state.Streak < 0 {
		state.Streak = 0
	}
}
