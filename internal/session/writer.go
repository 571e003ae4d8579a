package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"connectivity-monitor/internal/models"
	"connectivity-monitor/internal/report"
)

// IndexFile is the name of the cross-session index in the sessions directory
const IndexFile = "index.json"

var validID = regexp.MustCompile(`^[0-9]{8}T[0-9]{6}Z$`)

// ErrNotFound is returned when a session file does not exist
var ErrNotFound = errors.New("session not found")

// Writer persists session files and maintains the index next to them
type Writer struct {
	dirs    models.SessionDirectory
	archive models.Archive

	mu sync.Mutex
}

// NewWriter creates a Writer. archive is optional; when set, every persisted
// session is also saved there.
func NewWriter(dirs models.SessionDirectory, archive models.Archive) *Writer {
	return &Writer{dirs: dirs, archive: archive}
}

// FileName returns the session file name for a session id
func FileName(id string) string {
	return id + ".json"
}

// Persist writes the session file, upserts the index entry and returns the
// path of the session file
func (w *Writer) Persist(summary models.SessionSummary) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir, err := w.dirs.SessionsDirectory()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure sessions directory: %w", err)
	}

	name := FileName(summary.ID)
	path := filepath.Join(dir, name)
	payload := models.SessionFile{
		Summary:     summary,
		SummaryText: report.FormatText(summary),
	}
	if err := writeJSON(path, payload); err != nil {
		return "", fmt.Errorf("write session file: %w", err)
	}

	if err := w.updateIndexLocked(dir, name, summary); err != nil {
		return path, fmt.Errorf("update session index: %w", err)
	}

	if w.archive != nil {
		if err := w.archive.SaveSession(summary); err != nil {
			log.Printf("Failed to archive session %s: %v", summary.ID, err)
		}
	}
	return path, nil
}

// Index returns the entries of the index file
func (w *Writer) Index() (map[string]models.IndexEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir, err := w.dirs.SessionsDirectory()
	if err != nil {
		return nil, err
	}
	return readIndex(filepath.Join(dir, IndexFile))
}

// Load reads a persisted session file by id
func (w *Writer) Load(id string) (models.SessionFile, error) {
	if !validID.MatchString(id) {
		return models.SessionFile{}, ErrNotFound
	}
	dir, err := w.dirs.SessionsDirectory()
	if err != nil {
		return models.SessionFile{}, err
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName(id)))
	if errors.Is(err, os.ErrNotExist) {
		return models.SessionFile{}, ErrNotFound
	}
	if err != nil {
		return models.SessionFile{}, fmt.Errorf("read session file: %w", err)
	}

	var file models.SessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return models.SessionFile{}, fmt.Errorf("parse session file: %w", err)
	}
	return file, nil
}

func (w *Writer) updateIndexLocked(dir, name string, summary models.SessionSummary) error {
	path := filepath.Join(dir, IndexFile)
	index, err := readIndex(path)
	if err != nil {
		return err
	}

	index[summary.ID] = models.IndexEntry{
		File:            name,
		Start:           summary.Start,
		End:             summary.End,
		DurationSeconds: summary.DurationSeconds,
		UptimeRatio:     summary.UptimeRatio,
	}
	return writeJSON(path, index)
}

// readIndex loads the index. A missing or unparsable index is treated as empty.
func readIndex(path string) (map[string]models.IndexEntry, error) {
	index := make(map[string]models.IndexEntry)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session index: %w", err)
	}

	var parsed map[string]models.IndexEntry
	if err := json.Unmarshal(data, &parsed); err != nil {
		log.Printf("Ignoring unreadable session index %s: %v", path, err)
		return index, nil
	}
	for id, entry := range parsed {
		index[id] = entry
	}
	return index, nil
}

// writeJSON replaces path atomically with the indented encoding of v
func writeJSON(path string, v any) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
