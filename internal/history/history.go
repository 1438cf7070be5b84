// Package history persists the generation log: an ordered, bounded list of
// prior generations stored as a single JSON file. The file is rewritten in
// full after every mutation; read or write failures are logged and swallowed
// so a broken history never blocks the application.
package history

import (
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/glimt/glimt/internal/fsutil"
)

// MaxRecords bounds the log; the oldest record is evicted on overflow.
const MaxRecords = 50

// Record is one prior generation. Immutable once created except for
// in-place image replacement after a crop is saved.
type Record struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	ImageData   string    `json:"imageData"` // data URL
	AspectRatio string    `json:"aspectRatio"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store owns the in-memory log and its backing file.
type Store struct {
	path    string
	records []Record
}

// NewStore creates a store bound to path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted log. A missing or unreadable file yields an
// empty log; the condition is logged, never surfaced.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("Could not read history", "path", s.path, "err", err)
		}
		s.records = nil
		return
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("Ignoring corrupt history", "path", s.path, "err", err)
		s.records = nil
		return
	}
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	s.records = records
}

// Append prepends a new record and persists. Returns the stored record.
func (s *Store) Append(prompt, imageData, aspectRatio string) Record {
	rec := Record{
		ID:          uuid.NewString(),
		Prompt:      prompt,
		ImageData:   imageData,
		AspectRatio: aspectRatio,
		CreatedAt:   time.Now(),
	}
	s.records = append([]Record{rec}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	s.persist()
	return rec
}

// UpdateImageByID replaces the image of the record with the given ID,
// leaving prompt and aspect ratio untouched. IDs stay stable while new
// records are prepended, so concurrent appends cannot redirect the update.
// Unknown IDs are a no-op.
func (s *Store) UpdateImageByID(id, imageData string) {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].ImageData = imageData
			s.persist()
			return
		}
	}
}

// Clear empties the log and persists the empty representation.
func (s *Store) Clear() {
	s.records = nil
	s.persist()
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of the log, newest first.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record at index.
func (s *Store) Get(index int) (Record, bool) {
	if index < 0 || index >= len(s.records) {
		return Record{}, false
	}
	return s.records[index], true
}

func (s *Store) persist() {
	data, err := json.Marshal(s.records)
	if err != nil {
		log.Warn("Could not encode history", "err", err)
		return
	}
	if s.records == nil {
		data = []byte("[]")
	}
	if err := fsutil.AtomicWriteFile(s.path, data, 0644); err != nil {
		log.Warn("Could not persist history", "path", s.path, "err", err)
	}
}
