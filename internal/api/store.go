package api

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/dvfile/pkg/dv"
)

type fileRecord struct {
	ID       string
	File     *dv.File
	OpenedAt time.Time
}

// FileStore owns the files opened through the API, keyed by generated ids.
type FileStore struct {
	mu    sync.Mutex
	files map[string]*fileRecord
}

func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string]*fileRecord),
	}
}

func (s *FileStore) Add(f *dv.File, now time.Time) *fileRecord {
	rec := &fileRecord{
		ID:       newFileID(),
		File:     f,
		OpenedAt: now,
	}
	s.mu.Lock()
	s.files[rec.ID] = rec
	s.mu.Unlock()
	return rec
}

func (s *FileStore) Get(id string) (*fileRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.files[id]
	return rec, ok
}

// List returns the records ordered by open time, then id.
func (s *FileStore) List() []*fileRecord {
	s.mu.Lock()
	out := make([]*fileRecord, 0, len(s.files))
	for _, rec := range s.files {
		out = append(out, rec)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].OpenedAt.Before(out[j].OpenedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Remove closes and forgets id. It reports whether id was present.
func (s *FileStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	rec, ok := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, rec.File.Close()
}

// CloseAll closes every file and empties the store.
func (s *FileStore) CloseAll() error {
	s.mu.Lock()
	files := s.files
	s.files = make(map[string]*fileRecord)
	s.mu.Unlock()

	var errs []error
	for _, rec := range files {
		if err := rec.File.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newFileID() string {
	return "dvf_" + uuid.NewString()
}
