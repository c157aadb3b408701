// Package store owns the JSON document that backs the whole service. The
// document is cached in memory after the first read and every mutation
// rewrites the file as a whole.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-registration-api/internal/models"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

// Metrics receives store instrumentation events. A nil implementation is
// tolerated everywhere.
type Metrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveDocumentSave(duration time.Duration)
}

// Store loads, caches and persists the registration document. All engine
// mutations go through Mutate so read-modify-write cycles are serialized.
type Store struct {
	dataPath string
	seedPath string
	logger   *zap.Logger
	metrics  Metrics

	mu     sync.Mutex
	cached *models.Document
}

// New constructs a store over the writable data file. When the file is absent
// on first load, the bundled seed at seedPath is copied onto it.
func New(dataPath, seedPath string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dataPath: dataPath, seedPath: seedPath, logger: logger}
}

// WithMetrics attaches an instrumentation sink.
func (s *Store) WithMetrics(m Metrics) *Store {
	s.metrics = m
	return s
}

// Load returns the cached document when present, otherwise reads it from
// disk. The returned document is a shared read-only snapshot: Mutate never
// writes to it in place, so concurrent readers are safe. A missing file
// yields an empty document and no error; an unreadable or unparsable file
// yields an empty document together with a storage error so mutating callers
// can refuse to proceed.
func (s *Store) Load() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Invalidate drops the cached document, forcing the next Load to re-read the
// file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Save serializes the full document and atomically overwrites the data file.
// The cache is refreshed to the saved document.
func (s *Store) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Mutate clones the current document, runs fn against the clone and persists
// it. The whole cycle holds the store lock, so concurrent engine operations
// are strictly serialized; readers holding the previous snapshot never
// observe in-place writes because the cache switches to the clone only after
// a successful save. When fn or the save fails, the clone is discarded and
// the cache keeps the last persisted state.
func (s *Store) Mutate(fn func(*models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}
	doc := current.Clone()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Path returns the writable data file location.
func (s *Store) Path() string {
	return s.dataPath
}

func (s *Store) load() (*models.Document, error) {
	start := time.Now()
	if s.cached != nil {
		s.observeCache(true, time.Since(start))
		return s.cached, nil
	}
	s.observeCache(false, time.Since(start))

	if err := s.ensureDataFile(); err != nil {
		return models.NewDocument(), appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to prepare data file")
	}

	raw, err := os.ReadFile(s.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("data file missing, starting empty", zap.String("path", s.dataPath))
			return models.NewDocument(), nil
		}
		return models.NewDocument(), appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read data file")
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		// Deliberately not cached: a later Mutate must not overwrite a
		// corrupt file with an empty document.
		s.logger.Error("data file unparsable", zap.String("path", s.dataPath), zap.Error(err))
		return models.NewDocument(), appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "data file is not valid JSON")
	}
	if doc.Registrations == nil {
		doc.Registrations = map[string]models.RegistrationBucket{}
	}

	s.cached = doc
	return doc, nil
}

func (s *Store) save(doc *models.Document) error {
	start := time.Now()

	payload, err := marshalDocument(doc)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to serialize document")
	}

	if err := os.MkdirAll(filepath.Dir(s.dataPath), 0o755); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to prepare data directory")
	}

	// Write-temp-then-rename so a crash mid-write never truncates the store.
	tmp, err := os.CreateTemp(filepath.Dir(s.dataPath), filepath.Base(s.dataPath)+".tmp-*")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close() //nolint:errcheck
		os.Remove(tmpName)
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to flush temp file")
	}
	if err := os.Rename(tmpName, s.dataPath); err != nil {
		os.Remove(tmpName)
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to replace data file")
	}

	s.cached = doc
	if s.metrics != nil {
		s.metrics.ObserveDocumentSave(time.Since(start))
	}
	return nil
}

// ensureDataFile copies the bundled seed to the writable location on first
// run. A missing seed is not an error; the service then starts empty.
func (s *Store) ensureDataFile() error {
	if _, err := os.Stat(s.dataPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat data file: %w", err)
	}

	if s.seedPath == "" {
		return nil
	}
	seed, err := os.ReadFile(s.seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dataPath), 0o755); err != nil {
		return fmt.Errorf("prepare data directory: %w", err)
	}
	if err := os.WriteFile(s.dataPath, seed, 0o644); err != nil {
		return fmt.Errorf("copy seed file: %w", err)
	}
	s.logger.Info("seeded data file", zap.String("from", s.seedPath), zap.String("to", s.dataPath))
	return nil
}

// marshalDocument pretty-prints with permissive character escaping, matching
// the format the store has always been written in.
func marshalDocument(doc *models.Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) observeCache(hit bool, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, d)
	}
}
