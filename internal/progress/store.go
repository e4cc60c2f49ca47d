package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Store reads and writes the whole Progress structure.
type Store interface {
	Load() (Progress, error)
	Save(Progress) error
}

const (
	progressObject   = "progress"
	progressProperty = "state"
)

// GdataStore keeps progress in the platform's per-user data directory.
type GdataStore struct {
	m      *gdata.Manager
	object string
}

// OpenGdata opens the data directory for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("progress: open data dir: %w", err)
	}
	return &GdataStore{m: m, object: progressObject}, nil
}

// NewGdataStore wraps an already opened manager.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{m: m, object: progressObject}
}

// ForPlayer returns a store for a named player sharing the same data
// directory. Used by the SSH host to keep one save per user.
func (s *GdataStore) ForPlayer(name string) *GdataStore {
	return &GdataStore{m: s.m, object: progressObject + "_" + sanitizeKey(name)}
}

// sanitizeKey maps a user name onto a file-name-safe gdata key.
func sanitizeKey(name string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, name)
	if key == "" {
		return "anonymous"
	}
	return key
}

// Load returns the stored progress. A missing save yields defaults and no
// error; an unreadable or corrupt save yields defaults and the error.
func (s *GdataStore) Load() (Progress, error) {
	if !s.m.ObjectPropExists(s.object, progressProperty) {
		return Default(), nil
	}

	data, err := s.m.LoadObjectProp(s.object, progressProperty)
	if err != nil {
		return Default(), fmt.Errorf("progress: load: %w", err)
	}
	return decode(data)
}

// Save overwrites the stored progress.
func (s *GdataStore) Save(p Progress) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("progress: marshal: %w", err)
	}
	if err := s.m.SaveObjectProp(s.object, progressProperty, data); err != nil {
		return fmt.Errorf("progress: save: %w", err)
	}
	return nil
}

func decode(data []byte) (Progress, error) {
	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("progress: corrupt save: %w", err)
	}
	p.Normalize()
	return p, nil
}

// MemoryStore keeps progress in memory. Used when no data directory is
// available and in tests.
type MemoryStore struct {
	p     Progress
	Saves int
}

// NewMemoryStore creates a store seeded with defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{p: Default()}
}

// Load returns the stored progress.
func (s *MemoryStore) Load() (Progress, error) {
	p := s.p
	p.OwnedCosmeticIDs = append([]string(nil), s.p.OwnedCosmeticIDs...)
	return p, nil
}

// Save overwrites the stored progress.
func (s *MemoryStore) Save(p Progress) error {
	s.p = p
	s.p.OwnedCosmeticIDs = append([]string(nil), p.OwnedCosmeticIDs...)
	s.Saves++
	return nil
}

// LoadOrDefault loads progress and falls back to defaults on any failure.
// A nil store means progress lives only for this process.
func LoadOrDefault(store Store, logger *log.Logger) Progress {
	if store == nil {
		return Default()
	}
	p, err := store.Load()
	if err != nil {
		if logger != nil {
			logger.Warn("Failed to load progress, using defaults", "err", err)
		}
		return Default()
	}
	p.Normalize()
	return p
}
