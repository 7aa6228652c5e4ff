package catalog

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store keeps the active catalog and swaps it atomically on reload.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	dir     string
	logger  *zap.Logger
}

// NewStore loads the catalog from dir (bundled data when empty).
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := Load(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &Store{current: cat, dir: dir, logger: logger}, nil
}

// NewStaticStore wraps an already loaded catalog. Reload keeps it as is.
func NewStaticStore(cat *Catalog) *Store {
	return &Store{current: cat, logger: zap.NewNop()}
}

// Current returns the catalog in use.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the catalog source. On failure the previous catalog stays
// active.
func (s *Store) Reload() error {
	if s.dir == "" {
		s.logger.Debug("bundled catalog in use, reload skipped")
		return nil
	}

	cat, err := Load(s.dir, s.logger)
	if err != nil {
		return fmt.Errorf("reload catalog from %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.current = cat
	s.mu.Unlock()

	s.logger.Info("catalog reloaded", zap.String("dir", s.dir), zap.Int("ingredients", len(cat.ingredients)))
	return nil
}
