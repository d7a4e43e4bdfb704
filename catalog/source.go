package catalog

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Source serves the current catalog of a file and rereads the file after it
// changes.
type Source struct {
	path string

	mu      sync.Mutex
	current *Catalog
	stale   bool
	watcher *fsnotify.Watcher
}

func NewSource(path string) (*Source, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &Source{path: path, current: c}, nil
}

// Catalog returns the current catalog, rereading the file first when it has
// changed. A file that no longer parses leaves the previous catalog in place.
func (s *Source) Catalog() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		s.stale = false
		if c, err := Load(s.path); err != nil {
			log.Error().Err(err).
				Str("catalog_file", s.path).
				Msg("failed to reload catalog")
		} else {
			s.current = c
		}
	}

	return s.current
}

// Invalidate marks the catalog for rereading on next access.
func (s *Source) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Watch starts watching the catalog file. It is a no-op for the default
// catalog.
func (s *Source) Watch() error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	name := filepath.Clean(s.path)
	go func() {
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}

				if filepath.Clean(e.Name) != name {
					continue
				}

				log.Debug().
					Str("file", e.Name).
					Str("event", e.Op.String()).
					Msg("catalog file event occurs")
				s.Invalidate()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}

				log.Error().Err(err).Msg("catalog watcher error")
			}
		}
	}()

	return nil
}

func (s *Source) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}

	return w.Close()
}
