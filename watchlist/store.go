// Package watchlist persists the user's saved movies.
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinesphere/tmdb"
)

// DefaultKey is the storage slot holding the watchlist
const DefaultKey = "cinesphere_watchlist"

// Option configures a Store.
type Option func(*Store)

// WithKey stores the watchlist under a different slot
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store is the user's watchlist: movie snapshots ordered newest first with
// no duplicate IDs. The whole list is rewritten on every change.
//
// The mutex only serialises updates made through this Store. Two processes,
// or two Stores sharing a slot, can overwrite each other's changes.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	logger  zerolog.Logger
}

// New creates a watchlist backed by storage
func New(storage Storage, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage slot in use
func (s *Store) Key() string {
	return s.key
}

// List returns the saved movies, most recently added first.
// It never fails: missing or unreadable data yields an empty list.
func (s *Store) List() []tmdb.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Contains reports whether a movie with id is saved
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.load(), id) >= 0
}

// Add saves movie at the front of the list. Adding a movie that is already
// saved changes nothing and performs no write.
func (s *Store) Add(movie tmdb.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.load()
	if indexOf(movies, movie.ID) >= 0 {
		return nil
	}

	updated := make([]tmdb.Movie, 0, len(movies)+1)
	updated = append(updated, movie)
	updated = append(updated, movies...)

	if err := s.save(updated); err != nil {
		return err
	}

	s.logger.Debug().Int("id", movie.ID).Str("title", movie.Title).Msg("Added movie to watchlist")
	return nil
}

// Remove deletes the movie with id. Removing an unsaved movie is a no-op.
func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.load()
	idx := indexOf(movies, id)
	if idx < 0 {
		return nil
	}

	updated := make([]tmdb.Movie, 0, len(movies)-1)
	updated = append(updated, movies[:idx]...)
	updated = append(updated, movies[idx+1:]...)

	if err := s.save(updated); err != nil {
		return err
	}

	s.logger.Debug().Int("id", id).Msg("Removed movie from watchlist")
	return nil
}

// Toggle adds movie when it is not saved and removes it otherwise.
// It reports whether the movie is saved afterwards.
func (s *Store) Toggle(movie tmdb.Movie) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.load()
	idx := indexOf(movies, movie.ID)

	var updated []tmdb.Movie
	if idx >= 0 {
		updated = append(updated, movies[:idx]...)
		updated = append(updated, movies[idx+1:]...)
	} else {
		updated = append(updated, movie)
		updated = append(updated, movies...)
	}

	if err := s.save(updated); err != nil {
		return idx >= 0, err
	}
	return idx < 0, nil
}

// Clear removes every saved movie
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// load reads the current list; callers hold s.mu
func (s *Store) load() []tmdb.Movie {
	data, err := s.storage.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("Failed to read watchlist, treating as empty")
		}
		return []tmdb.Movie{}
	}

	var movies []tmdb.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Watchlist data is corrupt, treating as empty")
		return []tmdb.Movie{}
	}
	if movies == nil {
		return []tmdb.Movie{}
	}
	return dedupe(movies)
}

// dedupe keeps the first entry for each ID, which is the newest one
func dedupe(movies []tmdb.Movie) []tmdb.Movie {
	seen := make(map[int]struct{}, len(movies))
	out := movies[:0]
	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// save writes the full list; callers hold s.mu
func (s *Store) save(movies []tmdb.Movie) error {
	if movies == nil {
		movies = []tmdb.Movie{}
	}

	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := s.storage.Set(s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Failed to write watchlist")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func indexOf(movies []tmdb.Movie, id int) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}
