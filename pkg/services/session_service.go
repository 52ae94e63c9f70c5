package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"product-gallery/pkg/gallery"
)

// SessionStore keeps one gallery grid per visitor. A grid that expires or is
// removed has its carousel unmounted.
type SessionStore struct {
	grids   *cache.Cache
	newGrid func() (*gallery.Grid, error)
	logger  *zap.Logger
}

// NewSessionStore creates a store whose grids expire after ttl of inactivity
func NewSessionStore(ttl time.Duration, newGrid func() (*gallery.Grid, error), logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	grids := cache.New(ttl, ttl)
	grids.OnEvicted(func(id string, v interface{}) {
		logger.Debug("Session evicted", zap.String("session", id))
		v.(*gallery.Grid).Close()
	})
	return &SessionStore{
		grids:   grids,
		newGrid: newGrid,
		logger:  logger,
	}
}

// Grid returns the grid for a session, creating a session when id is unknown.
// The returned id is the one the caller should keep.
func (s *SessionStore) Grid(id string) (*gallery.Grid, string, error) {
	if id != "" {
		if v, found := s.grids.Get(id); found {
			grid := v.(*gallery.Grid)
			// refresh the expiration
			s.grids.SetDefault(id, grid)
			return grid, id, nil
		}
	}

	grid, err := s.newGrid()
	if err != nil {
		return nil, "", err
	}
	id = uuid.NewString()
	s.grids.SetDefault(id, grid)
	s.logger.Debug("Session created", zap.String("session", id))
	return grid, id, nil
}

// Remove ends a session
func (s *SessionStore) Remove(id string) {
	s.grids.Delete(id)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	return s.grids.ItemCount()
}

// Close ends every session
func (s *SessionStore) Close() {
	for id := range s.grids.Items() {
		s.grids.Delete(id)
	}
}
