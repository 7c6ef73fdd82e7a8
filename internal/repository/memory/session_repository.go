package memory

import (
	"time"

	"survey-dashboard-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository creates a store whose sessions expire after ttl of
// inactivity. Expired items are purged every cleanup interval.
func NewSessionRepository(ttl, cleanup time.Duration) *SessionRepository {
	c := cache.New(ttl, cleanup)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.Session) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

// GetOrCreate returns the session for id, creating it on first use. Every call
// refreshes the expiration.
func (r *SessionRepository) GetOrCreate(sessionID string) *entity.Session {
	if s, ok := r.Get(sessionID); ok {
		r.Save(s)
		return s
	}

	s := entity.NewSession(sessionID)
	// Add fails when a concurrent request created it first.
	if err := r.cache.Add(sessionID, s, cache.DefaultExpiration); err != nil {
		if existing, ok := r.Get(sessionID); ok {
			return existing
		}
		r.Save(s)
	}
	return s
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
