package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionState is the per-student aggregate needed for the end-of-debate
// summary. Strike counts live in the moderation strike store, not here.
type SessionState struct {
	Key            string
	RoundsPlayed   int
	Violations     int
	TurnsSeen      int
	ReadabilitySum float64
	LastLeader     string
}

// SessionRepository keeps debate session aggregates in-process. Entries
// expire an hour after the last turn; an abandoned debate just evaporates.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(state *SessionState) {
	r.cache.Set(state.Key, state, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(key string) (*SessionState, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*SessionState), true
	}
	return nil, false
}

// GetOrCreate returns the existing state or a fresh one for a new key.
func (r *SessionRepository) GetOrCreate(key string) *SessionState {
	if state, found := r.Get(key); found {
		return state
	}
	state := &SessionState{Key: key}
	r.Save(state)
	return state
}

func (r *SessionRepository) Delete(key string) {
	r.cache.Delete(key)
}
