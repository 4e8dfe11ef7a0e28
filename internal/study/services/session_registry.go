package services

import (
	"sync"
	"time"

	"github.com/githoaitandev/my-flashcard/pkg/logger"
	"go.uber.org/zap"
)

// sessionTTL bounds how long an abandoned session stays in memory
const sessionTTL = time.Hour

// SessionRegistry holds the live practice trackers, keyed by token.
// Trackers are session-local; the registry lock only guards the map.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*PracticeTracker
}

var registry = NewSessionRegistry()

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*PracticeTracker),
	}
}

// Put stores a tracker under its token
func (r *SessionRegistry) Put(tracker *PracticeTracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[tracker.Token] = tracker
}

// Get looks up a tracker by token
func (r *SessionRegistry) Get(token string) (*PracticeTracker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tracker, ok := r.sessions[token]
	return tracker, ok
}

// Remove drops a tracker and cancels its pending callbacks
func (r *SessionRegistry) Remove(token string) {
	r.mu.Lock()
	tracker, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if ok {
		tracker.Teardown()
	}
}

// sweep purges sessions idle past their TTL
func (r *SessionRegistry) sweep(ttl time.Duration) {
	r.mu.Lock()
	var expired []*PracticeTracker
	for token, tracker := range r.sessions {
		if tracker.Idle(ttl) {
			expired = append(expired, tracker)
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()

	for _, tracker := range expired {
		tracker.Teardown()
	}
	if len(expired) > 0 {
		logger.Info("expired idle practice sessions", zap.Int("count", len(expired)))
	}
}

// StartSessionSweeper launches the background purge loop
func StartSessionSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			registry.sweep(sessionTTL)
		}
	}()
}
