package session

import (
	"sync"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/prometheus"
)

// Registry tracks live sessions by token id. A token that is not in the
// registry is rejected even if its signature is valid.
type Registry struct {
	mu     sync.Mutex
	active map[string]time.Time
	now    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{active: map[string]time.Time{}, now: time.Now}
}

func (r *Registry) Open(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[s.TokenID]; !ok {
		prometheus.IncreaseActiveSessions()
	}
	r.active[s.TokenID] = s.ExpiresAt
}

// Close revokes tokenID and reports whether it was live.
func (r *Registry) Close(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[tokenID]; !ok {
		return false
	}
	delete(r.active, tokenID)
	prometheus.DecreaseActiveSessions()
	return true
}

func (r *Registry) Active(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	_, ok := r.active[tokenID]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	return len(r.active)
}

func (r *Registry) prune() {
	now := r.now()
	for id, exp := range r.active {
		if !exp.IsZero() && !now.Before(exp) {
			delete(r.active, id)
			prometheus.DecreaseActiveSessions()
		}
	}
}
