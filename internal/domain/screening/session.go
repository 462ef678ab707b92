package screening

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one questionnaire run held in memory. Sessions expire after a
// TTL measured from the last interaction.
type Session struct {
	ID        string
	Variant   string
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registry holds active sessions, keyed by id. It is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRegistry creates a session registry with the given TTL and starts a
// background sweep that evicts expired sessions.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Close stops the background sweep.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweep() {
	interval := r.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.evictExpired(now)
		}
	}
}

func (r *Registry) evictExpired(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if now.Sub(s.UpdatedAt) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

// Create starts a new session for the given variant.
func (r *Registry) Create(variant string) (*Session, error) {
	def, err := Lookup(variant)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		Variant:   def.Variant,
		State:     Start(def),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns a copy of the session with the given id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

// Answer applies a yes/no answer to the session.
func (r *Registry) Answer(id string, answer bool) (*Session, error) {
	return r.transition(id, func(def *Definition, s State) (State, error) {
		return Answer(def, s, answer)
	})
}

// AnswerAge applies an age bucket selection to the session.
func (r *Registry) AnswerAge(id, value string) (*Session, error) {
	return r.transition(id, func(def *Definition, s State) (State, error) {
		return AnswerAge(def, s, value)
	})
}

// Reset restarts the session's questionnaire from the first question.
func (r *Registry) Reset(id string) (*Session, error) {
	return r.transition(id, func(def *Definition, s State) (State, error) {
		return Reset(def), nil
	})
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) transition(id string, fn func(*Definition, State) (State, error)) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	def, err := Lookup(s.Variant)
	if err != nil {
		return nil, err
	}

	next, err := fn(def, s.State)
	if err != nil {
		return nil, err
	}
	s.State = next
	s.UpdatedAt = time.Now()

	copied := *s
	return &copied, nil
}
