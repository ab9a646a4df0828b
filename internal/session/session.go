// Package session tracks who the client is acting for. A Session starts in
// the initializing state and moves to authenticated or unauthenticated once
// the principal is known; observers are told about every transition.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

var ErrNoPrincipal = errors.New("principal ID is required")

type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Tokens are the identity service credentials held for the principal. They
// are empty for dev-mode sessions.
type Tokens struct {
	AccessToken  string    `yaml:"access_token,omitempty"`
	IDToken      string    `yaml:"id_token,omitempty"`
	RefreshToken string    `yaml:"refresh_token,omitempty"`
	ExpiresAt    time.Time `yaml:"expires_at,omitempty"`
}

// Snapshot is a point-in-time view of a Session. Principal is nil unless the
// session is authenticated.
type Snapshot struct {
	State     State
	Principal *model.Principal
	Loading   bool
}

type Session struct {
	// deliver is held from a state change until every subscriber has seen
	// it, so subscribers observe transitions in the order they happened.
	deliver sync.Mutex

	mu        sync.Mutex
	state     State
	principal model.Principal
	tokens    Tokens
	subs      []subscriber
	nextSub   int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

func New() *Session {
	return &Session{}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Principal returns the signed-in principal, or false when there is none.
func (s *Session) Principal() (model.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return model.Principal{}, false
	}
	return s.principal, true
}

func (s *Session) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *Session) SignIn(p model.Principal, tokens Tokens) error {
	if p.ID == "" {
		return ErrNoPrincipal
	}
	s.transition(func() bool {
		s.state = StateAuthenticated
		s.principal = p
		s.tokens = tokens
		return true
	})
	return nil
}

func (s *Session) SignOut() {
	s.transition(func() bool {
		s.state = StateUnauthenticated
		s.principal = model.Principal{}
		s.tokens = Tokens{}
		return true
	})
}

// Resolve ends initialization without a principal. It does nothing once the
// session has left the initializing state.
func (s *Session) Resolve() {
	s.transition(func() bool {
		if s.state != StateInitializing {
			return false
		}
		s.state = StateUnauthenticated
		return true
	})
}

// Subscribe registers fn for every later transition. Callbacks run in
// registration order on the goroutine that caused the transition, outside the
// session lock. A callback may read the session but must not change it.
func (s *Session) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		})
	}
}

func (s *Session) transition(apply func() bool) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Loading: s.state == StateInitializing}
	if s.state == StateAuthenticated {
		p := s.principal
		snap.Principal = &p
	}
	return snap
}
