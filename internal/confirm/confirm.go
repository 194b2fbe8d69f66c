// Package confirm implements the two-step delete flow of the HTTP console:
// a delete request parks the action behind a one-time token, and only a
// second request carrying that token performs it.
package confirm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrUnknownToken is returned for expired, consumed or forged tokens.
var ErrUnknownToken = errors.New("confirmation token is unknown or expired")

// Pending is a delete waiting for approval.
type Pending struct {
	Token     string    `json:"confirm_token"`
	Tenant    string    `json:"tenant"`
	Resource  string    `json:"resource"`
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id,omitempty"`
	Prompt    string    `json:"prompt"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store keeps pending deletes in memory until they expire.
type Store struct {
	// mu makes lookup and removal one step, so a token is taken only once.
	mu    sync.Mutex
	items *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a store whose tokens live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Park registers a pending delete. Token and ExpiresAt are filled in.
func (s *Store) Park(p Pending) Pending {
	p.Token = uuid.NewString()
	p.ExpiresAt = s.now().Add(s.ttl)
	s.items.Set(p.Token, p, s.ttl)
	return p
}

// Take consumes a token of tenant. It succeeds at most once per token, and
// a token parked for another tenant is left untouched.
func (s *Store) Take(tenant, token string) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lookup(tenant, token)
	if !ok {
		return Pending{}, ErrUnknownToken
	}
	s.items.Delete(token)
	return p, nil
}

// Cancel drops a pending delete of tenant. It reports whether the token was pending.
func (s *Store) Cancel(tenant, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(tenant, token); !ok {
		return false
	}
	s.items.Delete(token)
	return true
}

func (s *Store) lookup(tenant, token string) (Pending, bool) {
	v, ok := s.items.Get(token)
	if !ok {
		return Pending{}, false
	}
	p := v.(Pending)
	if p.Tenant != tenant {
		return Pending{}, false
	}
	return p, true
}

// Approved is the Confirmer handed to a view once a token has been taken:
// the user already said yes.
type Approved struct{}

func (Approved) Confirm(context.Context, string) bool { return true }

// Declined never approves.
type Declined struct{}

func (Declined) Confirm(context.Context, string) bool { return false }
