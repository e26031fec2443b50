// Package verification implements the password-reset code store.  Codes
// are 6-digit numerics keyed by email, valid for ten minutes and single
// use.  The store is an injected abstraction so deployments can choose the
// in-process map (single instance, codes lost on restart) or Redis (shared
// across instances and restarts).
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// TTL is how long an issued code stays redeemable.
const TTL = 10 * time.Minute

// Store issues and redeems verification codes keyed by email.  Redeem
// semantics are strict single-use: a successful Consume deletes the code,
// and an expired code is deleted on the check that discovers it.
type Store interface {
	// Put records a fresh code for the email, replacing any previous one.
	Put(ctx context.Context, email, code string) error
	// Consume atomically verifies and deletes the code.  It returns true
	// only when the stored code matches and has not expired.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// NewCode returns a random 6-digit numeric code.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

type entry struct {
	code     string
	issuedAt time.Time
}

// MemoryStore is the in-process backend: a mutex-guarded map with lazy
// expiry, matching the original single-instance deployment.  Stale entries
// linger until overwritten or checked; there is no background sweep.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]entry
	now   func() time.Time
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]entry), now: time.Now}
}

// Put records the code, overwriting any in-flight one for the same email.
func (s *MemoryStore) Put(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = entry{code: code, issuedAt: s.now()}
	return nil
}

// Consume verifies and deletes the code.  An expired entry is removed even
// though the call reports failure, so retrying with the same code cannot
// succeed later.
func (s *MemoryStore) Consume(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[email]
	if !ok || e.code != code {
		return false, nil
	}
	if s.now().Sub(e.issuedAt) > TTL {
		delete(s.codes, email)
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}
