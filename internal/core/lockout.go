package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/illarion/pinguard/internal/storage"
)

const (
	// DefaultMaxAttempts is the failed-attempt threshold before lockout.
	DefaultMaxAttempts = 5

	// DefaultLockoutDuration is the length of the lockout window.
	DefaultLockoutDuration = 5 * time.Minute

	failedAttemptsRecord = "failed_attempts"
	lockoutUntilRecord   = "lockout_until"
)

// ErrInvalidPolicy reports non-positive lockout configuration.
var ErrInvalidPolicy = errors.New("maxAttempts and lockoutDuration must be positive")

// LockoutPolicy enforces a failed-attempt limit around PIN verification.
// After maxAttempts consecutive failures, validation is refused until the
// lockout window elapses. The policy never returns errors; storage
// failures resolve to denial.
type LockoutPolicy struct {
	mu              sync.Mutex
	creds           *CredentialStore
	scalars         storage.ScalarStore
	maxAttempts     int
	lockoutDuration time.Duration
	now             func() time.Time
}

// NewLockoutPolicy creates a policy over creds, persisting its counters in
// scalars. Both maxAttempts and lockoutDuration must be positive; use
// DefaultMaxAttempts and DefaultLockoutDuration for the standard policy.
func NewLockoutPolicy(creds *CredentialStore, scalars storage.ScalarStore, maxAttempts int, lockoutDuration time.Duration) (*LockoutPolicy, error) {
	if maxAttempts <= 0 || lockoutDuration <= 0 {
		return nil, ErrInvalidPolicy
	}
	return &LockoutPolicy{
		creds:           creds,
		scalars:         scalars,
		maxAttempts:     maxAttempts,
		lockoutDuration: lockoutDuration,
		now:             time.Now,
	}, nil
}

// Validate checks candidate against the stored PIN, honoring the lockout
// state. During a lockout it returns false without consulting the
// credential store or touching the counter. A success resets the counter;
// a failure increments it and opens the lockout window once the threshold
// is reached.
func (p *LockoutPolicy) Validate(candidate string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.refreshLocked() {
		return false
	}

	if p.creds.Verify(candidate) {
		p.scalars.Delete(failedAttemptsRecord)
		return true
	}

	count := p.failedCount() + 1
	p.setFailedCount(count)
	if count >= p.maxAttempts {
		p.setLockoutUntil(p.now().Add(p.lockoutDuration))
	}
	return false
}

// CheckStatus re-evaluates the lockout window. Once the window has
// elapsed it clears both the lockout and the failed-attempt count.
// Idempotent.
func (p *LockoutPolicy) CheckStatus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshLocked()
}

// ErrorMessage returns an advisory for the current state: the remaining
// lockout in whole minutes (rounded up, minimum 1) while locked, a generic
// invalid-PIN message after failed attempts below the threshold, and an
// empty string otherwise.
func (p *LockoutPolicy) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.refreshLocked() {
		until, _ := p.lockoutUntil()
		minutes := int((until.Sub(p.now()) + time.Minute - 1) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("Too many failed attempts. Try again in %d minute(s).", minutes)
	}

	if count := p.failedCount(); count > 0 && count < p.maxAttempts {
		return "Invalid PIN."
	}
	return ""
}

// ResetFailedAttempts clears the failed-attempt count and any lockout.
func (p *LockoutPolicy) ResetFailedAttempts() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scalars.Delete(failedAttemptsRecord)
	p.scalars.Delete(lockoutUntilRecord)
}

// FailedAttempts returns the current failed-attempt count.
func (p *LockoutPolicy) FailedAttempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshLocked()
	return p.failedCount()
}

// refreshLocked reports whether a lockout window is open, clearing both
// the window and the counter once it has elapsed. Callers hold p.mu.
func (p *LockoutPolicy) refreshLocked() bool {
	until, ok := p.lockoutUntil()
	if !ok {
		return false
	}
	if p.now().Before(until) {
		return true
	}
	p.scalars.Delete(lockoutUntilRecord)
	p.scalars.Delete(failedAttemptsRecord)
	return false
}

func (p *LockoutPolicy) failedCount() int {
	data, err := p.scalars.Get(failedAttemptsRecord)
	if err != nil || len(data) != 4 {
		return 0
	}
	return int(binary.BigEndian.Uint32(data))
}

func (p *LockoutPolicy) setFailedCount(count int) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(count))
	p.scalars.Put(failedAttemptsRecord, data)
}

func (p *LockoutPolicy) lockoutUntil() (time.Time, bool) {
	data, err := p.scalars.Get(lockoutUntilRecord)
	if err != nil {
		return time.Time{}, false
	}
	var until time.Time
	if err := until.UnmarshalBinary(data); err != nil {
		return time.Time{}, false
	}
	return until, true
}

func (p *LockoutPolicy) setLockoutUntil(until time.Time) {
	data, err := until.MarshalBinary()
	if err != nil {
		return
	}
	p.scalars.Put(lockoutUntilRecord, data)
}
