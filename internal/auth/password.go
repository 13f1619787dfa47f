package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher wraps bcrypt behind a weighted semaphore so a burst of
// registrations cannot monopolize every scheduler thread with hashing work.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher builds a Hasher with the given bcrypt cost and concurrency cap.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// Hash produces a salted bcrypt hash of the plaintext.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a password against its stored hash. It reports false for
// any mismatch, including a malformed hash, without distinguishing the cause.
func (h *Hasher) Compare(ctx context.Context, hashed, plain string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
