package grinfer

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Session holds the state shared by all components of one learning or search
// run: the counter for fresh non-terminal names and the single pseudo-random
// stream. A Session is not safe for concurrent use, but separate sessions are
// fully independent of each other.
type Session struct {
	ID     uuid.UUID
	Seed   int64
	rnd    *rand.Rand
	nextNT int
}

// NewSession creates a session with a deterministic random stream seeded by
// seed.
func NewSession(seed int64) *Session {
	return &Session{
		ID:     uuid.New(),
		Seed:   seed,
		rnd:    rand.New(rand.NewSource(seed)),
		nextNT: 1,
	}
}

// Rand returns the session's random stream.
func (s *Session) Rand() *rand.Rand {
	return s.rnd
}

// FreshNT allocates a new, session-unique non-terminal name.
func (s *Session) FreshNT() string {
	name := fmt.Sprintf("t%d", s.nextNT)
	s.nextNT++
	return name
}

// Reserve makes sure that FreshNT will never hand out a name t<n> with
// n ≤ upto. Useful after loading a grammar which already uses generated names.
func (s *Session) Reserve(upto int) {
	if upto >= s.nextNT {
		s.nextNT = upto + 1
	}
}

// Shuffle permutes n elements using the session's random stream.
func (s *Session) Shuffle(n int, swap func(i, j int)) {
	s.rnd.Shuffle(n, swap)
}

// Sample returns k distinct indices out of [0…n), in random order.
// If k ≥ n, all indices are returned (shuffled).
func (s *Session) Sample(n, k int) []int {
	perm := s.rnd.Perm(n)
	if k < n {
		perm = perm[:k]
	}
	return perm
}
