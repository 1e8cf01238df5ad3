package domain

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler permutes option sets uniformly at random.
// It is safe for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler creates a Shuffler seeded from the current time.
func NewShuffler() *Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

// NewSeededShuffler creates a Shuffler with a fixed seed, for reproducible output.
func NewSeededShuffler(seed int64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// Shuffle permutes items in place with Fisher-Yates: walking from the last
// index down to 1, each element is swapped with one at a uniformly chosen
// index in [0, i].
func (s *Shuffler) Shuffle(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(items) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
