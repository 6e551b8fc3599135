package random

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/multiplexcombo/highroller/internal/random Roller

// Roller provides the random draws used by the wager engine
type Roller interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Roll returns a uniform value in [1, sides]
	Roll(sides int) int

	// WeightedIndex returns an index drawn proportionally to weights
	WeightedIndex(weights []int) int

	// Shuffle randomizes the order of n elements via swap
	Shuffle(n int, swap func(i, j int))
}

// Config for the default roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// defaultRoller implements Roller using math/rand
type defaultRoller struct {
	random *rand.Rand
}

// New creates a new roller
func New(cfg *Config) *defaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &defaultRoller{
		random: rand.New(source),
	}
}

// Intn returns a uniform value in [0, n)
func (r *defaultRoller) Intn(n int) int {
	return r.random.Intn(n)
}

// Roll returns a uniform value in [1, sides]
func (r *defaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}

// WeightedIndex returns an index drawn proportionally to weights. A nil or
// all-zero weight slice falls back to a uniform draw.
func (r *defaultRoller) WeightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}

	if total <= 0 {
		if len(weights) == 0 {
			return 0
		}
		return r.random.Intn(len(weights))
	}

	pick := r.random.Intn(total)
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Shuffle randomizes the order of n elements via swap
func (r *defaultRoller) Shuffle(n int, swap func(i, j int)) {
	r.random.Shuffle(n, swap)
}
