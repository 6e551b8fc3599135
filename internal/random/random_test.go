package random

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RollerTestSuite struct {
	suite.Suite
	roller Roller
}

func (s *RollerTestSuite) SetupTest() {
	s.roller = New(&Config{Seed: 42})
}

func TestRollerTestSuite(t *testing.T) {
	suite.Run(t, new(RollerTestSuite))
}

func (s *RollerTestSuite) TestRollRange() {
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.roller.Roll(6)
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
		seen[v] = true
	}

	// A uniform die hits every face in a thousand rolls
	s.Len(seen, 6)
}

func (s *RollerTestSuite) TestRollInvalidSidesDefaults() {
	for i := 0; i < 100; i++ {
		v := s.roller.Roll(0)
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
	}
}

func (s *RollerTestSuite) TestIntnRange() {
	for i := 0; i < 1000; i++ {
		v := s.roller.Intn(37)
		s.GreaterOrEqual(v, 0)
		s.Less(v, 37)
	}
}

func (s *RollerTestSuite) TestSeedIsDeterministic() {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 100; i++ {
		s.Equal(a.Intn(1000), b.Intn(1000))
	}
}

func (s *RollerTestSuite) TestWeightedIndexSingleWinner() {
	weights := []int{0, 0, 5, 0}
	for i := 0; i < 100; i++ {
		s.Equal(2, s.roller.WeightedIndex(weights))
	}
}

func (s *RollerTestSuite) TestWeightedIndexCoversAll() {
	weights := []int{1, 3, 5}
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		idx := s.roller.WeightedIndex(weights)
		s.GreaterOrEqual(idx, 0)
		s.Less(idx, len(weights))
		seen[idx] = true
	}
	s.Len(seen, 3)
}

func (s *RollerTestSuite) TestWeightedIndexSkewsTowardHeavy() {
	weights := []int{1, 99}
	heavy := 0
	for i := 0; i < 1000; i++ {
		if s.roller.WeightedIndex(weights) == 1 {
			heavy++
		}
	}
	s.Greater(heavy, 900)
}

func (s *RollerTestSuite) TestWeightedIndexZeroWeightsFallsBack() {
	weights := []int{0, 0, 0}
	for i := 0; i < 100; i++ {
		idx := s.roller.WeightedIndex(weights)
		s.GreaterOrEqual(idx, 0)
		s.Less(idx, len(weights))
	}

	s.Equal(0, s.roller.WeightedIndex(nil))
}

func (s *RollerTestSuite) TestShufflePermutes() {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s.roller.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	seen := make(map[int]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	s.Len(seen, 10)
}
