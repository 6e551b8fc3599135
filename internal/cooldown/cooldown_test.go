package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CooldownTestSuite struct {
	suite.Suite
	now time.Time
}

func (s *CooldownTestSuite) SetupTest() {
	s.now = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestCooldownTestSuite(t *testing.T) {
	suite.Run(t, new(CooldownTestSuite))
}

func (s *CooldownTestSuite) TestRemainingNeverUsed() {
	s.Equal(time.Duration(0), RemainingFor(time.Time{}, KindDaily, s.now))
}

func (s *CooldownTestSuite) TestRemainingInsideWindow() {
	lastUsed := s.now.Add(-time.Hour)
	s.Equal(23*time.Hour, RemainingFor(lastUsed, KindDaily, s.now))
}

func (s *CooldownTestSuite) TestRemainingBoundary() {
	// One second shy of the work window is still gated
	lastUsed := s.now.Add(-(time.Hour - time.Second))
	s.Equal(time.Second, RemainingFor(lastUsed, KindWork, s.now))

	// Exactly at the window boundary is eligible
	lastUsed = s.now.Add(-time.Hour)
	s.Equal(time.Duration(0), RemainingFor(lastUsed, KindWork, s.now))
}

func (s *CooldownTestSuite) TestRemainingUnknownKindFailsOpen() {
	lastUsed := s.now.Add(-time.Second)
	s.Equal(time.Duration(0), RemainingFor(lastUsed, "mystery", s.now))
}

func (s *CooldownTestSuite) TestWindow() {
	s.Equal(24*time.Hour, Window(KindDaily))
	s.Equal(7*24*time.Hour, Window(KindWeekly))
	s.Equal(time.Hour, Window(KindWork))
	s.Equal(2*time.Hour, Window(KindOvertime))
	s.Equal(12*time.Hour, Window(KindVote))
	s.Equal(5*time.Minute, Window(KindSpin))
	s.Equal(time.Duration(0), Window("mystery"))
}

func (s *CooldownTestSuite) TestFormatDuration() {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{-time.Minute, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h"},
		{time.Hour + 5*time.Minute + 20*time.Second, "1h 5m 20s"},
		{25 * time.Hour, "1d 1h"},
		// Seconds are dropped once days are present
		{24*time.Hour + 30*time.Second, "1d"},
		{48*time.Hour + 3*time.Minute + 10*time.Second, "2d 3m"},
	}

	for _, tc := range cases {
		s.Equal(tc.expected, FormatDuration(tc.d), "formatting %s", tc.d)
	}
}
