package models

import (
	"time"
)

// Boost kinds sold in the shop
const (
	// BoostMultiplier2x doubles wager payouts while active
	BoostMultiplier2x = "multiplier_2x"

	// BoostMultiplier3x triples wager payouts while active
	BoostMultiplier3x = "multiplier_3x"

	// BoostLuckyCharm is a cosmetic win-chance charm
	BoostLuckyCharm = "lucky_charm"

	// BoostWork raises work and overtime pay, never wager payouts
	BoostWork = "work_boost"
)

// Boost is a time-bounded modifier attached to an account
type Boost struct {
	// Effect is the multiplier applied while the boost is active
	Effect float64 `json:"effect"`

	// ExpiresAt is the absolute instant the boost stops applying
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the boost has lapsed as of now. The comparison
// against the clock is the source of truth; stored entries may outlive
// their expiry until pruned.
func (b Boost) Expired(now time.Time) bool {
	return !b.ExpiresAt.After(now)
}
