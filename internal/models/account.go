package models

import (
	"time"
)

// Account is a player's persistent economic record
type Account struct {
	// ID is the Discord user ID of the account holder
	ID string `json:"id"`

	// Balance is the primary currency amount, never negative
	Balance int64 `json:"balance"`

	// Crypto is the secondary currency amount, tracked independently
	Crypto int64 `json:"crypto"`

	// TotalWon is the cumulative amount won across all wagers
	TotalWon int64 `json:"total_won"`

	// TotalLost is the cumulative amount lost across all wagers
	TotalLost int64 `json:"total_lost"`

	// GamesPlayed is the number of wagers settled for this account
	GamesPlayed int64 `json:"games_played"`

	// CooldownMarks maps a reward kind (daily, weekly, work, ...) to the
	// time it was last claimed; an absent entry means never claimed
	CooldownMarks map[string]time.Time `json:"cooldown_marks,omitempty"`

	// VoteCount is the cumulative number of vote rewards claimed
	VoteCount int64 `json:"vote_count"`

	// Boosts maps a boost kind to its active grant; entries whose expiry
	// has passed are treated as absent
	Boosts map[string]Boost `json:"boosts,omitempty"`

	// CreatedAt is when the account was first seen, set once
	CreatedAt time.Time `json:"created_at"`
}

// LastUsed returns the cooldown mark for a reward kind, or the zero time
// if the kind has never been used.
func (a *Account) LastUsed(kind string) time.Time {
	if a.CooldownMarks == nil {
		return time.Time{}
	}
	return a.CooldownMarks[kind]
}
