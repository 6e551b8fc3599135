package models

import (
	"time"
)

// GuildSettings holds per-guild display and admin configuration. The core
// treats these as opaque values; only the command layer interprets them.
type GuildSettings struct {
	// ID is the Discord guild ID
	ID string `json:"id"`

	// CurrencyName is the display name for the primary currency
	CurrencyName string `json:"currency_name"`

	// CurrencyEmoji is the emoji shown next to primary currency amounts
	CurrencyEmoji string `json:"currency_emoji"`

	// CryptoName is the display name for the secondary currency
	CryptoName string `json:"crypto_name"`

	// CryptoEmoji is the emoji shown next to secondary currency amounts
	CryptoEmoji string `json:"crypto_emoji"`

	// Channels maps a purpose (games, leaderboard, ...) to a channel ID
	Channels map[string]string `json:"channels,omitempty"`

	// AdminIDs lists users allowed to run admin commands
	AdminIDs []string `json:"admin_ids,omitempty"`

	// CreatedAt is when the guild was first configured
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the given user is in the guild's admin list.
func (g *GuildSettings) IsAdmin(userID string) bool {
	for _, id := range g.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
