package guild

import "github.com/multiplexcombo/highroller/internal/models"

// Default display settings for a newly seen guild
const (
	DefaultCurrencyName  = "coins"
	DefaultCurrencyEmoji = "\U0001FA99" // coin
	DefaultCryptoName    = "gems"
	DefaultCryptoEmoji   = "\U0001F48E" // gem stone
)

// GetGuildInput contains parameters for retrieving guild settings
type GetGuildInput struct {
	// GuildID is the Discord guild ID
	GuildID string
}

// UpdateGuildInput contains parameters for updating guild settings
type UpdateGuildInput struct {
	GuildID string

	// Apply mutates the settings in place under the guild's lock
	Apply func(*models.GuildSettings)
}
