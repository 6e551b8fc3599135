package guild

import (
	"context"

	"github.com/multiplexcombo/highroller/internal/models"
)

// Repository defines the interface for guild settings persistence
type Repository interface {
	// GetGuild retrieves a guild's settings, creating defaults on first
	// access
	GetGuild(ctx context.Context, input *GetGuildInput) (*models.GuildSettings, error)

	// UpdateGuild applies a mutation to the settings atomically and
	// persists the result
	UpdateGuild(ctx context.Context, input *UpdateGuildInput) (*models.GuildSettings, error)
}
