package boost

import (
	"time"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/models"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
)

// Config holds configuration for the boost service
type Config struct {
	// Repository dependencies
	AccountRepo accountRepo.Repository

	// Clock used for expiry comparisons; defaults to the system clock
	Clock clock.Clock
}

// GrantInput contains parameters for granting a boost
type GrantInput struct {
	// AccountID is the account receiving the boost
	AccountID string

	// Kind identifies the boost slot; granting over an unexpired boost of
	// the same kind overwrites it
	Kind string

	// Effect is the multiplier applied while active
	Effect float64

	// Duration is how long the boost lasts from now
	Duration time.Duration
}

// GrantOutput contains the result of granting a boost
type GrantOutput struct {
	// Boost is the stored grant, including its absolute expiry
	Boost models.Boost
}

// PruneInput contains parameters for pruning expired boosts
type PruneInput struct {
	AccountID string
}

// PruneOutput contains the result of pruning
type PruneOutput struct {
	// Account is the account after pruning
	Account *models.Account

	// Removed is how many expired entries were dropped
	Removed int
}
