package boost

import (
	"context"

	"github.com/multiplexcombo/highroller/internal/models"
)

// Service defines the interface for the boost ledger
type Service interface {
	// Grant sets or overwrites a boost on an account; the last grant wins
	Grant(ctx context.Context, input *GrantInput) (*GrantOutput, error)

	// Active returns the boost of the given kind if it has not expired.
	// Expired entries still present on the account are treated as absent.
	Active(account *models.Account, kind string) (models.Boost, bool)

	// Prune removes expired boosts from an account, persisting only when
	// something was removed
	Prune(ctx context.Context, input *PruneInput) (*PruneOutput, error)
}
