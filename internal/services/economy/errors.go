package economy

import (
	"errors"
	"fmt"
	"time"

	"github.com/multiplexcombo/highroller/internal/cooldown"
	"github.com/multiplexcombo/highroller/internal/currency"
)

// Define errors
var (
	// ErrInvalidAmount is returned when an amount string cannot be parsed
	ErrInvalidAmount = currency.ErrInvalidAmount

	// ErrInsufficientFunds is returned when a debit exceeds the balance
	ErrInsufficientFunds = currency.ErrInsufficientFunds

	// ErrNonPositiveAmount is returned for zero or negative amounts
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrSelfTransfer is returned when sender and recipient match
	ErrSelfTransfer = errors.New("cannot transfer to yourself")

	// ErrUnknownReward is returned for a reward kind with no amount
	ErrUnknownReward = errors.New("unknown reward kind")

	// ErrUnknownItem is returned for a shop item that does not exist
	ErrUnknownItem = errors.New("unknown shop item")

	// ErrUnknownMetric is returned for an unsupported leaderboard metric
	ErrUnknownMetric = errors.New("unknown leaderboard metric")
)

// CooldownError reports a reward claimed before its window elapsed
type CooldownError struct {
	// Kind is the gated reward kind
	Kind string

	// Remaining is how long until the claim becomes eligible
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s on cooldown, try again in %s", e.Kind, cooldown.FormatDuration(e.Remaining))
}

// AsCooldownError unwraps err into a *CooldownError when possible
func AsCooldownError(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
