package wager

import (
	"errors"

	"github.com/multiplexcombo/highroller/internal/currency"
)

// Define errors
var (
	// ErrInvalidAmount is returned when the bet text cannot be parsed
	ErrInvalidAmount = currency.ErrInvalidAmount

	// ErrInsufficientFunds is returned when the bet exceeds the balance
	ErrInsufficientFunds = currency.ErrInsufficientFunds

	// ErrInvalidPrediction is returned when a game prediction is outside
	// its allowed range; nothing is debited in that case
	ErrInvalidPrediction = errors.New("invalid prediction")

	// ErrInvalidSides is returned for an unsupported dice type
	ErrInvalidSides = errors.New("unsupported dice type")
)
