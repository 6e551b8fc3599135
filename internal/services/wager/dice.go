package wager

import (
	"context"
	"errors"
)

// RollDice rolls a die against a number prediction. An exact hit pays
// bet x sides x (1 - houseEdge); the prediction is checked before any
// debit so an out-of-range call costs nothing.
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	switch input.Sides {
	case 6, 20, 100:
	default:
		return nil, ErrInvalidSides
	}

	if input.Prediction < 1 || input.Prediction > input.Sides {
		return nil, ErrInvalidPrediction
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	rolled := s.roller.Roll(input.Sides)
	won := rolled == input.Prediction

	var payout int64
	if won {
		payout = int64(float64(bet) * float64(input.Sides) * (1 - s.config.HouseEdge))
	}

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &RollDiceOutput{
		Result:     result,
		Sides:      input.Sides,
		Prediction: input.Prediction,
		Rolled:     rolled,
	}, nil
}
