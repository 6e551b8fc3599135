package wager

import (
	"context"
	"errors"
	"strings"
)

// Coin sides
const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

// Coinflip flips a coin against a heads/tails prediction. A win pays
// bet x (2 - houseEdge).
func (s *service) Coinflip(ctx context.Context, input *CoinflipInput) (*CoinflipOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	prediction := strings.ToLower(strings.TrimSpace(input.Prediction))
	if prediction != CoinHeads && prediction != CoinTails {
		return nil, ErrInvalidPrediction
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	landed := CoinHeads
	if s.roller.Intn(2) == 1 {
		landed = CoinTails
	}

	won := landed == prediction

	var payout int64
	if won {
		payout = int64(float64(bet) * (2 - s.config.HouseEdge))
	}

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &CoinflipOutput{
		Result:     result,
		Prediction: prediction,
		Landed:     landed,
	}, nil
}
