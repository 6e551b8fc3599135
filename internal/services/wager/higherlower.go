package wager

import (
	"context"
	"errors"
	"strings"
)

// Predictions for higher-or-lower
const (
	PredictionHigher = "higher"
	PredictionLower  = "lower"
)

const higherLowerMultiplier = 1.9

// HigherOrLower draws two independent cards from a 13-rank deck and
// compares them with strict inequality. An exact rank tie is always a
// house win. A correct call pays bet x 1.9.
func (s *service) HigherOrLower(ctx context.Context, input *HigherOrLowerInput) (*HigherOrLowerOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	prediction := strings.ToLower(strings.TrimSpace(input.Prediction))
	if prediction != PredictionHigher && prediction != PredictionLower {
		return nil, ErrInvalidPrediction
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	// Independent draws: a tie is possible and suits carry no value
	first := s.roller.Roll(13)
	second := s.roller.Roll(13)

	firstCard := Card{Rank: cardRanks[first-1], Suit: cardSuits[s.roller.Intn(4)]}
	secondCard := Card{Rank: cardRanks[second-1], Suit: cardSuits[s.roller.Intn(4)]}

	tie := first == second

	won := false
	if !tie {
		if prediction == PredictionHigher {
			won = second > first
		} else {
			won = second < first
		}
	}

	var payout int64
	if won {
		payout = int64(float64(bet) * higherLowerMultiplier)
	}

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &HigherOrLowerOutput{
		Result:     result,
		FirstCard:  firstCard,
		SecondCard: secondCard,
		Tie:        tie,
		Prediction: prediction,
	}, nil
}
