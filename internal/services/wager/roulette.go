package wager

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Wheel colors
const (
	ColorRed   = "red"
	ColorBlack = "black"
	ColorGreen = "green"
)

// Payout multipliers. Green and exact numbers pay 35:1; red/black pays
// 1.8:1, the even-money line less the house edge.
const (
	rouletteNumberMultiplier = 35.0
	rouletteColorMultiplier  = 1.8
)

// redNumbers is the standard single-zero wheel partition; 0 is green and
// everything else is black.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func rouletteColor(number int) string {
	switch {
	case number == 0:
		return ColorGreen
	case redNumbers[number]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// Roulette spins a 0-36 wheel against a color or exact-number bet.
func (s *service) Roulette(ctx context.Context, input *RouletteInput) (*RouletteOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	prediction := strings.ToLower(strings.TrimSpace(input.Prediction))

	betColor := ""
	betNumber := -1

	switch prediction {
	case ColorRed, ColorBlack, ColorGreen:
		betColor = prediction
	default:
		n, err := strconv.Atoi(prediction)
		if err != nil || n < 0 || n > 36 {
			return nil, ErrInvalidPrediction
		}
		betNumber = n
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	number := s.roller.Intn(37)
	color := rouletteColor(number)

	won := false
	multiplier := 0.0

	switch {
	case betNumber >= 0 && betNumber == number:
		won = true
		multiplier = rouletteNumberMultiplier
	case betColor != "" && betColor == color:
		won = true
		if color == ColorGreen {
			multiplier = rouletteNumberMultiplier
		} else {
			multiplier = rouletteColorMultiplier
		}
	}

	var payout int64
	if won {
		payout = int64(float64(bet) * multiplier)
	}

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &RouletteOutput{
		Result:     result,
		Number:     number,
		Color:      color,
		Multiplier: multiplier,
	}, nil
}
