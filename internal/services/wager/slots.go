package wager

import (
	"context"
	"errors"
)

// slotSymbol is one reel symbol with its draw weight and payout table
type slotSymbol struct {
	name   string
	emoji  string
	weight int

	// payouts maps an occurrence count (2 or 3) to a bet multiplier
	payouts map[int]float64
}

// slotSymbols is the fixed reel strip. Weights skew heavily toward the low
// payers; fractional multipliers on the low tier mean a pair can return
// less than the stake.
var slotSymbols = []slotSymbol{
	{name: "seven", emoji: "7️⃣", weight: 1, payouts: map[int]float64{3: 500, 2: 25}},
	{name: "diamond", emoji: "\U0001F48E", weight: 3, payouts: map[int]float64{3: 25, 2: 10}},
	{name: "bar", emoji: "\U0001F4CA", weight: 5, payouts: map[int]float64{3: 5, 2: 3}},
	{name: "bell", emoji: "\U0001F514", weight: 8, payouts: map[int]float64{3: 3, 2: 2}},
	{name: "shoe", emoji: "\U0001F460", weight: 10, payouts: map[int]float64{3: 2, 2: 1}},
	{name: "lemon", emoji: "\U0001F34B", weight: 15, payouts: map[int]float64{3: 1, 2: 1}},
	{name: "melon", emoji: "\U0001F349", weight: 20, payouts: map[int]float64{3: 0.75, 2: 1}},
	{name: "heart", emoji: "❤️", weight: 25, payouts: map[int]float64{3: 0.5, 2: 0.75}},
	{name: "cherry", emoji: "\U0001F352", weight: 30, payouts: map[int]float64{3: 0.5, 2: 0.25}},
}

var slotWeights = func() []int {
	weights := make([]int, len(slotSymbols))
	for i, sym := range slotSymbols {
		weights[i] = sym.weight
	}
	return weights
}()

// slotPayout totals the payout for a spin. Every symbol appearing two or
// three times contributes its line; distinct winning symbols stack
// additively within one spin.
func slotPayout(reels []int, bet int64) (int64, []WinningLine) {
	counts := make(map[int]int)
	for _, idx := range reels {
		counts[idx]++
	}

	var total int64
	var lines []WinningLine

	for idx, count := range counts {
		sym := slotSymbols[idx]
		multiplier, ok := sym.payouts[count]
		if !ok {
			continue
		}

		payout := int64(float64(bet) * multiplier)
		total += payout
		lines = append(lines, WinningLine{
			Symbol:     sym.name,
			Emoji:      sym.emoji,
			Count:      count,
			Multiplier: multiplier,
			Payout:     payout,
		})
	}

	return total, lines
}

// Slots spins three independently weighted reels.
func (s *service) Slots(ctx context.Context, input *SlotsInput) (*SlotsOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	reels := make([]int, 3)
	names := make([]string, 3)
	emojis := make([]string, 3)
	for i := range reels {
		reels[i] = s.roller.WeightedIndex(slotWeights)
		names[i] = slotSymbols[reels[i]].name
		emojis[i] = slotSymbols[reels[i]].emoji
	}

	payout, lines := slotPayout(reels, bet)
	won := payout > 0

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &SlotsOutput{
		Result: result,
		Reels:  names,
		Emojis: emojis,
		Lines:  lines,
	}, nil
}
