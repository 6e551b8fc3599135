package wager

import "context"

// Service defines the interface for wager operations. Every game follows
// the same protocol: validate and debit the bet, draw an outcome, then
// settle by crediting any payout and updating cumulative statistics.
type Service interface {
	// Coinflip flips a coin against a heads/tails prediction
	Coinflip(ctx context.Context, input *CoinflipInput) (*CoinflipOutput, error)

	// RollDice rolls a 6, 20 or 100 sided die against a number prediction
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// Roulette spins a 0-36 wheel against a color or number bet
	Roulette(ctx context.Context, input *RouletteInput) (*RouletteOutput, error)

	// Slots spins three weighted reels
	Slots(ctx context.Context, input *SlotsInput) (*SlotsOutput, error)

	// Blackjack plays a full dealer-drawn hand of blackjack
	Blackjack(ctx context.Context, input *BlackjackInput) (*BlackjackOutput, error)

	// HigherOrLower draws two cards against a higher/lower prediction
	HigherOrLower(ctx context.Context, input *HigherOrLowerInput) (*HigherOrLowerOutput, error)
}
