package wager

import (
	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/common/uuid"
	"github.com/multiplexcombo/highroller/internal/random"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/services/boost"
)

// Config holds configuration for the wager service
type Config struct {
	// MinBet is the smallest accepted bet
	MinBet int64

	// MaxBet is the largest accepted bet; zero means no maximum
	MaxBet int64

	// HouseEdge is the fraction shaved off fair payout multipliers
	HouseEdge float64

	// Repository dependencies
	AccountRepo accountRepo.Repository

	// Service dependencies
	BoostService  boost.Service
	Roller        random.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Result holds the settlement facts shared by every game
type Result struct {
	// ID is a receipt identifier for the settled wager
	ID string

	// BetAmount is the resolved stake, after "all" resolution
	BetAmount int64

	// Won reports whether the wager won; a blackjack push is not a win
	Won bool

	// Payout is the total amount returned to the balance, boost included
	Payout int64

	// Profit is Payout minus BetAmount; negative on a loss
	Profit int64

	// NewBalance is the balance after settlement
	NewBalance int64

	// BoostEffect is the winnings multiplier applied at settlement, or
	// zero when no boost was active
	BoostEffect float64
}

// Card is a single playing card
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

// CoinflipInput contains parameters for a coinflip wager
type CoinflipInput struct {
	// AccountID is the Discord user ID of the bettor
	AccountID string

	// Prediction is "heads" or "tails"
	Prediction string

	// Bet is the raw bet text, shorthand accepted
	Bet string
}

// CoinflipOutput contains the result of a coinflip wager
type CoinflipOutput struct {
	Result

	// Prediction is the normalized prediction
	Prediction string

	// Landed is the side the coin landed on
	Landed string
}

// RollDiceInput contains parameters for a dice wager
type RollDiceInput struct {
	AccountID string

	// Sides must be 6, 20 or 100
	Sides int

	// Prediction must be within [1, Sides]
	Prediction int

	Bet string
}

// RollDiceOutput contains the result of a dice wager
type RollDiceOutput struct {
	Result

	Sides      int
	Prediction int
	Rolled     int
}

// RouletteInput contains parameters for a roulette wager
type RouletteInput struct {
	AccountID string

	// Prediction is "red", "black", "green" or a number 0-36
	Prediction string

	Bet string
}

// RouletteOutput contains the result of a roulette wager
type RouletteOutput struct {
	Result

	// Number is where the ball landed
	Number int

	// Color is the landed color: red, black or green
	Color string

	// Multiplier is the payout multiplier that applied, zero on a loss
	Multiplier float64
}

// SlotsInput contains parameters for a slot machine spin
type SlotsInput struct {
	AccountID string
	Bet       string
}

// WinningLine records one matched symbol in a spin
type WinningLine struct {
	Symbol     string
	Emoji      string
	Count      int
	Multiplier float64
	Payout     int64
}

// SlotsOutput contains the result of a slot machine spin
type SlotsOutput struct {
	Result

	// Reels holds the three landed symbol names
	Reels []string

	// Emojis holds the display form of the reels
	Emojis []string

	// Lines lists every matched symbol; distinct symbols stack additively
	Lines []WinningLine
}

// BlackjackInput contains parameters for a blackjack hand
type BlackjackInput struct {
	AccountID string
	Bet       string
}

// Blackjack hand outcomes
const (
	BlackjackOutcomePush            = "push"
	BlackjackOutcomePlayerBlackjack = "player_blackjack"
	BlackjackOutcomeDealerBlackjack = "dealer_blackjack"
	BlackjackOutcomeDealerBust      = "dealer_bust"
	BlackjackOutcomePlayerWin       = "player_win"
	BlackjackOutcomeDealerWin       = "dealer_win"
)

// BlackjackOutput contains the result of a blackjack hand
type BlackjackOutput struct {
	Result

	PlayerHand  []Card
	DealerHand  []Card
	PlayerValue int
	DealerValue int

	// Outcome is one of the BlackjackOutcome constants
	Outcome string
}

// HigherOrLowerInput contains parameters for a higher-or-lower wager
type HigherOrLowerInput struct {
	AccountID string

	// Prediction is "higher" or "lower"
	Prediction string

	Bet string
}

// HigherOrLowerOutput contains the result of a higher-or-lower wager
type HigherOrLowerOutput struct {
	Result

	FirstCard  Card
	SecondCard Card

	// Tie reports an exact rank tie, which is always a house win
	Tie bool

	Prediction string
}
