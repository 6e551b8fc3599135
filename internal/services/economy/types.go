package economy

import (
	"time"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/common/uuid"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/random"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/services/boost"
)

// Config holds configuration for the economy service
type Config struct {
	// Periodic reward amounts; zero values take the defaults
	DailyReward   int64
	WeeklyReward  int64
	MonthlyReward int64
	YearlyReward  int64

	// Repository dependencies
	AccountRepo accountRepo.Repository

	// Service dependencies
	BoostService  boost.Service
	Roller        random.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// GetProfileInput contains parameters for fetching a profile
type GetProfileInput struct {
	AccountID string
}

// GetProfileOutput contains an account snapshot with live boosts only
type GetProfileOutput struct {
	Account *models.Account
}

// ClaimRewardInput contains parameters for a periodic reward claim
type ClaimRewardInput struct {
	AccountID string

	// Kind is one of the cooldown kinds daily, weekly, monthly, yearly
	Kind string
}

// ClaimRewardOutput contains the result of a reward claim
type ClaimRewardOutput struct {
	// Amount credited
	Amount int64

	NewBalance int64

	// NextClaimAt is when the reward becomes claimable again
	NextClaimAt time.Time
}

// ClaimVoteInput contains parameters for a vote reward claim
type ClaimVoteInput struct {
	AccountID string
}

// ClaimVoteOutput contains the result of a vote reward claim
type ClaimVoteOutput struct {
	// VoteCount after this claim
	VoteCount int64

	// Multiplier applied from the vote tier table
	Multiplier int64

	Amount      int64
	NewBalance  int64
	NextClaimAt time.Time
}

// WorkInput contains parameters for a work or overtime shift
type WorkInput struct {
	AccountID string
}

// WorkOutput contains the result of a work or overtime shift
type WorkOutput struct {
	// JobName and JobEmoji describe the randomly assigned job
	JobName  string
	JobEmoji string

	// BasePay is the uniform draw from the job's pay range
	BasePay int64

	// FinalPay is BasePay with any active work boost applied
	FinalPay int64

	// Boosted reports whether a work boost was applied
	Boosted bool

	NewBalance  int64
	NextShiftAt time.Time
}

// TransferInput contains parameters for a peer-to-peer transfer
type TransferInput struct {
	FromAccountID string
	ToAccountID   string

	// Amount is the raw amount text, shorthand and "all" accepted
	Amount string
}

// TransferOutput contains the result of a transfer
type TransferOutput struct {
	// ID is a receipt identifier for the transfer
	ID string

	Amount        int64
	SenderBalance int64
}

// BuyItemInput contains parameters for a shop purchase
type BuyItemInput struct {
	AccountID string

	// ItemID is the shop catalog ID
	ItemID string
}

// BuyItemOutput contains the result of a shop purchase
type BuyItemOutput struct {
	Item ShopItem

	// Boost is set when the item granted a boost
	Boost *models.Boost

	// LootReward is set when the item was a loot box
	LootReward int64

	NewBalance int64
}

// Leaderboard metrics
const (
	MetricBalance     = "balance"
	MetricTotalWon    = "total_won"
	MetricGamesPlayed = "games_played"
	MetricVoteCount   = "vote_count"
)

// LeaderboardInput contains parameters for a leaderboard query
type LeaderboardInput struct {
	// Metric is one of the Metric constants
	Metric string

	// Limit caps the number of entries; 0 means 10
	Limit int
}

// LeaderboardEntry is one ranked account
type LeaderboardEntry struct {
	AccountID string
	Value     int64
}

// LeaderboardOutput contains the ranked entries, descending
type LeaderboardOutput struct {
	Entries []LeaderboardEntry
}

// GiveMoneyInput contains parameters for an admin credit
type GiveMoneyInput struct {
	AccountID string

	// Amount is the raw amount text, shorthand accepted
	Amount string
}

// GiveMoneyOutput contains the result of an admin credit
type GiveMoneyOutput struct {
	Amount     int64
	NewBalance int64
}

// TakeMoneyInput contains parameters for an admin debit
type TakeMoneyInput struct {
	AccountID string
	Amount    string
}

// TakeMoneyOutput contains the result of an admin debit
type TakeMoneyOutput struct {
	// Taken is the amount actually removed, which may be less than
	// requested when the balance hit zero
	Taken      int64
	NewBalance int64
}

// ResetAccountInput contains parameters for an admin reset
type ResetAccountInput struct {
	AccountID string
}

// ResetAccountOutput contains the account after reset
type ResetAccountOutput struct {
	Account *models.Account
}
