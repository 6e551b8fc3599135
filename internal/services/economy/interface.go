package economy

import "context"

// Service defines the interface for reward, transfer and shop operations
type Service interface {
	// GetProfile returns an account with expired boosts pruned
	GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error)

	// ClaimReward claims a periodic reward (daily, weekly, monthly,
	// yearly), gated by the account's cooldown mark
	ClaimReward(ctx context.Context, input *ClaimRewardInput) (*ClaimRewardOutput, error)

	// ClaimVote claims a vote reward scaled by the vote-count tier
	ClaimVote(ctx context.Context, input *ClaimVoteInput) (*ClaimVoteOutput, error)

	// Work earns a random job's pay on the work cooldown
	Work(ctx context.Context, input *WorkInput) (*WorkOutput, error)

	// Overtime earns higher pay on the longer overtime cooldown
	Overtime(ctx context.Context, input *WorkInput) (*WorkOutput, error)

	// Transfer moves funds between two accounts
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// BuyItem purchases a shop item, granting its boost or opening it
	BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error)

	// Leaderboard ranks accounts by a metric, descending
	Leaderboard(ctx context.Context, input *LeaderboardInput) (*LeaderboardOutput, error)

	// GiveMoney credits an account by fiat (admin path)
	GiveMoney(ctx context.Context, input *GiveMoneyInput) (*GiveMoneyOutput, error)

	// TakeMoney debits an account by fiat, flooring at zero (admin path)
	TakeMoney(ctx context.Context, input *TakeMoneyInput) (*TakeMoneyOutput, error)

	// ResetAccount restores an account to defaults (admin path)
	ResetAccount(ctx context.Context, input *ResetAccountInput) (*ResetAccountOutput, error)
}
