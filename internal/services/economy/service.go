package economy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/common/uuid"
	"github.com/multiplexcombo/highroller/internal/cooldown"
	"github.com/multiplexcombo/highroller/internal/currency"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/random"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/services/boost"
)

// service implements the Service interface
type service struct {
	config       *Config
	accountRepo  accountRepo.Repository
	boostService boost.Service
	roller       random.Roller
	clock        clock.Clock
	uuidGen      uuid.UUID
}

// New creates a new economy service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.AccountRepo == nil {
		return nil, errors.New("account repository cannot be nil")
	}

	if cfg.BoostService == nil {
		return nil, errors.New("boost service cannot be nil")
	}

	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	// Set default values if not provided
	if cfg.DailyReward == 0 {
		cfg.DailyReward = DefaultDailyReward
	}
	if cfg.WeeklyReward == 0 {
		cfg.WeeklyReward = DefaultWeeklyReward
	}
	if cfg.MonthlyReward == 0 {
		cfg.MonthlyReward = DefaultMonthlyReward
	}
	if cfg.YearlyReward == 0 {
		cfg.YearlyReward = DefaultYearlyReward
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.New()
	}

	return &service{
		config:       cfg,
		accountRepo:  cfg.AccountRepo,
		boostService: cfg.BoostService,
		roller:       cfg.Roller,
		clock:        clk,
		uuidGen:      uuidGen,
	}, nil
}

// GetProfile returns an account with expired boosts pruned
func (s *service) GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	pruned, err := s.boostService.Prune(ctx, &boost.PruneInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{
		Account: pruned.Account,
	}, nil
}

func (s *service) rewardAmount(kind string) (int64, bool) {
	switch kind {
	case cooldown.KindDaily:
		return s.config.DailyReward, true
	case cooldown.KindWeekly:
		return s.config.WeeklyReward, true
	case cooldown.KindMonthly:
		return s.config.MonthlyReward, true
	case cooldown.KindYearly:
		return s.config.YearlyReward, true
	default:
		return 0, false
	}
}

// ClaimReward claims a periodic reward, gated by the account's cooldown
// mark. The gate is re-checked inside the account's critical section so
// two concurrent claims cannot both pay out.
func (s *service) ClaimReward(ctx context.Context, input *ClaimRewardInput) (*ClaimRewardOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	amount, ok := s.rewardAmount(input.Kind)
	if !ok {
		return nil, ErrUnknownReward
	}

	now := s.clock.Now()

	var gated time.Duration
	updated, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: input.AccountID,
		Apply: func(acct *models.Account) {
			if remaining := cooldown.RemainingFor(acct.LastUsed(input.Kind), input.Kind, now); remaining > 0 {
				gated = remaining
				return
			}

			acct.Balance += amount
			if acct.CooldownMarks == nil {
				acct.CooldownMarks = make(map[string]time.Time)
			}
			acct.CooldownMarks[input.Kind] = cooldown.MarkUsed(now)
		},
	})
	if err != nil {
		return nil, err
	}

	if gated > 0 {
		return nil, &CooldownError{Kind: input.Kind, Remaining: gated}
	}

	return &ClaimRewardOutput{
		Amount:      amount,
		NewBalance:  updated.Balance,
		NextClaimAt: now.Add(cooldown.Window(input.Kind)),
	}, nil
}

// ClaimVote claims a vote reward scaled by the vote-count tier
func (s *service) ClaimVote(ctx context.Context, input *ClaimVoteInput) (*ClaimVoteOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	now := s.clock.Now()

	var gated time.Duration
	var voteCount, multiplier, amount int64

	updated, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: input.AccountID,
		Apply: func(acct *models.Account) {
			if remaining := cooldown.RemainingFor(acct.LastUsed(cooldown.KindVote), cooldown.KindVote, now); remaining > 0 {
				gated = remaining
				return
			}

			voteCount = acct.VoteCount + 1
			multiplier = voteMultiplier(voteCount)
			amount = voteBaseReward * multiplier

			acct.VoteCount = voteCount
			acct.Balance += amount
			if acct.CooldownMarks == nil {
				acct.CooldownMarks = make(map[string]time.Time)
			}
			acct.CooldownMarks[cooldown.KindVote] = cooldown.MarkUsed(now)
		},
	})
	if err != nil {
		return nil, err
	}

	if gated > 0 {
		return nil, &CooldownError{Kind: cooldown.KindVote, Remaining: gated}
	}

	return &ClaimVoteOutput{
		VoteCount:   voteCount,
		Multiplier:  multiplier,
		Amount:      amount,
		NewBalance:  updated.Balance,
		NextClaimAt: now.Add(cooldown.Window(cooldown.KindVote)),
	}, nil
}

// Work earns a random job's pay on the work cooldown
func (s *service) Work(ctx context.Context, input *WorkInput) (*WorkOutput, error) {
	return s.workShift(ctx, input, cooldown.KindWork, workJobs)
}

// Overtime earns higher pay on the longer overtime cooldown
func (s *service) Overtime(ctx context.Context, input *WorkInput) (*WorkOutput, error) {
	return s.workShift(ctx, input, cooldown.KindOvertime, overtimeJobs)
}

func (s *service) workShift(ctx context.Context, input *WorkInput, kind string, jobs []job) (*WorkOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	// Prune first so the work-boost lookup sees only live boosts
	pruned, err := s.boostService.Prune(ctx, &boost.PruneInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	assigned := jobs[s.roller.Intn(len(jobs))]
	basePay := assigned.minPay + int64(s.roller.Intn(int(assigned.maxPay-assigned.minPay+1)))

	finalPay := basePay
	boosted := false
	if b, ok := s.boostService.Active(pruned.Account, models.BoostWork); ok {
		finalPay = int64(float64(basePay) * b.Effect)
		boosted = true
	}

	now := s.clock.Now()

	var gated time.Duration
	updated, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: input.AccountID,
		Apply: func(acct *models.Account) {
			if remaining := cooldown.RemainingFor(acct.LastUsed(kind), kind, now); remaining > 0 {
				gated = remaining
				return
			}

			acct.Balance += finalPay
			if acct.CooldownMarks == nil {
				acct.CooldownMarks = make(map[string]time.Time)
			}
			acct.CooldownMarks[kind] = cooldown.MarkUsed(now)
		},
	})
	if err != nil {
		return nil, err
	}

	if gated > 0 {
		return nil, &CooldownError{Kind: kind, Remaining: gated}
	}

	return &WorkOutput{
		JobName:     assigned.name,
		JobEmoji:    assigned.emoji,
		BasePay:     basePay,
		FinalPay:    finalPay,
		Boosted:     boosted,
		NewBalance:  updated.Balance,
		NextShiftAt: now.Add(cooldown.Window(kind)),
	}, nil
}

// Transfer moves funds between two accounts. The debit and credit are two
// store operations; on a failed credit the debit is refunded so funds are
// never destroyed.
func (s *service) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input == nil || input.FromAccountID == "" || input.ToAccountID == "" {
		return nil, errors.New("input and account IDs cannot be empty")
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, ErrSelfTransfer
	}

	amount, err := currency.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	sender, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{
		AccountID: input.FromAccountID,
	})
	if err != nil {
		return nil, err
	}

	if amount == currency.AmountAll {
		amount = sender.Balance
	}

	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	debit, err := s.accountRepo.SubtractBalance(ctx, &accountRepo.SubtractBalanceInput{
		AccountID: input.FromAccountID,
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}

	if !debit.Success {
		return nil, ErrInsufficientFunds
	}

	if _, err := s.accountRepo.AddBalance(ctx, &accountRepo.AddBalanceInput{
		AccountID: input.ToAccountID,
		Amount:    amount,
	}); err != nil {
		// Put the debited funds back before reporting the failure
		if _, refundErr := s.accountRepo.AddBalance(ctx, &accountRepo.AddBalanceInput{
			AccountID: input.FromAccountID,
			Amount:    amount,
		}); refundErr != nil {
			return nil, fmt.Errorf("credit failed (%w) and refund failed: %w", err, refundErr)
		}
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	return &TransferOutput{
		ID:            s.uuidGen.NewUUID(),
		Amount:        amount,
		SenderBalance: debit.NewBalance,
	}, nil
}

// BuyItem purchases a shop item, granting its boost or opening it
func (s *service) BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	item, ok := FindShopItem(input.ItemID)
	if !ok {
		return nil, ErrUnknownItem
	}

	debit, err := s.accountRepo.SubtractBalance(ctx, &accountRepo.SubtractBalanceInput{
		AccountID: input.AccountID,
		Amount:    item.Price,
	})
	if err != nil {
		return nil, err
	}

	if !debit.Success {
		return nil, ErrInsufficientFunds
	}

	out := &BuyItemOutput{
		Item:       item,
		NewBalance: debit.NewBalance,
	}

	switch item.Kind {
	case ItemKindBoost:
		granted, err := s.boostService.Grant(ctx, &boost.GrantInput{
			AccountID: input.AccountID,
			Kind:      item.BoostKind,
			Effect:    item.Effect,
			Duration:  item.Duration,
		})
		if err != nil {
			return nil, err
		}
		out.Boost = &granted.Boost

	case ItemKindConsumable:
		// Loot boxes open immediately
		reward := lootBoxMinReward + int64(s.roller.Intn(int(lootBoxMaxReward-lootBoxMinReward+1)))
		credit, err := s.accountRepo.AddBalance(ctx, &accountRepo.AddBalanceInput{
			AccountID: input.AccountID,
			Amount:    reward,
		})
		if err != nil {
			return nil, err
		}
		out.LootReward = reward
		out.NewBalance = credit.NewBalance
	}

	return out, nil
}

// Leaderboard ranks accounts by a metric, descending
func (s *service) Leaderboard(ctx context.Context, input *LeaderboardInput) (*LeaderboardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var value func(*models.Account) int64
	switch input.Metric {
	case MetricBalance, "":
		value = func(a *models.Account) int64 { return a.Balance }
	case MetricTotalWon:
		value = func(a *models.Account) int64 { return a.TotalWon }
	case MetricGamesPlayed:
		value = func(a *models.Account) int64 { return a.GamesPlayed }
	case MetricVoteCount:
		value = func(a *models.Account) int64 { return a.VoteCount }
	default:
		return nil, ErrUnknownMetric
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	listed, err := s.accountRepo.ListAccounts(ctx, &accountRepo.ListAccountsInput{})
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(listed.Accounts))
	for _, acct := range listed.Accounts {
		entries = append(entries, LeaderboardEntry{
			AccountID: acct.ID,
			Value:     value(acct),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return &LeaderboardOutput{
		Entries: entries,
	}, nil
}

// GiveMoney credits an account by fiat
func (s *service) GiveMoney(ctx context.Context, input *GiveMoneyInput) (*GiveMoneyOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	amount, err := currency.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	credit, err := s.accountRepo.AddBalance(ctx, &accountRepo.AddBalanceInput{
		AccountID: input.AccountID,
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}

	return &GiveMoneyOutput{
		Amount:     amount,
		NewBalance: credit.NewBalance,
	}, nil
}

// TakeMoney debits an account by fiat, flooring at zero
func (s *service) TakeMoney(ctx context.Context, input *TakeMoneyInput) (*TakeMoneyOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	amount, err := currency.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	if amount == currency.AmountAll {
		acct, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{
			AccountID: input.AccountID,
		})
		if err != nil {
			return nil, err
		}
		amount = acct.Balance
	}

	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	debit, err := s.accountRepo.AddBalance(ctx, &accountRepo.AddBalanceInput{
		AccountID: input.AccountID,
		Amount:    -amount,
	})
	if err != nil {
		return nil, err
	}

	return &TakeMoneyOutput{
		Taken:      -debit.Applied,
		NewBalance: debit.NewBalance,
	}, nil
}

// ResetAccount restores an account to defaults
func (s *service) ResetAccount(ctx context.Context, input *ResetAccountInput) (*ResetAccountOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	acct, err := s.accountRepo.ResetAccount(ctx, &accountRepo.ResetAccountInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &ResetAccountOutput{
		Account: acct,
	}, nil
}
