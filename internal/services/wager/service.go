package wager

import (
	"context"
	"errors"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/common/uuid"
	"github.com/multiplexcombo/highroller/internal/currency"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/random"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/services/boost"
)

// Default table limits
const (
	DefaultMinBet    int64 = 1
	DefaultMaxBet    int64 = 1_000_000_000
	DefaultHouseEdge       = 0.02
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

// New creates a new wager service
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
	if cfg.MinBet == 0 {
		cfg.MinBet = DefaultMinBet
	}
	if cfg.MaxBet == 0 {
		cfg.MaxBet = DefaultMaxBet
	}
	if cfg.HouseEdge == 0 {
		cfg.HouseEdge = DefaultHouseEdge
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

// placeBet parses and validates the bet text, resolves "all" against the
// current balance, and debits the stake. Nothing is mutated on failure.
func (s *service) placeBet(ctx context.Context, accountID, betText string) (int64, error) {
	amount, err := currency.ParseAmount(betText)
	if err != nil {
		return 0, err
	}

	acct, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{
		AccountID: accountID,
	})
	if err != nil {
		return 0, err
	}

	if amount == currency.AmountAll {
		amount = acct.Balance
	}

	if err := currency.ValidateBet(amount, acct.Balance, s.config.MinBet, s.config.MaxBet); err != nil {
		return 0, err
	}

	debit, err := s.accountRepo.SubtractBalance(ctx, &accountRepo.SubtractBalanceInput{
		AccountID: accountID,
		Amount:    amount,
	})
	if err != nil {
		return 0, err
	}

	// The balance may have shrunk between validation and debit
	if !debit.Success {
		return 0, ErrInsufficientFunds
	}

	return amount, nil
}

// settle credits the payout and updates cumulative statistics as one atomic
// unit. A winnings-multiplier boost, looked up once here, scales winning
// payouts only; returned stakes on a push are never boosted.
func (s *service) settle(ctx context.Context, accountID string, bet, payout int64, won bool) (Result, error) {
	// Opportunistic prune keeps stored boosts from accumulating
	pruned, err := s.boostService.Prune(ctx, &boost.PruneInput{
		AccountID: accountID,
	})
	if err != nil {
		return Result{}, err
	}

	boostEffect := 0.0
	if won && payout > 0 {
		if b, ok := s.winningsBoost(pruned.Account); ok {
			boostEffect = b.Effect
			payout = int64(float64(payout) * b.Effect)
		}
	}

	profit := payout - bet

	updated, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: accountID,
		Apply: func(acct *models.Account) {
			acct.Balance += payout
			acct.GamesPlayed++
			if profit > 0 {
				acct.TotalWon += profit
			} else if profit < 0 {
				acct.TotalLost += -profit
			}
		},
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		ID:          s.uuidGen.NewUUID(),
		BetAmount:   bet,
		Won:         won,
		Payout:      payout,
		Profit:      profit,
		NewBalance:  updated.Balance,
		BoostEffect: boostEffect,
	}, nil
}

// winningsBoost returns the strongest active winnings multiplier. The work
// boost affects only the reward path and is never consulted here.
func (s *service) winningsBoost(acct *models.Account) (models.Boost, bool) {
	if b, ok := s.boostService.Active(acct, models.BoostMultiplier3x); ok {
		return b, true
	}
	if b, ok := s.boostService.Active(acct, models.BoostMultiplier2x); ok {
		return b, true
	}
	return models.Boost{}, false
}
