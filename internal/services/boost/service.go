package boost

import (
	"context"
	"errors"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/models"
	accountRepo "github.com/multiplexcombo/highroller/internal/repositories/account"
)

// service implements the Service interface
type service struct {
	accountRepo accountRepo.Repository
	clock       clock.Clock
}

// New creates a new boost service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.AccountRepo == nil {
		return nil, errors.New("account repository cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &service{
		accountRepo: cfg.AccountRepo,
		clock:       clk,
	}, nil
}

// Grant sets or overwrites a boost on an account; the last grant wins
func (s *service) Grant(ctx context.Context, input *GrantInput) (*GrantOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	if input.Kind == "" {
		return nil, errors.New("boost kind cannot be empty")
	}

	if input.Duration <= 0 {
		return nil, errors.New("boost duration must be positive")
	}

	grant := models.Boost{
		Effect:    input.Effect,
		ExpiresAt: s.clock.Now().Add(input.Duration),
	}

	_, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: input.AccountID,
		Apply: func(acct *models.Account) {
			if acct.Boosts == nil {
				acct.Boosts = make(map[string]models.Boost)
			}
			acct.Boosts[input.Kind] = grant
		},
	})
	if err != nil {
		return nil, err
	}

	return &GrantOutput{
		Boost: grant,
	}, nil
}

// Active returns the boost of the given kind if it has not expired
func (s *service) Active(account *models.Account, kind string) (models.Boost, bool) {
	if account == nil || account.Boosts == nil {
		return models.Boost{}, false
	}

	b, ok := account.Boosts[kind]
	if !ok || b.Expired(s.clock.Now()) {
		return models.Boost{}, false
	}

	return b, true
}

// Prune removes expired boosts from an account. The write is skipped when
// nothing expired, so reads do not amplify into writes.
func (s *service) Prune(ctx context.Context, input *PruneInput) (*PruneOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	acct, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	expired := 0
	for _, b := range acct.Boosts {
		if b.Expired(now) {
			expired++
		}
	}

	if expired == 0 {
		return &PruneOutput{
			Account: acct,
		}, nil
	}

	removed := 0
	updated, err := s.accountRepo.UpdateAccount(ctx, &accountRepo.UpdateAccountInput{
		AccountID: input.AccountID,
		Apply: func(acct *models.Account) {
			for kind, b := range acct.Boosts {
				if b.Expired(now) {
					delete(acct.Boosts, kind)
					removed++
				}
			}
		},
	})
	if err != nil {
		return nil, err
	}

	return &PruneOutput{
		Account: updated,
		Removed: removed,
	}, nil
}
