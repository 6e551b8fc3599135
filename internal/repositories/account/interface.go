package account

import (
	"context"

	"github.com/multiplexcombo/highroller/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/multiplexcombo/highroller/internal/repositories/account Repository

// Repository defines the interface for account persistence. Implementations
// must serialize mutating calls per account id: no two read-modify-write
// cycles for the same account may interleave.
type Repository interface {
	// GetAccount retrieves an account, creating it with defaults on first
	// access. The creation is persisted before the call returns.
	GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error)

	// AddBalance applies a delta to the primary balance atomically
	AddBalance(ctx context.Context, input *AddBalanceInput) (*AddBalanceOutput, error)

	// AddCrypto applies a delta to the secondary balance atomically
	AddCrypto(ctx context.Context, input *AddCryptoInput) (*AddCryptoOutput, error)

	// SubtractBalance debits the primary balance. The debit fails without
	// mutating anything when the amount exceeds the balance.
	SubtractBalance(ctx context.Context, input *SubtractBalanceInput) (*SubtractBalanceOutput, error)

	// UpdateAccount applies a mutation to the account as a single atomic
	// unit and persists the result
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*models.Account, error)

	// ResetAccount overwrites all fields with defaults, keeping identity
	ResetAccount(ctx context.Context, input *ResetAccountInput) (*models.Account, error)

	// ListAccounts returns every stored account
	ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error)
}
