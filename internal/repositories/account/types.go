package account

import "github.com/multiplexcombo/highroller/internal/models"

// Account defaults applied on first access
const (
	StartingBalance int64 = 1000
	StartingCrypto  int64 = 0
)

// GetAccountInput contains parameters for retrieving an account
type GetAccountInput struct {
	// AccountID is the Discord user ID of the account holder
	AccountID string
}

// AddBalanceInput contains parameters for crediting the primary balance
type AddBalanceInput struct {
	AccountID string

	// Amount is the delta to apply; negative deltas are allowed but the
	// resulting balance is floored at zero
	Amount int64
}

// AddBalanceOutput contains the result of a balance credit
type AddBalanceOutput struct {
	// NewBalance is the balance after the delta was applied
	NewBalance int64

	// Applied is the delta actually applied, which may be smaller in
	// magnitude than requested when a negative delta hit the zero floor
	Applied int64
}

// AddCryptoInput contains parameters for crediting the secondary balance
type AddCryptoInput struct {
	AccountID string
	Amount    int64
}

// AddCryptoOutput contains the result of a crypto credit
type AddCryptoOutput struct {
	NewCrypto int64
	Applied   int64
}

// SubtractBalanceInput contains parameters for debiting the primary balance
type SubtractBalanceInput struct {
	AccountID string

	// Amount must be positive; a debit larger than the balance fails
	Amount int64
}

// SubtractBalanceOutput contains the result of a debit
type SubtractBalanceOutput struct {
	// Success is false when the amount exceeded the balance; the account
	// is untouched in that case
	Success bool

	// NewBalance is the balance after the debit, or the unchanged balance
	// on failure
	NewBalance int64
}

// UpdateAccountInput contains parameters for an atomic account mutation
type UpdateAccountInput struct {
	AccountID string

	// Apply mutates the account in place. It runs under the account's
	// lock and must not block or call back into the repository.
	Apply func(*models.Account)
}

// ResetAccountInput contains parameters for resetting an account
type ResetAccountInput struct {
	AccountID string
}

// ListAccountsInput contains parameters for listing accounts
type ListAccountsInput struct{}

// ListAccountsOutput contains every stored account
type ListAccountsOutput struct {
	Accounts []*models.Account
}
