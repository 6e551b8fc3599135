package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/multiplexcombo/highroller/internal/common/clock"
	"github.com/multiplexcombo/highroller/internal/models"
)

const (
	// Key prefix for Redis
	accountKeyPrefix = "account:"
)

// Config holds configuration for the Redis account repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock used to stamp account creation; defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis. Records
// are stored as JSON blobs keyed by account id. Every mutation runs under a
// per-account mutex and is written through to Redis before returning, so a
// reported failure leaves no divergent in-memory state behind.
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedis creates a new Redis-backed account repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  clk,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// lock returns the mutex serializing mutations for one account id
func (r *redisRepository) lock(accountID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[accountID] = l
	}
	return l
}

// load fetches an account, creating and persisting it with defaults on a
// miss. The caller must hold the account's lock.
func (r *redisRepository) load(ctx context.Context, accountID string) (*models.Account, error) {
	key := accountKeyPrefix + accountID

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			acct := r.defaultAccount(accountID)
			if err := r.save(ctx, acct); err != nil {
				return nil, err
			}
			return acct, nil
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}

	var acct models.Account
	if err := json.Unmarshal([]byte(data), &acct); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account %s: %w", accountID, err)
	}

	// Records written before a field existed unmarshal with it absent;
	// absence means default, not corruption
	acct.ID = accountID

	return &acct, nil
}

// save writes an account through to Redis
func (r *redisRepository) save(ctx context.Context, acct *models.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to marshal account %s: %w", acct.ID, err)
	}

	key := accountKeyPrefix + acct.ID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist account %s: %w", acct.ID, err)
	}

	return nil
}

func (r *redisRepository) defaultAccount(accountID string) *models.Account {
	return &models.Account{
		ID:        accountID,
		Balance:   StartingBalance,
		Crypto:    StartingCrypto,
		CreatedAt: r.clock.Now(),
	}
}

// GetAccount retrieves an account, creating it with defaults on first access
func (r *redisRepository) GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	return r.load(ctx, input.AccountID)
}

// AddBalance applies a delta to the primary balance atomically. Negative
// deltas are floored at a zero balance.
func (r *redisRepository) AddBalance(ctx context.Context, input *AddBalanceInput) (*AddBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	acct, err := r.load(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	applied := input.Amount
	if applied < 0 && acct.Balance+applied < 0 {
		applied = -acct.Balance
	}
	acct.Balance += applied

	if err := r.save(ctx, acct); err != nil {
		return nil, err
	}

	return &AddBalanceOutput{
		NewBalance: acct.Balance,
		Applied:    applied,
	}, nil
}

// AddCrypto applies a delta to the secondary balance atomically
func (r *redisRepository) AddCrypto(ctx context.Context, input *AddCryptoInput) (*AddCryptoOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	acct, err := r.load(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	applied := input.Amount
	if applied < 0 && acct.Crypto+applied < 0 {
		applied = -acct.Crypto
	}
	acct.Crypto += applied

	if err := r.save(ctx, acct); err != nil {
		return nil, err
	}

	return &AddCryptoOutput{
		NewCrypto: acct.Crypto,
		Applied:   applied,
	}, nil
}

// SubtractBalance debits the primary balance. A debit larger than the
// balance fails with Success=false and no mutation.
func (r *redisRepository) SubtractBalance(ctx context.Context, input *SubtractBalanceInput) (*SubtractBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	acct, err := r.load(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Amount > acct.Balance {
		return &SubtractBalanceOutput{
			Success:    false,
			NewBalance: acct.Balance,
		}, nil
	}

	acct.Balance -= input.Amount

	if err := r.save(ctx, acct); err != nil {
		return nil, err
	}

	return &SubtractBalanceOutput{
		Success:    true,
		NewBalance: acct.Balance,
	}, nil
}

// UpdateAccount applies a mutation under the account's lock and persists
// the result as a single unit
func (r *redisRepository) UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*models.Account, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	acct, err := r.load(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	input.Apply(acct)
	acct.ID = input.AccountID // identity is not writable

	if err := r.save(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

// ResetAccount overwrites all fields with defaults, keeping the account's
// identity and creation time
func (r *redisRepository) ResetAccount(ctx context.Context, input *ResetAccountInput) (*models.Account, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	l := r.lock(input.AccountID)
	l.Lock()
	defer l.Unlock()

	existing, err := r.load(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	acct := r.defaultAccount(input.AccountID)
	acct.CreatedAt = existing.CreatedAt

	if err := r.save(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

// ListAccounts returns every stored account
func (r *redisRepository) ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	var keys []string

	iter := r.client.Scan(ctx, 0, accountKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	if len(keys) == 0 {
		return &ListAccountsOutput{
			Accounts: []*models.Account{},
		}, nil
	}

	// Fetch all records in one round trip using a pipeline
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		commands[i] = pipe.Get(ctx, key)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	accounts := make([]*models.Account, 0, len(keys))
	for i, cmd := range commands {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Deleted between the scan and the fetch
				continue
			}
			return nil, fmt.Errorf("failed to get account %s: %w", keys[i], err)
		}

		var acct models.Account
		if err := json.Unmarshal([]byte(data), &acct); err != nil {
			return nil, fmt.Errorf("failed to unmarshal account %s: %w", keys[i], err)
		}

		accounts = append(accounts, &acct)
	}

	return &ListAccountsOutput{
		Accounts: accounts,
	}, nil
}
