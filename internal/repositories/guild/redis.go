package guild

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
	guildKeyPrefix = "guild:"
)

// Config holds configuration for the Redis guild repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock used to stamp guild creation; defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedis creates a new Redis-backed guild repository
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

func (r *redisRepository) lock(guildID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[guildID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[guildID] = l
	}
	return l
}

func (r *redisRepository) load(ctx context.Context, guildID string) (*models.GuildSettings, error) {
	key := guildKeyPrefix + guildID

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			settings := r.defaultSettings(guildID)
			if err := r.save(ctx, settings); err != nil {
				return nil, err
			}
			return settings, nil
		}
		return nil, fmt.Errorf("failed to get guild %s: %w", guildID, err)
	}

	var settings models.GuildSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guild %s: %w", guildID, err)
	}

	settings.ID = guildID

	return &settings, nil
}

func (r *redisRepository) save(ctx context.Context, settings *models.GuildSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal guild %s: %w", settings.ID, err)
	}

	key := guildKeyPrefix + settings.ID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist guild %s: %w", settings.ID, err)
	}

	return nil
}

func (r *redisRepository) defaultSettings(guildID string) *models.GuildSettings {
	return &models.GuildSettings{
		ID:            guildID,
		CurrencyName:  DefaultCurrencyName,
		CurrencyEmoji: DefaultCurrencyEmoji,
		CryptoName:    DefaultCryptoName,
		CryptoEmoji:   DefaultCryptoEmoji,
		Channels:      make(map[string]string),
		CreatedAt:     r.clock.Now(),
	}
}

// GetGuild retrieves a guild's settings, creating defaults on first access
func (r *redisRepository) GetGuild(ctx context.Context, input *GetGuildInput) (*models.GuildSettings, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	l := r.lock(input.GuildID)
	l.Lock()
	defer l.Unlock()

	return r.load(ctx, input.GuildID)
}

// UpdateGuild applies a mutation under the guild's lock and persists the
// result as a single unit
func (r *redisRepository) UpdateGuild(ctx context.Context, input *UpdateGuildInput) (*models.GuildSettings, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	l := r.lock(input.GuildID)
	l.Lock()
	defer l.Unlock()

	settings, err := r.load(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	input.Apply(settings)
	settings.ID = input.GuildID

	if err := r.save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
