package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/multiplexcombo/highroller/internal/handlers/discord"
	"github.com/multiplexcombo/highroller/internal/random"
	"github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/repositories/guild"
	"github.com/multiplexcombo/highroller/internal/services/boost"
	"github.com/multiplexcombo/highroller/internal/services/economy"
	"github.com/multiplexcombo/highroller/internal/services/wager"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	MinBet    int64   `env:"MIN_BET" envDefault:"1"`
	MaxBet    int64   `env:"MAX_BET" envDefault:"1000000000"`
	HouseEdge float64 `env:"HOUSE_EDGE" envDefault:"0.02"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.WithError(err).Fatal("failed to parse configuration")
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)
	log.SetFormatter(&log.JSONFormatter{})

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}

	// Initialize repositories
	accountRepo, err := account.NewRedis(&account.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create account repository")
	}

	guildRepo, err := guild.NewRedis(&guild.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create guild repository")
	}

	// Initialize the roller shared by games and payouts
	roller := random.New(&random.Config{})

	// Initialize services
	boostSvc, err := boost.New(&boost.Config{
		AccountRepo: accountRepo,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create boost service")
	}

	wagerSvc, err := wager.New(&wager.Config{
		MinBet:       cfg.MinBet,
		MaxBet:       cfg.MaxBet,
		HouseEdge:    cfg.HouseEdge,
		AccountRepo:  accountRepo,
		BoostService: boostSvc,
		Roller:       roller,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create wager service")
	}

	economySvc, err := economy.New(&economy.Config{
		AccountRepo:  accountRepo,
		BoostService: boostSvc,
		Roller:       roller,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create economy service")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:          cfg.DiscordToken,
		ApplicationID:  cfg.ApplicationID,
		GuildID:        cfg.GuildID,
		WagerService:   wagerSvc,
		EconomyService: economySvc,
		GuildRepo:      guildRepo,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create Discord bot")
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.WithError(err).Fatal("failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.WithError(err).Error("error stopping bot")
	}

	log.Info("bot has been shut down")
}
