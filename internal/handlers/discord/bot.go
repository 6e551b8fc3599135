package discord

import (
	"errors"
	"fmt"

	"github.com/multiplexcombo/highroller/internal/repositories/guild"
	"github.com/multiplexcombo/highroller/internal/services/economy"
	"github.com/multiplexcombo/highroller/internal/services/wager"
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Bot represents the Discord bot instance
type Bot struct {
	session        *discordgo.Session
	commands       map[string]CommandHandler
	commandIDs     map[string]string // Maps command name to command ID
	wagerService   wager.Service
	economyService economy.Service
	guildRepo      guild.Repository
	config         *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	WagerService   wager.Service
	EconomyService economy.Service

	// Repositories
	GuildRepo guild.Repository
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.WagerService == nil {
		return nil, errors.New("wager service cannot be nil")
	}

	if cfg.EconomyService == nil {
		return nil, errors.New("economy service cannot be nil")
	}

	if cfg.GuildRepo == nil {
		return nil, errors.New("guild repository cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:        session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		wagerService:   cfg.WagerService,
		economyService: cfg.EconomyService,
		guildRepo:      cfg.GuildRepo,
		config:         cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewPlayCommand(b.wagerService, b.guildRepo),
		NewWalletCommand(b.economyService, b.guildRepo),
		NewAdminCommand(b.economyService, b.guildRepo),
	}

	for _, h := range handlers {
		if err := b.RegisterCommand(h); err != nil {
			return fmt.Errorf("failed to register %s command: %w", h.GetName(), err)
		}
	}

	log.Info("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.WithError(err).WithField("command", cmdName).Warn("failed to delete command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	log.WithFields(log.Fields{
		"command":  cmd.GetName(),
		"id":       createdCmd.ID,
		"guild_id": guildID,
	}).Info("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		log.WithError(err).WithField("command", name).Error("failed to handle command")
	}
}
