package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/repositories/guild"
	"github.com/multiplexcombo/highroller/internal/services/economy"
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// errMissingTarget guards against interactions arriving without the
// required user option
var errMissingTarget = errors.New("missing target user")

// AdminCommand handles the /casino-admin slash command. It is guild-only
// and restricted to server administrators and users on the guild's admin
// list.
type AdminCommand struct {
	BaseCommand
	economyService economy.Service
	guildRepo      guild.Repository
}

// NewAdminCommand creates a new admin command handler
func NewAdminCommand(economyService economy.Service, guildRepo guild.Repository) *AdminCommand {
	targetOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "target",
			Description: description,
			Required:    true,
		}
	}
	amountOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "amount",
			Description: "Amount, shorthand like 2.5k accepted",
			Required:    true,
		}
	}

	return &AdminCommand{
		BaseCommand: BaseCommand{
			Name:        "casino-admin",
			Description: "Manage the casino economy",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "give",
					Description: "Credit a player's balance",
					Options: []*discordgo.ApplicationCommandOption{
						targetOption("Player to credit"),
						amountOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "take",
					Description: "Debit a player's balance, flooring at zero",
					Options: []*discordgo.ApplicationCommandOption{
						targetOption("Player to debit"),
						amountOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Reset a player's account to defaults",
					Options: []*discordgo.ApplicationCommandOption{
						targetOption("Player to reset"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "currency",
					Description: "Set the guild's currency display",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Currency name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "emoji",
							Description: "Currency emoji",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "admin-add",
					Description: "Add a user to the casino admin list",
					Options: []*discordgo.ApplicationCommandOption{
						targetOption("User to add"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "admin-remove",
					Description: "Remove a user from the casino admin list",
					Options: []*discordgo.ApplicationCommandOption{
						targetOption("User to remove"),
					},
				},
			},
		},
		economyService: economyService,
		guildRepo:      guildRepo,
	}
}

// Handle processes an admin interaction
func (c *AdminCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if i.GuildID == "" || i.Member == nil {
		return RespondWithEphemeralMessage(s, i, "This command only works in a server.")
	}

	settings, err := c.guildRepo.GetGuild(ctx, &guild.GetGuildInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.WithError(err).WithField("guild_id", i.GuildID).Error("failed to load guild settings")
		return RespondWithError(s, i, describeError(err))
	}

	userID, _ := interactionUser(i)
	if !c.authorized(i, settings, userID) {
		return RespondWithEphemeralMessage(s, i, "You don't have permission to manage the casino.")
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return RespondWithError(s, i, "No action selected")
	}

	sub := data.Options[0]
	opts := subcommandOptions(sub)
	target := userOption(s, opts, "target")

	var message string

	switch sub.Name {
	case "give":
		message, err = c.give(ctx, settings, target, stringOption(opts, "amount"))
	case "take":
		message, err = c.take(ctx, settings, target, stringOption(opts, "amount"))
	case "reset":
		message, err = c.reset(ctx, target)
	case "currency":
		message, err = c.setCurrency(ctx, i.GuildID, stringOption(opts, "name"), stringOption(opts, "emoji"))
	case "admin-add":
		message, err = c.setAdmin(ctx, i.GuildID, target, true)
	case "admin-remove":
		message, err = c.setAdmin(ctx, i.GuildID, target, false)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", sub.Name))
	}

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"action":   sub.Name,
			"admin_id": userID,
			"target":   target,
		}).Warn("admin action failed")
		return RespondWithError(s, i, describeError(err))
	}

	log.WithFields(log.Fields{
		"action":   sub.Name,
		"admin_id": userID,
		"target":   target,
		"guild_id": i.GuildID,
	}).Info("admin action applied")

	return RespondWithEphemeralMessage(s, i, message)
}

// authorized allows server administrators and the guild's admin list
func (c *AdminCommand) authorized(i *discordgo.InteractionCreate, settings *models.GuildSettings, userID string) bool {
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return settings.IsAdmin(userID)
}

func (c *AdminCommand) give(ctx context.Context, settings *models.GuildSettings, target, amount string) (string, error) {
	if target == "" {
		return "", errMissingTarget
	}

	out, err := c.economyService.GiveMoney(ctx, &economy.GiveMoneyInput{
		AccountID: target,
		Amount:    amount,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Gave %s to <@%s>. New balance: %s.", money(settings, out.Amount), target, money(settings, out.NewBalance)), nil
}

func (c *AdminCommand) take(ctx context.Context, settings *models.GuildSettings, target, amount string) (string, error) {
	if target == "" {
		return "", errMissingTarget
	}

	out, err := c.economyService.TakeMoney(ctx, &economy.TakeMoneyInput{
		AccountID: target,
		Amount:    amount,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Took %s from <@%s>. New balance: %s.", money(settings, out.Taken), target, money(settings, out.NewBalance)), nil
}

func (c *AdminCommand) reset(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", errMissingTarget
	}

	if _, err := c.economyService.ResetAccount(ctx, &economy.ResetAccountInput{
		AccountID: target,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Reset <@%s> to a fresh account.", target), nil
}

func (c *AdminCommand) setCurrency(ctx context.Context, guildID, name, emoji string) (string, error) {
	if _, err := c.guildRepo.UpdateGuild(ctx, &guild.UpdateGuildInput{
		GuildID: guildID,
		Apply: func(settings *models.GuildSettings) {
			settings.CurrencyName = name
			settings.CurrencyEmoji = emoji
		},
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Currency is now %s %s.", name, emoji), nil
}

func (c *AdminCommand) setAdmin(ctx context.Context, guildID, target string, add bool) (string, error) {
	if target == "" {
		return "", errMissingTarget
	}

	if _, err := c.guildRepo.UpdateGuild(ctx, &guild.UpdateGuildInput{
		GuildID: guildID,
		Apply: func(settings *models.GuildSettings) {
			if add {
				if !settings.IsAdmin(target) {
					settings.AdminIDs = append(settings.AdminIDs, target)
				}
				return
			}
			kept := settings.AdminIDs[:0]
			for _, id := range settings.AdminIDs {
				if id != target {
					kept = append(kept, id)
				}
			}
			settings.AdminIDs = kept
		},
	}); err != nil {
		return "", err
	}

	if add {
		return fmt.Sprintf("<@%s> can now manage the casino.", target), nil
	}
	return fmt.Sprintf("<@%s> can no longer manage the casino.", target), nil
}
