package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/multiplexcombo/highroller/internal/cooldown"
	"github.com/multiplexcombo/highroller/internal/currency"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/repositories/guild"
	"github.com/multiplexcombo/highroller/internal/services/economy"
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// WalletCommand handles the /wallet slash command: profile, rewards,
// shifts, transfers, the shop and the leaderboard.
type WalletCommand struct {
	BaseCommand
	economyService economy.Service
	guildRepo      guild.Repository
}

// NewWalletCommand creates a new wallet command handler
func NewWalletCommand(economyService economy.Service, guildRepo guild.Repository) *WalletCommand {
	itemChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(economy.ShopItems))
	for _, item := range economy.ShopItems {
		itemChoices = append(itemChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  item.Name,
			Value: item.ID,
		})
	}

	return &WalletCommand{
		BaseCommand: BaseCommand{
			Name:        "wallet",
			Description: "Your balance, rewards and the shop",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "profile",
					Description: "Show your balance and stats",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "claim",
					Description: "Claim a periodic reward",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "reward",
							Description: "Which reward to claim",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Daily", Value: cooldown.KindDaily},
								{Name: "Weekly", Value: cooldown.KindWeekly},
								{Name: "Monthly", Value: cooldown.KindMonthly},
								{Name: "Yearly", Value: cooldown.KindYearly},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "vote",
					Description: "Claim your vote reward",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "work",
					Description: "Work a shift for pay",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "overtime",
					Description: "Work a longer shift for bigger pay",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "send",
					Description: "Send money to another player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "recipient",
							Description: "Who receives the money",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "amount",
							Description: "Amount to send, shorthand or all accepted",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "shop",
					Description: "Browse the item shop",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy an item from the shop",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "The item to buy",
							Required:    true,
							Choices:     itemChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Top players by a metric",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "metric",
							Description: "How to rank players",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Balance", Value: economy.MetricBalance},
								{Name: "Total won", Value: economy.MetricTotalWon},
								{Name: "Games played", Value: economy.MetricGamesPlayed},
								{Name: "Votes", Value: economy.MetricVoteCount},
							},
						},
					},
				},
			},
		},
		economyService: economyService,
		guildRepo:      guildRepo,
	}
}

// Handle processes a wallet interaction
func (c *WalletCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return RespondWithError(s, i, "No action selected")
	}

	sub := data.Options[0]
	opts := subcommandOptions(sub)

	userID, username := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not identify you")
	}

	settings := c.guildSettings(ctx, i.GuildID)

	var embed *discordgo.MessageEmbed
	var err error

	switch sub.Name {
	case "profile":
		embed, err = c.profile(ctx, settings, userID, username)
	case "claim":
		embed, err = c.claim(ctx, settings, userID, stringOption(opts, "reward"))
	case "vote":
		embed, err = c.vote(ctx, settings, userID)
	case "work":
		embed, err = c.work(ctx, settings, userID, false)
	case "overtime":
		embed, err = c.work(ctx, settings, userID, true)
	case "send":
		embed, err = c.send(ctx, settings, userID, userOption(s, opts, "recipient"), stringOption(opts, "amount"))
	case "shop":
		embed = c.shop(settings)
	case "buy":
		embed, err = c.buy(ctx, settings, userID, stringOption(opts, "item"))
	case "leaderboard":
		embed, err = c.leaderboard(ctx, settings, stringOption(opts, "metric"))
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", sub.Name))
	}

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"action":  sub.Name,
			"user_id": userID,
		}).Warn("wallet action rejected")
		return RespondWithError(s, i, describeError(err))
	}

	return RespondWithEmbed(s, i, embed)
}

func (c *WalletCommand) guildSettings(ctx context.Context, guildID string) *models.GuildSettings {
	if guildID == "" {
		return nil
	}

	settings, err := c.guildRepo.GetGuild(ctx, &guild.GetGuildInput{
		GuildID: guildID,
	})
	if err != nil {
		log.WithError(err).WithField("guild_id", guildID).Warn("failed to load guild settings")
		return nil
	}
	return settings
}

func (c *WalletCommand) profile(ctx context.Context, settings *models.GuildSettings, userID, username string) (*discordgo.MessageEmbed, error) {
	out, err := c.economyService.GetProfile(ctx, &economy.GetProfileInput{
		AccountID: userID,
	})
	if err != nil {
		return nil, err
	}

	acct := out.Account

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Balance",
			Value:  money(settings, acct.Balance),
			Inline: true,
		},
		{
			Name:   "Total won",
			Value:  currency.FormatAmount(acct.TotalWon),
			Inline: true,
		},
		{
			Name:   "Total lost",
			Value:  currency.FormatAmount(acct.TotalLost),
			Inline: true,
		},
		{
			Name:   "Games played",
			Value:  fmt.Sprintf("%d", acct.GamesPlayed),
			Inline: true,
		},
		{
			Name:   "Votes",
			Value:  fmt.Sprintf("%d", acct.VoteCount),
			Inline: true,
		},
	}

	if len(acct.Boosts) > 0 {
		boosts := make([]string, 0, len(acct.Boosts))
		for kind, b := range acct.Boosts {
			boosts = append(boosts, fmt.Sprintf("%s (%gx, expires <t:%d:R>)", kind, b.Effect, b.ExpiresAt.Unix()))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Active boosts",
			Value: strings.Join(boosts, "\n"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  username,
		Color:  colorNeutral,
		Fields: fields,
	}, nil
}

func (c *WalletCommand) claim(ctx context.Context, settings *models.GuildSettings, userID, kind string) (*discordgo.MessageEmbed, error) {
	out, err := c.economyService.ClaimReward(ctx, &economy.ClaimRewardInput{
		AccountID: userID,
		Kind:      kind,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.MessageEmbed{
		Title:       "Reward claimed",
		Description: fmt.Sprintf("You collect your %s reward of %s. Next claim <t:%d:R>.", kind, money(settings, out.Amount), out.NextClaimAt.Unix()),
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Balance",
				Value:  money(settings, out.NewBalance),
				Inline: true,
			},
		},
	}, nil
}

func (c *WalletCommand) vote(ctx context.Context, settings *models.GuildSettings, userID string) (*discordgo.MessageEmbed, error) {
	out, err := c.economyService.ClaimVote(ctx, &economy.ClaimVoteInput{
		AccountID: userID,
	})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Vote #%d pays %s.", out.VoteCount, money(settings, out.Amount))
	if out.Multiplier > 1 {
		description = fmt.Sprintf("Vote #%d hits a %dx streak and pays %s!", out.VoteCount, out.Multiplier, money(settings, out.Amount))
	}

	return &discordgo.MessageEmbed{
		Title:       "Thanks for voting!",
		Description: description,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Balance",
				Value:  money(settings, out.NewBalance),
				Inline: true,
			},
		},
	}, nil
}

func (c *WalletCommand) work(ctx context.Context, settings *models.GuildSettings, userID string, overtime bool) (*discordgo.MessageEmbed, error) {
	var out *economy.WorkOutput
	var err error
	if overtime {
		out, err = c.economyService.Overtime(ctx, &economy.WorkInput{AccountID: userID})
	} else {
		out, err = c.economyService.Work(ctx, &economy.WorkInput{AccountID: userID})
	}
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("You work a shift as a %s and earn %s.", out.JobName, money(settings, out.FinalPay))
	if out.Boosted {
		description = fmt.Sprintf("You work a shift as a %s and earn %s (work boost applied).", out.JobName, money(settings, out.FinalPay))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Shift complete", out.JobEmoji),
		Description: description,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Balance",
				Value:  money(settings, out.NewBalance),
				Inline: true,
			},
			{
				Name:   "Next shift",
				Value:  fmt.Sprintf("<t:%d:R>", out.NextShiftAt.Unix()),
				Inline: true,
			},
		},
	}, nil
}

func (c *WalletCommand) send(ctx context.Context, settings *models.GuildSettings, userID, recipientID, amount string) (*discordgo.MessageEmbed, error) {
	if recipientID == "" {
		return nil, economy.ErrNonPositiveAmount
	}

	out, err := c.economyService.Transfer(ctx, &economy.TransferInput{
		FromAccountID: userID,
		ToAccountID:   recipientID,
		Amount:        amount,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.MessageEmbed{
		Title:       "Transfer sent",
		Description: fmt.Sprintf("You sent %s to <@%s>.", money(settings, out.Amount), recipientID),
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Your balance",
				Value:  money(settings, out.SenderBalance),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Receipt " + out.ID,
		},
	}, nil
}

func (c *WalletCommand) shop(settings *models.GuildSettings) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(economy.ShopItems))
	for _, item := range economy.ShopItems {
		value := item.Description
		if item.Kind == economy.ItemKindBoost {
			value = fmt.Sprintf("%s\nLasts %s.", item.Description, cooldown.FormatDuration(item.Duration))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s | %s", item.Emoji, item.Name, money(settings, item.Price)),
			Value: value,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Item shop",
		Description: "Buy with `/wallet buy`.",
		Color:       colorNeutral,
		Fields:      fields,
	}
}

func (c *WalletCommand) buy(ctx context.Context, settings *models.GuildSettings, userID, itemID string) (*discordgo.MessageEmbed, error) {
	out, err := c.economyService.BuyItem(ctx, &economy.BuyItemInput{
		AccountID: userID,
		ItemID:    itemID,
	})
	if err != nil {
		return nil, err
	}

	var description string
	switch {
	case out.Boost != nil:
		description = fmt.Sprintf("%s is active until <t:%d:f>.", out.Item.Name, out.Boost.ExpiresAt.Unix())
	case out.LootReward > 0:
		description = fmt.Sprintf("You crack open the %s and find %s!", out.Item.Name, money(settings, out.LootReward))
	default:
		description = fmt.Sprintf("You bought %s.", out.Item.Name)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Purchased %s", out.Item.Emoji, out.Item.Name),
		Description: description,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Balance",
				Value:  money(settings, out.NewBalance),
				Inline: true,
			},
		},
	}, nil
}

func (c *WalletCommand) leaderboard(ctx context.Context, settings *models.GuildSettings, metric string) (*discordgo.MessageEmbed, error) {
	out, err := c.economyService.Leaderboard(ctx, &economy.LeaderboardInput{
		Metric: metric,
	})
	if err != nil {
		return nil, err
	}

	if metric == "" {
		metric = economy.MetricBalance
	}

	if len(out.Entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Leaderboard",
			Description: "Nobody has played yet.",
			Color:       colorNeutral,
		}, nil
	}

	lines := make([]string, 0, len(out.Entries))
	for rank, entry := range out.Entries {
		value := currency.FormatAmount(entry.Value)
		if metric == economy.MetricBalance {
			value = money(settings, entry.Value)
		}
		lines = append(lines, fmt.Sprintf("**%d.** <@%s>: %s", rank+1, entry.AccountID, value))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Leaderboard by %s", strings.ReplaceAll(metric, "_", " ")),
		Description: strings.Join(lines, "\n"),
		Color:       colorNeutral,
		Timestamp:   time.Now().Format(time.RFC3339),
	}, nil
}
