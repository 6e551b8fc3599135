package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/repositories/guild"
	"github.com/multiplexcombo/highroller/internal/services/wager"
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// PlayCommand handles the /play slash command and its game subcommands
type PlayCommand struct {
	BaseCommand
	wagerService wager.Service
	guildRepo    guild.Repository
}

// NewPlayCommand creates a new play command handler
func NewPlayCommand(wagerService wager.Service, guildRepo guild.Repository) *PlayCommand {
	betOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "bet",
			Description: "Amount to wager, shorthand like 2.5k or all accepted",
			Required:    true,
		}
	}

	return &PlayCommand{
		BaseCommand: BaseCommand{
			Name:        "play",
			Description: "Wager on a casino game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "coinflip",
					Description: "Flip a coin",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prediction",
							Description: "Which side lands up",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Heads", Value: wager.CoinHeads},
								{Name: "Tails", Value: wager.CoinTails},
							},
						},
						betOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "dice",
					Description: "Roll a die against your number",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "sides",
							Description: "Die to roll",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "d6", Value: 6},
								{Name: "d20", Value: 20},
								{Name: "d100", Value: 100},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "prediction",
							Description: "The number you expect",
							Required:    true,
						},
						betOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roulette",
					Description: "Spin the wheel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prediction",
							Description: "red, black, green or a number 0-36",
							Required:    true,
						},
						betOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "slots",
					Description: "Spin the slot machine",
					Options: []*discordgo.ApplicationCommandOption{
						betOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "blackjack",
					Description: "Play a hand of blackjack",
					Options: []*discordgo.ApplicationCommandOption{
						betOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "highlow",
					Description: "Guess whether your card beats the dealer's",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prediction",
							Description: "higher or lower than the dealer",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Higher", Value: wager.PredictionHigher},
								{Name: "Lower", Value: wager.PredictionLower},
							},
						},
						betOption(),
					},
				},
			},
		},
		wagerService: wagerService,
		guildRepo:    guildRepo,
	}
}

// Handle processes a play interaction
func (c *PlayCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return RespondWithError(s, i, "No game selected")
	}

	sub := data.Options[0]
	opts := subcommandOptions(sub)

	userID, _ := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not identify you")
	}

	settings := c.guildSettings(ctx, i.GuildID)
	bet := stringOption(opts, "bet")

	var embed *discordgo.MessageEmbed
	var err error

	switch sub.Name {
	case "coinflip":
		embed, err = c.coinflip(ctx, settings, userID, stringOption(opts, "prediction"), bet)
	case "dice":
		embed, err = c.dice(ctx, settings, userID, int(intOption(opts, "sides", 6)), int(intOption(opts, "prediction", 0)), bet)
	case "roulette":
		embed, err = c.roulette(ctx, settings, userID, stringOption(opts, "prediction"), bet)
	case "slots":
		embed, err = c.slots(ctx, settings, userID, bet)
	case "blackjack":
		embed, err = c.blackjack(ctx, settings, userID, bet)
	case "highlow":
		embed, err = c.highLow(ctx, settings, userID, stringOption(opts, "prediction"), bet)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown game: %s", sub.Name))
	}

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"game":    sub.Name,
			"user_id": userID,
		}).Warn("wager rejected")
		return RespondWithError(s, i, describeError(err))
	}

	return RespondWithEmbed(s, i, embed)
}

func (c *PlayCommand) guildSettings(ctx context.Context, guildID string) *models.GuildSettings {
	if guildID == "" {
		return nil
	}

	settings, err := c.guildRepo.GetGuild(ctx, &guild.GetGuildInput{
		GuildID: guildID,
	})
	if err != nil {
		// Display settings only; fall back to bare amounts
		log.WithError(err).WithField("guild_id", guildID).Warn("failed to load guild settings")
		return nil
	}
	return settings
}

func (c *PlayCommand) coinflip(ctx context.Context, settings *models.GuildSettings, userID, prediction, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.Coinflip(ctx, &wager.CoinflipInput{
		AccountID:  userID,
		Prediction: prediction,
		Bet:        bet,
	})
	if err != nil {
		return nil, err
	}

	title := "The coin lands on " + out.Landed
	description := "You lose."
	if out.Won {
		description = fmt.Sprintf("You called it! You win %s.", money(settings, out.Payout))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       resultColor(out.Won),
		Fields:      resultFields(settings, out.Result),
	}, nil
}

func (c *PlayCommand) dice(ctx context.Context, settings *models.GuildSettings, userID string, sides, prediction int, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.RollDice(ctx, &wager.RollDiceInput{
		AccountID:  userID,
		Sides:      sides,
		Prediction: prediction,
		Bet:        bet,
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("The d%d shows %d", out.Sides, out.Rolled)
	description := fmt.Sprintf("You called %d. Not this time.", out.Prediction)
	if out.Won {
		description = fmt.Sprintf("Dead on! You win %s.", money(settings, out.Payout))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       resultColor(out.Won),
		Fields:      resultFields(settings, out.Result),
	}, nil
}

func (c *PlayCommand) roulette(ctx context.Context, settings *models.GuildSettings, userID, prediction, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.Roulette(ctx, &wager.RouletteInput{
		AccountID:  userID,
		Prediction: prediction,
		Bet:        bet,
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("The ball lands on %d %s", out.Number, out.Color)
	description := "The house takes it."
	if out.Won {
		description = fmt.Sprintf("Winner at %gx! You collect %s.", out.Multiplier, money(settings, out.Payout))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       resultColor(out.Won),
		Fields:      resultFields(settings, out.Result),
	}, nil
}

func (c *PlayCommand) slots(ctx context.Context, settings *models.GuildSettings, userID, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.Slots(ctx, &wager.SlotsInput{
		AccountID: userID,
		Bet:       bet,
	})
	if err != nil {
		return nil, err
	}

	title := strings.Join(out.Emojis, " | ")
	description := "No lines hit."
	if out.Won {
		lines := make([]string, 0, len(out.Lines))
		for _, line := range out.Lines {
			lines = append(lines, fmt.Sprintf("%s x%d pays %s", line.Emoji, line.Count, money(settings, line.Payout)))
		}
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       resultColor(out.Won),
		Fields:      resultFields(settings, out.Result),
	}, nil
}

func (c *PlayCommand) blackjack(ctx context.Context, settings *models.GuildSettings, userID, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.Blackjack(ctx, &wager.BlackjackInput{
		AccountID: userID,
		Bet:       bet,
	})
	if err != nil {
		return nil, err
	}

	var title, description string
	switch out.Outcome {
	case wager.BlackjackOutcomePlayerBlackjack:
		title = "Blackjack!"
		description = fmt.Sprintf("A natural 21 pays %s.", money(settings, out.Payout))
	case wager.BlackjackOutcomeDealerBlackjack:
		title = "Dealer blackjack"
		description = "The dealer flips a natural 21."
	case wager.BlackjackOutcomePush:
		title = "Push"
		description = "Even hands. Your stake comes back."
	case wager.BlackjackOutcomeDealerBust:
		title = "Dealer busts"
		description = fmt.Sprintf("The dealer goes over. You win %s.", money(settings, out.Payout))
	case wager.BlackjackOutcomePlayerWin:
		title = "You win"
		description = fmt.Sprintf("%d beats %d. You win %s.", out.PlayerValue, out.DealerValue, money(settings, out.Payout))
	default:
		title = "Dealer wins"
		description = fmt.Sprintf("%d beats %d.", out.DealerValue, out.PlayerValue)
	}

	color := resultColor(out.Won)
	if out.Outcome == wager.BlackjackOutcomePush {
		color = colorNeutral
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   fmt.Sprintf("Your hand (%d)", out.PlayerValue),
			Value:  hand(out.PlayerHand),
			Inline: true,
		},
		{
			Name:   fmt.Sprintf("Dealer hand (%d)", out.DealerValue),
			Value:  hand(out.DealerHand),
			Inline: true,
		},
	}
	fields = append(fields, resultFields(settings, out.Result)...)

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Fields:      fields,
	}, nil
}

func (c *PlayCommand) highLow(ctx context.Context, settings *models.GuildSettings, userID, prediction, bet string) (*discordgo.MessageEmbed, error) {
	out, err := c.wagerService.HigherOrLower(ctx, &wager.HigherOrLowerInput{
		AccountID:  userID,
		Prediction: prediction,
		Bet:        bet,
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("First card %s, second card %s", out.FirstCard, out.SecondCard)
	description := "Wrong call."
	if out.Tie {
		description = "Rank tie. The house takes it."
	}
	if out.Won {
		description = fmt.Sprintf("Good read! You win %s.", money(settings, out.Payout))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       resultColor(out.Won),
		Fields:      resultFields(settings, out.Result),
	}, nil
}
