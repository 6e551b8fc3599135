package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/multiplexcombo/highroller/internal/cooldown"
	"github.com/multiplexcombo/highroller/internal/currency"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/services/economy"
	"github.com/multiplexcombo/highroller/internal/services/wager"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorWin     = 0x2ecc71
	colorLoss    = 0xe74c3c
	colorNeutral = 0x3498db
)

// money renders an amount with the guild's currency display settings
func money(settings *models.GuildSettings, amount int64) string {
	if settings == nil {
		return currency.FormatAmount(amount)
	}
	return fmt.Sprintf("%s %s", currency.FormatAmount(amount), settings.CurrencyEmoji)
}

// hand renders a card hand like "A♠ K♥"
func hand(cards []wager.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// resultColor picks the embed color for a settled wager
func resultColor(won bool) int {
	if won {
		return colorWin
	}
	return colorLoss
}

// resultFields builds the common bet/payout/balance fields for a wager embed
func resultFields(settings *models.GuildSettings, result wager.Result) []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Bet",
			Value:  money(settings, result.BetAmount),
			Inline: true,
		},
	}

	if result.Won {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Payout",
			Value:  money(settings, result.Payout),
			Inline: true,
		})
	}

	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Balance",
		Value:  money(settings, result.NewBalance),
		Inline: true,
	})

	if result.BoostEffect > 1 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Boost",
			Value:  fmt.Sprintf("%gx winnings", result.BoostEffect),
			Inline: true,
		})
	}

	return fields
}

// describeError maps domain errors onto player-facing messages. Unknown
// errors get a generic line so internals never leak into the channel.
func describeError(err error) string {
	if ce, ok := economy.AsCooldownError(err); ok {
		return fmt.Sprintf("You're on cooldown. Try again in %s.", cooldown.FormatDuration(ce.Remaining))
	}

	switch {
	case errors.Is(err, currency.ErrInvalidAmount):
		return "I couldn't read that amount. Try something like `500`, `2.5k` or `all`."
	case errors.Is(err, currency.ErrInsufficientFunds):
		return "You don't have enough to cover that."
	case errors.Is(err, currency.ErrBetBelowMinimum):
		return "That bet is below the table minimum."
	case errors.Is(err, currency.ErrBetAboveMaximum):
		return "That bet is above the table maximum."
	case errors.Is(err, wager.ErrInvalidPrediction):
		return "That prediction isn't valid for this game."
	case errors.Is(err, wager.ErrInvalidSides):
		return "Pick a d6, d20 or d100."
	case errors.Is(err, economy.ErrSelfTransfer):
		return "You can't send money to yourself."
	case errors.Is(err, economy.ErrNonPositiveAmount):
		return "The amount has to be positive."
	case errors.Is(err, economy.ErrUnknownItem):
		return "That item isn't in the shop."
	default:
		return "Something went wrong. Try again in a moment."
	}
}
