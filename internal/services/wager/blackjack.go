package wager

import (
	"context"
	"errors"
)

var (
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)

// newDeck builds a full 52-card deck shuffled with the service roller. A
// fresh deck per hand means no mid-hand reshuffle can ever be needed.
func (s *service) newDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}

	s.roller.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return deck
}

// handValue totals a blackjack hand. Aces count 11 and are demoted to 1
// one at a time while the hand would bust, so soft hands resolve correctly
// and two aces value to 12, not 22.
func handValue(hand []Card) int {
	value := 0
	aces := 0

	for _, card := range hand {
		switch card.Rank {
		case "J", "Q", "K":
			value += 10
		case "A":
			aces++
			value += 11
		case "10":
			value += 10
		default:
			value += int(card.Rank[0] - '0')
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

// Blackjack plays a full hand: the player stands on the initial deal and
// the dealer draws to 17, standing on every 17 soft or hard. A natural 21
// beats a drawn 21 and pays 3:2.
func (s *service) Blackjack(ctx context.Context, input *BlackjackInput) (*BlackjackOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	bet, err := s.placeBet(ctx, input.AccountID, input.Bet)
	if err != nil {
		return nil, err
	}

	deck := s.newDeck()
	draw := func() Card {
		card := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		return card
	}

	playerHand := []Card{draw(), draw()}
	dealerHand := []Card{draw(), draw()}

	playerValue := handValue(playerHand)
	dealerValue := handValue(dealerHand)

	playerNatural := playerValue == 21
	dealerNatural := dealerValue == 21

	var payout int64
	var won bool
	var outcome string

	switch {
	case playerNatural && dealerNatural:
		// Push: the stake comes back, zero profit
		payout = bet
		outcome = BlackjackOutcomePush
	case playerNatural:
		// Natural pays 3:2
		payout = int64(float64(bet) * 2.5)
		won = true
		outcome = BlackjackOutcomePlayerBlackjack
	case dealerNatural:
		outcome = BlackjackOutcomeDealerBlackjack
	default:
		// Dealer draws to 17, standing on soft or hard 17+
		for dealerValue < 17 {
			dealerHand = append(dealerHand, draw())
			dealerValue = handValue(dealerHand)
		}

		switch {
		case dealerValue > 21:
			payout = bet * 2
			won = true
			outcome = BlackjackOutcomeDealerBust
		case dealerValue > playerValue:
			outcome = BlackjackOutcomeDealerWin
		case playerValue > dealerValue:
			payout = bet * 2
			won = true
			outcome = BlackjackOutcomePlayerWin
		default:
			payout = bet
			outcome = BlackjackOutcomePush
		}
	}

	result, err := s.settle(ctx, input.AccountID, bet, payout, won)
	if err != nil {
		return nil, err
	}

	return &BlackjackOutput{
		Result:      result,
		PlayerHand:  playerHand,
		DealerHand:  dealerHand,
		PlayerValue: playerValue,
		DealerValue: dealerValue,
		Outcome:     outcome,
	}, nil
}
