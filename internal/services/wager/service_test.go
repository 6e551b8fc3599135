package wager

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockClock "github.com/multiplexcombo/highroller/internal/common/clock/mocks"
	mockUUID "github.com/multiplexcombo/highroller/internal/common/uuid/mocks"
	"github.com/multiplexcombo/highroller/internal/models"
	mockRandom "github.com/multiplexcombo/highroller/internal/random/mocks"
	"github.com/multiplexcombo/highroller/internal/repositories/account"
	"github.com/multiplexcombo/highroller/internal/services/boost"
)

type WagerServiceTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	ctrl     *gomock.Controller
	clock    *mockClock.MockClock
	uuidGen  *mockUUID.MockUUID
	roller   *mockRandom.MockRoller
	repo     account.Repository
	boostSvc boost.Service
	service  Service
	testNow  time.Time
	testUser string
}

func (s *WagerServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.ctrl = gomock.NewController(s.T())
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.testUser = "user-123"

	s.clock = mockClock.NewMockClock(s.ctrl)
	s.clock.EXPECT().Now().Return(s.testNow).AnyTimes()

	s.uuidGen = mockUUID.NewMockUUID(s.ctrl)
	s.uuidGen.EXPECT().NewUUID().Return("test-wager-id").AnyTimes()

	s.roller = mockRandom.NewMockRoller(s.ctrl)

	repo, err := account.NewRedis(&account.Config{
		RedisClient: s.client,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo

	boostSvc, err := boost.New(&boost.Config{
		AccountRepo: s.repo,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.boostSvc = boostSvc

	svc, err := New(&Config{
		AccountRepo:   s.repo,
		BoostService:  s.boostSvc,
		Roller:        s.roller,
		Clock:         s.clock,
		UUIDGenerator: s.uuidGen,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *WagerServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestWagerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WagerServiceTestSuite))
}

// balance fetches the current persisted balance
func (s *WagerServiceTestSuite) balance() int64 {
	acct, err := s.repo.GetAccount(context.Background(), &account.GetAccountInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)
	return acct.Balance
}

func (s *WagerServiceTestSuite) account() *models.Account {
	acct, err := s.repo.GetAccount(context.Background(), &account.GetAccountInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)
	return acct
}

func (s *WagerServiceTestSuite) TestCoinflipWin() {
	s.roller.EXPECT().Intn(2).Return(0)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "heads",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(CoinHeads, out.Landed)
	s.Equal(int64(100), out.BetAmount)
	// 100 x (2 - 0.02)
	s.Equal(int64(198), out.Payout)
	s.Equal(int64(98), out.Profit)
	s.Equal(int64(1098), out.NewBalance)
	s.Equal("test-wager-id", out.ID)

	acct := s.account()
	s.Equal(int64(98), acct.TotalWon)
	s.Equal(int64(0), acct.TotalLost)
	s.Equal(int64(1), acct.GamesPlayed)
}

func (s *WagerServiceTestSuite) TestCoinflipLoss() {
	s.roller.EXPECT().Intn(2).Return(1)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "Heads",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.False(out.Won)
	s.Equal(CoinTails, out.Landed)
	s.Equal(int64(0), out.Payout)
	s.Equal(int64(-100), out.Profit)
	s.Equal(int64(900), out.NewBalance)

	acct := s.account()
	s.Equal(int64(100), acct.TotalLost)
	s.Equal(int64(1), acct.GamesPlayed)
}

func (s *WagerServiceTestSuite) TestCoinflipAllIn() {
	s.roller.EXPECT().Intn(2).Return(1)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "tails",
		Bet:        "all",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(account.StartingBalance, out.BetAmount)
	s.Equal(int64(1980), out.Payout)
}

func (s *WagerServiceTestSuite) TestCoinflipInvalidPredictionCostsNothing() {
	_, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "edge",
		Bet:        "100",
	})
	s.Require().ErrorIs(err, ErrInvalidPrediction)

	s.Equal(account.StartingBalance, s.balance())
	s.Equal(int64(0), s.account().GamesPlayed)
}

func (s *WagerServiceTestSuite) TestCoinflipInsufficientFunds() {
	_, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "heads",
		Bet:        "5k",
	})
	s.Require().Error(err)

	s.Equal(account.StartingBalance, s.balance())
}

func (s *WagerServiceTestSuite) TestRollDiceWin() {
	s.roller.EXPECT().Roll(6).Return(4)

	out, err := s.service.RollDice(context.Background(), &RollDiceInput{
		AccountID:  s.testUser,
		Sides:      6,
		Prediction: 4,
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(4, out.Rolled)
	// 100 x 6 x (1 - 0.02)
	s.Equal(int64(588), out.Payout)
	s.Equal(int64(1488), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestRollDiceLoss() {
	s.roller.EXPECT().Roll(20).Return(7)

	out, err := s.service.RollDice(context.Background(), &RollDiceInput{
		AccountID:  s.testUser,
		Sides:      20,
		Prediction: 13,
		Bet:        "50",
	})
	s.Require().NoError(err)

	s.False(out.Won)
	s.Equal(int64(950), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestRollDiceRejectsBadInput() {
	_, err := s.service.RollDice(context.Background(), &RollDiceInput{
		AccountID:  s.testUser,
		Sides:      7,
		Prediction: 3,
		Bet:        "100",
	})
	s.Require().ErrorIs(err, ErrInvalidSides)

	_, err = s.service.RollDice(context.Background(), &RollDiceInput{
		AccountID:  s.testUser,
		Sides:      6,
		Prediction: 7,
		Bet:        "100",
	})
	s.Require().ErrorIs(err, ErrInvalidPrediction)

	// Neither rejection touched the account
	s.Equal(account.StartingBalance, s.balance())
}

func (s *WagerServiceTestSuite) TestRouletteGreenZero() {
	s.roller.EXPECT().Intn(37).Return(0)

	out, err := s.service.Roulette(context.Background(), &RouletteInput{
		AccountID:  s.testUser,
		Prediction: "green",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(0, out.Number)
	s.Equal(ColorGreen, out.Color)
	s.Equal(35.0, out.Multiplier)
	s.Equal(int64(3500), out.Payout)
}

func (s *WagerServiceTestSuite) TestRouletteExactNumber() {
	s.roller.EXPECT().Intn(37).Return(17)

	out, err := s.service.Roulette(context.Background(), &RouletteInput{
		AccountID:  s.testUser,
		Prediction: "17",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(ColorBlack, out.Color)
	s.Equal(int64(3500), out.Payout)
}

func (s *WagerServiceTestSuite) TestRouletteColor() {
	s.roller.EXPECT().Intn(37).Return(32)

	out, err := s.service.Roulette(context.Background(), &RouletteInput{
		AccountID:  s.testUser,
		Prediction: "red",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(ColorRed, out.Color)
	s.Equal(1.8, out.Multiplier)
	s.Equal(int64(180), out.Payout)
}

func (s *WagerServiceTestSuite) TestRouletteColorMiss() {
	s.roller.EXPECT().Intn(37).Return(32)

	out, err := s.service.Roulette(context.Background(), &RouletteInput{
		AccountID:  s.testUser,
		Prediction: "black",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.False(out.Won)
	s.Equal(0.0, out.Multiplier)
	s.Equal(int64(900), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestRouletteInvalidPrediction() {
	for _, prediction := range []string{"37", "-1", "purple", ""} {
		_, err := s.service.Roulette(context.Background(), &RouletteInput{
			AccountID:  s.testUser,
			Prediction: prediction,
			Bet:        "100",
		})
		s.Require().ErrorIs(err, ErrInvalidPrediction, "prediction %q", prediction)
	}

	s.Equal(account.StartingBalance, s.balance())
}

func (s *WagerServiceTestSuite) TestSlotsTripleSeven() {
	// Index 0 is the seven on every reel
	s.roller.EXPECT().WeightedIndex(slotWeights).Return(0).Times(3)

	out, err := s.service.Slots(context.Background(), &SlotsInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal([]string{"seven", "seven", "seven"}, out.Reels)
	s.Require().Len(out.Lines, 1)
	s.Equal(3, out.Lines[0].Count)
	s.Equal(500.0, out.Lines[0].Multiplier)
	s.Equal(int64(50_000), out.Payout)
}

func (s *WagerServiceTestSuite) TestSlotsDistinctSymbolsLose() {
	gomock.InOrder(
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(0),
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(1),
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(2),
	)

	out, err := s.service.Slots(context.Background(), &SlotsInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.False(out.Won)
	s.Empty(out.Lines)
	s.Equal(int64(900), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestSlotsLowPairPaysUnderStake() {
	// Two cherries pay 0.25x, a net loss that still counts as a hit
	gomock.InOrder(
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(8),
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(8),
		s.roller.EXPECT().WeightedIndex(slotWeights).Return(0),
	)

	out, err := s.service.Slots(context.Background(), &SlotsInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(int64(25), out.Payout)
	s.Equal(int64(-75), out.Profit)

	acct := s.account()
	s.Equal(int64(75), acct.TotalLost)
}

func (s *WagerServiceTestSuite) TestBlackjackPushReturnsStake() {
	// An unshuffled deck deals K Q to the player and J 10 to the dealer,
	// a 20 versus 20 push
	s.roller.EXPECT().Shuffle(52, gomock.Any())

	out, err := s.service.Blackjack(context.Background(), &BlackjackInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.Equal(BlackjackOutcomePush, out.Outcome)
	s.False(out.Won)
	s.Equal(int64(100), out.Payout)
	s.Equal(int64(0), out.Profit)
	s.Equal(account.StartingBalance, out.NewBalance)

	acct := s.account()
	s.Equal(int64(0), acct.TotalWon)
	s.Equal(int64(0), acct.TotalLost)
	s.Equal(int64(1), acct.GamesPlayed)
}

func (s *WagerServiceTestSuite) TestBlackjackNaturalPaysThreeToTwo() {
	// Move the ace of spades to the top of the deck so the player is
	// dealt A Q, a natural 21 against the dealer's 20
	s.roller.EXPECT().Shuffle(52, gomock.Any()).Do(func(_ int, swap func(i, j int)) {
		swap(0, 51)
	})

	out, err := s.service.Blackjack(context.Background(), &BlackjackInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.Equal(BlackjackOutcomePlayerBlackjack, out.Outcome)
	s.True(out.Won)
	s.Equal(21, out.PlayerValue)
	s.Equal(20, out.DealerValue)
	s.Equal(int64(250), out.Payout)
	s.Equal(int64(1150), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestHandValue() {
	cases := []struct {
		hand     []Card
		expected int
	}{
		{[]Card{{Rank: "A"}, {Rank: "A"}}, 12},
		{[]Card{{Rank: "A"}, {Rank: "K"}}, 21},
		{[]Card{{Rank: "A"}, {Rank: "5"}, {Rank: "9"}}, 15},
		{[]Card{{Rank: "10"}, {Rank: "J"}}, 20},
		{[]Card{{Rank: "A"}, {Rank: "A"}, {Rank: "9"}}, 21},
		{[]Card{{Rank: "7"}, {Rank: "8"}, {Rank: "K"}}, 25},
	}

	for _, tc := range cases {
		s.Equal(tc.expected, handValue(tc.hand), "hand %v", tc.hand)
	}
}

func (s *WagerServiceTestSuite) TestHigherOrLowerWin() {
	gomock.InOrder(
		s.roller.EXPECT().Roll(13).Return(3),
		s.roller.EXPECT().Roll(13).Return(8),
	)
	s.roller.EXPECT().Intn(4).Return(0).Times(2)

	out, err := s.service.HigherOrLower(context.Background(), &HigherOrLowerInput{
		AccountID:  s.testUser,
		Prediction: "higher",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.False(out.Tie)
	s.Equal("3", out.FirstCard.Rank)
	s.Equal("8", out.SecondCard.Rank)
	s.Equal(int64(190), out.Payout)
}

func (s *WagerServiceTestSuite) TestHigherOrLowerTieIsHouseWin() {
	gomock.InOrder(
		s.roller.EXPECT().Roll(13).Return(5),
		s.roller.EXPECT().Roll(13).Return(5),
	)
	s.roller.EXPECT().Intn(4).Return(1).Times(2)

	out, err := s.service.HigherOrLower(context.Background(), &HigherOrLowerInput{
		AccountID:  s.testUser,
		Prediction: "higher",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Tie)
	s.False(out.Won)
	s.Equal(int64(0), out.Payout)
}

func (s *WagerServiceTestSuite) TestWinningsBoostScalesPayout() {
	_, err := s.boostSvc.Grant(context.Background(), &boost.GrantInput{
		AccountID: s.testUser,
		Kind:      models.BoostMultiplier2x,
		Effect:    2,
		Duration:  time.Hour,
	})
	s.Require().NoError(err)

	s.roller.EXPECT().Intn(2).Return(0)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "heads",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.True(out.Won)
	s.Equal(2.0, out.BoostEffect)
	// 198 base payout doubled
	s.Equal(int64(396), out.Payout)
	s.Equal(int64(1296), out.NewBalance)
}

func (s *WagerServiceTestSuite) TestStrongestBoostWins() {
	for _, grant := range []struct {
		kind   string
		effect float64
	}{
		{models.BoostMultiplier2x, 2},
		{models.BoostMultiplier3x, 3},
	} {
		_, err := s.boostSvc.Grant(context.Background(), &boost.GrantInput{
			AccountID: s.testUser,
			Kind:      grant.kind,
			Effect:    grant.effect,
			Duration:  time.Hour,
		})
		s.Require().NoError(err)
	}

	s.roller.EXPECT().Intn(2).Return(0)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "heads",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.Equal(3.0, out.BoostEffect)
	s.Equal(int64(594), out.Payout)
}

func (s *WagerServiceTestSuite) TestBoostNeverAppliesToPush() {
	_, err := s.boostSvc.Grant(context.Background(), &boost.GrantInput{
		AccountID: s.testUser,
		Kind:      models.BoostMultiplier2x,
		Effect:    2,
		Duration:  time.Hour,
	})
	s.Require().NoError(err)

	s.roller.EXPECT().Shuffle(52, gomock.Any())

	out, err := s.service.Blackjack(context.Background(), &BlackjackInput{
		AccountID: s.testUser,
		Bet:       "100",
	})
	s.Require().NoError(err)

	s.Equal(BlackjackOutcomePush, out.Outcome)
	s.Equal(int64(100), out.Payout)
	s.Equal(0.0, out.BoostEffect)
}

func (s *WagerServiceTestSuite) TestExpiredBoostIsIgnoredAndPruned() {
	_, err := s.repo.UpdateAccount(context.Background(), &account.UpdateAccountInput{
		AccountID: s.testUser,
		Apply: func(a *models.Account) {
			a.Boosts = map[string]models.Boost{
				models.BoostMultiplier2x: {Effect: 2, ExpiresAt: s.testNow.Add(-time.Minute)},
			}
		},
	})
	s.Require().NoError(err)

	s.roller.EXPECT().Intn(2).Return(0)

	out, err := s.service.Coinflip(context.Background(), &CoinflipInput{
		AccountID:  s.testUser,
		Prediction: "heads",
		Bet:        "100",
	})
	s.Require().NoError(err)

	s.Equal(0.0, out.BoostEffect)
	s.Equal(int64(198), out.Payout)
	s.Empty(s.account().Boosts)
}
