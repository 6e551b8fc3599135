package boost

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockClock "github.com/multiplexcombo/highroller/internal/common/clock/mocks"
	"github.com/multiplexcombo/highroller/internal/models"
	"github.com/multiplexcombo/highroller/internal/repositories/account"
)

type BoostServiceTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	ctrl     *gomock.Controller
	clock    *mockClock.MockClock
	repo     account.Repository
	service  Service
	testNow  time.Time
	testUser string
}

func (s *BoostServiceTestSuite) SetupTest() {
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

	repo, err := account.NewRedis(&account.Config{
		RedisClient: s.client,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := New(&Config{
		AccountRepo: s.repo,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *BoostServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestBoostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BoostServiceTestSuite))
}

func (s *BoostServiceTestSuite) grant(kind string, effect float64, duration time.Duration) models.Boost {
	out, err := s.service.Grant(context.Background(), &GrantInput{
		AccountID: s.testUser,
		Kind:      kind,
		Effect:    effect,
		Duration:  duration,
	})
	s.Require().NoError(err)
	return out.Boost
}

func (s *BoostServiceTestSuite) TestGrantStoresAbsoluteExpiry() {
	b := s.grant(models.BoostMultiplier2x, 2, time.Hour)
	s.Equal(s.testNow.Add(time.Hour), b.ExpiresAt)
	s.Equal(2.0, b.Effect)

	acct, err := s.repo.GetAccount(context.Background(), &account.GetAccountInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)
	s.Contains(acct.Boosts, models.BoostMultiplier2x)
}

func (s *BoostServiceTestSuite) TestGrantOverwritesSameKind() {
	s.grant(models.BoostMultiplier2x, 2, time.Hour)
	s.grant(models.BoostMultiplier2x, 2, 3*time.Hour)

	acct, err := s.repo.GetAccount(context.Background(), &account.GetAccountInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)

	s.Len(acct.Boosts, 1)
	s.Equal(s.testNow.Add(3*time.Hour), acct.Boosts[models.BoostMultiplier2x].ExpiresAt)
}

func (s *BoostServiceTestSuite) TestGrantRejectsBadInput() {
	_, err := s.service.Grant(context.Background(), &GrantInput{
		AccountID: s.testUser,
		Kind:      "",
		Effect:    2,
		Duration:  time.Hour,
	})
	s.Require().Error(err)

	_, err = s.service.Grant(context.Background(), &GrantInput{
		AccountID: s.testUser,
		Kind:      models.BoostMultiplier2x,
		Effect:    2,
		Duration:  0,
	})
	s.Require().Error(err)
}

func (s *BoostServiceTestSuite) TestActive() {
	s.grant(models.BoostMultiplier3x, 3, time.Hour)

	acct, err := s.repo.GetAccount(context.Background(), &account.GetAccountInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)

	b, ok := s.service.Active(acct, models.BoostMultiplier3x)
	s.True(ok)
	s.Equal(3.0, b.Effect)

	_, ok = s.service.Active(acct, models.BoostWork)
	s.False(ok)

	_, ok = s.service.Active(nil, models.BoostMultiplier3x)
	s.False(ok)
}

func (s *BoostServiceTestSuite) TestActiveExpiryBoundary() {
	acct := &models.Account{
		ID: s.testUser,
		Boosts: map[string]models.Boost{
			// Expiring exactly now is already expired
			models.BoostMultiplier2x: {Effect: 2, ExpiresAt: s.testNow},
			models.BoostLuckyCharm:   {Effect: 1.1, ExpiresAt: s.testNow.Add(time.Nanosecond)},
		},
	}

	_, ok := s.service.Active(acct, models.BoostMultiplier2x)
	s.False(ok)

	_, ok = s.service.Active(acct, models.BoostLuckyCharm)
	s.True(ok)
}

func (s *BoostServiceTestSuite) TestPruneRemovesExpired() {
	s.grant(models.BoostMultiplier2x, 2, time.Hour)

	_, err := s.repo.UpdateAccount(context.Background(), &account.UpdateAccountInput{
		AccountID: s.testUser,
		Apply: func(a *models.Account) {
			a.Boosts[models.BoostWork] = models.Boost{
				Effect:    1.5,
				ExpiresAt: s.testNow.Add(-time.Minute),
			}
		},
	})
	s.Require().NoError(err)

	out, err := s.service.Prune(context.Background(), &PruneInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Removed)
	s.Contains(out.Account.Boosts, models.BoostMultiplier2x)
	s.NotContains(out.Account.Boosts, models.BoostWork)
}

func (s *BoostServiceTestSuite) TestPruneSkipsWriteWhenNothingExpired() {
	s.grant(models.BoostMultiplier2x, 2, time.Hour)

	before, err := s.client.Get(context.Background(), "account:"+s.testUser).Result()
	s.Require().NoError(err)

	out, err := s.service.Prune(context.Background(), &PruneInput{
		AccountID: s.testUser,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Removed)

	after, err := s.client.Get(context.Background(), "account:"+s.testUser).Result()
	s.Require().NoError(err)
	s.Equal(before, after)
}
