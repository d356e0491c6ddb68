package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dado-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient   *redis.Client
	mock         redismock.ClientMock
	repo         Repository
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.repo = NewRedis(s.mockClient, s.timeProvider)
	s.now = time.Date(2026, 10, 17, 14, 3, 9, 0, time.UTC)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) record(name string) *entities.CharacterRecord {
	return &entities.CharacterRecord{
		System: entities.GameSystemWarhammer,
		Name:   name,
		Fields: map[string]any{
			"current_life": float64(10),
			"armor":        "Couro",
		},
	}
}

func (s *RedisRepoTestSuite) encode(record *entities.CharacterRecord) string {
	raw, err := json.Marshal(Data{
		System:    record.System,
		Name:      record.Name,
		Fields:    record.Fields,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	})
	s.Require().NoError(err)
	return string(raw)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	s.timeProvider.EXPECT().Now().Return(s.now)

	expected := s.record("Gunther")
	expected.CreatedAt = s.now
	expected.UpdatedAt = s.now

	s.mock.ExpectSetNX("character:warhammer:Gunther", s.encode(expected), 0).SetVal(true)
	s.mock.ExpectSAdd("system:warhammer:characters", "Gunther").SetVal(1)

	record := s.record("Gunther")
	s.Require().NoError(s.repo.Create(ctx, record))
	s.Equal(s.now, record.CreatedAt)
	s.Equal(s.now, record.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	ctx := context.Background()
	s.timeProvider.EXPECT().Now().Return(s.now)

	expected := s.record("Gunther")
	expected.CreatedAt = s.now
	expected.UpdatedAt = s.now

	s.mock.ExpectSetNX("character:warhammer:Gunther", s.encode(expected), 0).SetVal(false)

	err := s.repo.Create(ctx, s.record("Gunther"))
	s.Require().Error(err)

	var coded *dnderr.Error
	s.ErrorAs(err, &coded)
	s.Equal(dnderr.CodeAlreadyExists, coded.Code)
}

func (s *RedisRepoTestSuite) TestCreate_InvalidInput() {
	err := s.repo.Create(context.Background(), nil)
	s.True(dnderr.IsInvalidArgument(err))

	err = s.repo.Create(context.Background(), &entities.CharacterRecord{System: "dnd5e", Name: "x"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	stored := s.record("Gunther")
	stored.CreatedAt = s.now
	stored.UpdatedAt = s.now

	s.mock.ExpectGet("character:warhammer:Gunther").SetVal(s.encode(stored))

	got, err := s.repo.Get(ctx, entities.GameSystemWarhammer, "Gunther")
	s.Require().NoError(err)
	s.Equal(stored, got)
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	s.mock.ExpectGet("character:warhammer:Ghost").RedisNil()

	_, err := s.repo.Get(context.Background(), entities.GameSystemWarhammer, "Ghost")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_RedisError() {
	s.mock.ExpectGet("character:warhammer:Gunther").SetErr(errors.New("connection refused"))

	_, err := s.repo.Get(context.Background(), entities.GameSystemWarhammer, "Gunther")
	s.Require().Error(err)
	s.False(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestListBySystem() {
	ctx := context.Background()
	stored := s.record("Gunther")
	stored.CreatedAt = s.now
	stored.UpdatedAt = s.now

	s.mock.ExpectSMembers("system:warhammer:characters").SetVal([]string{"Gunther"})
	s.mock.ExpectGet("character:warhammer:Gunther").SetVal(s.encode(stored))

	list, err := s.repo.ListBySystem(ctx, entities.GameSystemWarhammer)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Gunther", list[0].Name)
}

func (s *RedisRepoTestSuite) TestListBySystem_Empty() {
	s.mock.ExpectSMembers("system:cyberpunk:characters").SetVal([]string{})

	list, err := s.repo.ListBySystem(context.Background(), entities.GameSystemCyberpunk)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RedisRepoTestSuite) TestListBySystem_DanglingIndex() {
	s.mock.ExpectSMembers("system:warhammer:characters").SetVal([]string{"Ghost"})
	s.mock.ExpectGet("character:warhammer:Ghost").RedisNil()

	_, err := s.repo.ListBySystem(context.Background(), entities.GameSystemWarhammer)
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	s.timeProvider.EXPECT().Now().Return(s.now)

	record := s.record("Gunther")
	record.Fields["current_life"] = float64(3)

	expected := s.record("Gunther")
	expected.Fields["current_life"] = float64(3)
	expected.UpdatedAt = s.now

	s.mock.ExpectSetXX("character:warhammer:Gunther", s.encode(expected), 0).SetVal(true)

	s.Require().NoError(s.repo.Update(ctx, record))
	s.Equal(s.now, record.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdate_NotFound() {
	s.timeProvider.EXPECT().Now().Return(s.now)

	expected := s.record("Ghost")
	expected.UpdatedAt = s.now
	s.mock.ExpectSetXX("character:warhammer:Ghost", s.encode(expected), 0).SetVal(false)

	err := s.repo.Update(context.Background(), s.record("Ghost"))
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestRename() {
	ctx := context.Background()
	stored := s.record("Gunther")
	stored.CreatedAt = s.now.Add(-time.Hour)
	stored.UpdatedAt = stored.CreatedAt

	s.timeProvider.EXPECT().Now().Return(s.now)

	renamed := s.record("Gunther the Bold")
	renamed.CreatedAt = stored.CreatedAt
	renamed.UpdatedAt = s.now

	s.mock.ExpectGet("character:warhammer:Gunther").SetVal(s.encode(stored))
	s.mock.ExpectExists("character:warhammer:Gunther the Bold").SetVal(0)
	s.mock.ExpectSet("character:warhammer:Gunther the Bold", s.encode(renamed), 0).SetVal("OK")
	s.mock.ExpectDel("character:warhammer:Gunther").SetVal(1)
	s.mock.ExpectSRem("system:warhammer:characters", "Gunther").SetVal(1)
	s.mock.ExpectSAdd("system:warhammer:characters", "Gunther the Bold").SetVal(1)

	s.Require().NoError(s.repo.Rename(ctx, entities.GameSystemWarhammer, "Gunther", "Gunther the Bold"))
}

func (s *RedisRepoTestSuite) TestRename_Taken() {
	ctx := context.Background()
	stored := s.record("Gunther")

	s.mock.ExpectGet("character:warhammer:Gunther").SetVal(s.encode(stored))
	s.mock.ExpectExists("character:warhammer:Hilda").SetVal(1)

	err := s.repo.Rename(ctx, entities.GameSystemWarhammer, "Gunther", "Hilda")
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestRename_Missing() {
	s.mock.ExpectGet("character:warhammer:Ghost").RedisNil()

	err := s.repo.Rename(context.Background(), entities.GameSystemWarhammer, "Ghost", "Spirit")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	s.mock.ExpectDel("character:warhammer:Gunther").SetVal(1)
	s.mock.ExpectSRem("system:warhammer:characters", "Gunther").SetVal(1)

	s.NoError(s.repo.Delete(context.Background(), entities.GameSystemWarhammer, "Gunther"))
}

func (s *RedisRepoTestSuite) TestDelete_NotFound() {
	s.mock.ExpectDel("character:warhammer:Ghost").SetVal(0)
	s.mock.ExpectSRem("system:warhammer:characters", "Ghost").SetVal(0)

	err := s.repo.Delete(context.Background(), entities.GameSystemWarhammer, "Ghost")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestNewRedisRepository_RequiresClient() {
	s.Panics(func() {
		NewRedisRepository(&RedisRepoConfig{})
	})
}
