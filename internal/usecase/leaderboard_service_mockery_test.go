package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
	groupmock "github.com/riskibarqy/segment-leaderboard/internal/mocks/domain/group"
	usecasemock "github.com/riskibarqy/segment-leaderboard/internal/mocks/usecase"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_BuildForGroup_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := groupmock.NewRepository(t)
	api := usecasemock.NewSegmentAPI(t)
	logger := logging.NewNop()

	service := usecase.NewLeaderboardService(
		api,
		usecase.NewGroupService(repo),
		usecase.NewAthleteService(api, logger),
		nil,
		logger,
	)

	repo.
		On("GetByID", mock.Anything, 7).
		Return(group.Group{ID: 7, Name: "Tuesday Club", AthleteIDs: []string{"10", "20"}}, true, nil).
		Once()
	api.On("FetchAthlete", mock.Anything, "10").Return(usecase.ExternalAthlete{ID: "10", FirstName: "Ana"}, nil).Once()
	api.On("FetchAthlete", mock.Anything, "20").Return(usecase.ExternalAthlete{ID: "20", LastName: "Ode"}, nil).Once()
	api.On("FetchSegmentEfforts", mock.Anything, segment.ID("55"), "10").Return([]segment.Effort{{ElapsedTime: 300}}, nil).Once()
	api.On("FetchSegmentEfforts", mock.Anything, segment.ID("55"), "20").Return([]segment.Effort{{ElapsedTime: 240}, {ElapsedTime: 250}}, nil).Once()

	got, err := service.BuildForGroup(ctx, 7, "055")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday Club", got.Group.DisplayName())
	assert.Equal(t, segment.ID("55"), got.Leaderboard.SegmentID)
	require.Len(t, got.Leaderboard.Ranked, 2)
	assert.Equal(t, "20", got.Leaderboard.Ranked[0].Athlete.ID)
	assert.Equal(t, 240, got.Leaderboard.Ranked[0].BestTime)
	assert.Equal(t, "4:00", got.Leaderboard.Ranked[0].FormattedTime())
	assert.Empty(t, got.Leaderboard.NoTimes)
}

func TestLeaderboardService_BuildForGroup_ProfileFailureSkipsEfforts(t *testing.T) {
	t.Parallel()

	repo := groupmock.NewRepository(t)
	api := usecasemock.NewSegmentAPI(t)
	logger := logging.NewNop()

	service := usecase.NewLeaderboardService(
		api,
		usecase.NewGroupService(repo),
		usecase.NewAthleteService(api, logger),
		nil,
		logger,
	)

	repo.On("GetByID", mock.Anything, 1).Return(group.Group{ID: 1, AthleteIDs: []string{"10"}}, true, nil).Once()
	api.
		On("FetchAthlete", mock.Anything, "10").
		Return(usecase.ExternalAthlete{}, usecase.NewUpstreamError("fetch athlete", errors.New("status=500"))).
		Once()

	_, err := service.BuildForGroup(context.Background(), 1, "8428538")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrUpstream)
	api.AssertNotCalled(t, "FetchSegmentEfforts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupService_GetGroup_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	repo := groupmock.NewRepository(t)
	repo.On("GetByID", mock.Anything, 2).Return(group.Group{}, false, errors.New("registry offline")).Once()

	_, err := usecase.NewGroupService(repo).GetGroup(context.Background(), 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrUnknownGroup)
}
