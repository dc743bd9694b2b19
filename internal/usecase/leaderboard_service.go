package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/athlete"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type LeaderboardService struct {
	api      SegmentAPI
	groups   *GroupService
	athletes *AthleteService
	metrics  *metrics.Metrics
	logger   *logging.Logger

	buildTimeout time.Duration
}

type LeaderboardOption func(*LeaderboardService)

// WithBuildTimeout caps one BuildForGroup call, profile and effort lookups
// included. It must stay below the server write timeout.
func WithBuildTimeout(timeout time.Duration) LeaderboardOption {
	return func(s *LeaderboardService) {
		s.buildTimeout = timeout
	}
}

func NewLeaderboardService(
	api SegmentAPI,
	groups *GroupService,
	athletes *AthleteService,
	m *metrics.Metrics,
	logger *logging.Logger,
	opts ...LeaderboardOption,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &LeaderboardService{
		api:      api,
		groups:   groups,
		athletes: athletes,
		metrics:  m,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GroupLeaderboard is a leaderboard together with the group it was built for.
type GroupLeaderboard struct {
	Group       group.Group
	Leaderboard leaderboard.Leaderboard
}

// Build fetches efforts for each athlete in input order, one call at a time.
// An *InvalidSegmentError aborts the build and is returned unwrapped; any
// other failure aborts it too. No partial leaderboard is ever returned.
func (s *LeaderboardService) Build(ctx context.Context, segmentID segment.ID, athletes []athlete.Athlete) (leaderboard.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Build",
		attribute.String("segment.id", segmentID.String()),
		attribute.Int("athlete.count", len(athletes)),
	)
	defer span.End()

	if segmentID == "" {
		return leaderboard.Leaderboard{}, fmt.Errorf("%w: segment id is required", ErrInvalidInput)
	}

	outcomes := make([]leaderboard.Outcome, 0, len(athletes))
	for _, item := range athletes {
		efforts, err := s.api.FetchSegmentEfforts(ctx, segmentID, item.ID)
		if err != nil {
			recordSpanError(span, err)
			var segErr *InvalidSegmentError
			if errors.As(err, &segErr) {
				return leaderboard.Leaderboard{}, segErr
			}
			return leaderboard.Leaderboard{}, fmt.Errorf("fetch efforts segment=%s athlete=%s: %w", segmentID, item.ID, err)
		}

		best, ok := segment.BestTime(efforts)
		if !ok {
			outcomes = append(outcomes, leaderboard.NoTimeOutcome(item))
			continue
		}
		outcomes = append(outcomes, leaderboard.TimedOutcome(item, best))
	}

	return leaderboard.Rank(segmentID, outcomes), nil
}

// BuildForGroup resolves the group, loads every athlete profile and then
// builds the leaderboard for rawSegmentID.
func (s *LeaderboardService) BuildForGroup(ctx context.Context, groupID int, rawSegmentID string) (GroupLeaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.BuildForGroup",
		attribute.Int("group.id", groupID),
		attribute.String("segment.raw_id", rawSegmentID),
	)
	defer span.End()

	if s.buildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.buildTimeout)
		defer cancel()
	}

	started := time.Now()
	out, athleteCount, err := s.buildForGroup(ctx, groupID, rawSegmentID)
	s.metrics.ObserveLeaderboardBuild(string(failureReasonOf(err)), athleteCount)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "build leaderboard failed",
			"group_id", groupID,
			"segment_id", rawSegmentID,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err,
		)
		return GroupLeaderboard{}, err
	}

	s.logger.InfoContext(ctx, "leaderboard built",
		"group_id", groupID,
		"segment_id", out.Leaderboard.SegmentID.String(),
		"ranked", len(out.Leaderboard.Ranked),
		"no_times", len(out.Leaderboard.NoTimes),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return out, nil
}

func (s *LeaderboardService) buildForGroup(ctx context.Context, groupID int, rawSegmentID string) (GroupLeaderboard, int, error) {
	segmentID, err := segment.ParseID(rawSegmentID)
	if err != nil {
		return GroupLeaderboard{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	g, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return GroupLeaderboard{}, 0, err
	}

	athletes, err := s.athletes.LoadAll(ctx, g.AthleteIDs)
	if err != nil {
		return GroupLeaderboard{}, len(g.AthleteIDs), err
	}

	board, err := s.Build(ctx, segmentID, athletes)
	if err != nil {
		return GroupLeaderboard{}, len(athletes), err
	}

	return GroupLeaderboard{Group: g, Leaderboard: board}, len(athletes), nil
}

// Times is the page-level entry point. It never returns an error; failures
// are reported through TimesResult.Failure.
func (s *LeaderboardService) Times(ctx context.Context, groupID int, rawSegmentID string) TimesResult {
	out, err := s.BuildForGroup(ctx, groupID, rawSegmentID)
	if err != nil {
		return TimesResult{Failure: NewFailure(err)}
	}
	return TimesResult{Group: out.Group, Leaderboard: out.Leaderboard}
}
