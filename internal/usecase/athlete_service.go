package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/athlete"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AthleteService struct {
	api    SegmentAPI
	logger *logging.Logger
}

func NewAthleteService(api SegmentAPI, logger *logging.Logger) *AthleteService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AthleteService{api: api, logger: logger}
}

// Load fetches one profile. Failures from the segment API are returned
// unchanged in kind (*UpstreamError).
func (s *AthleteService) Load(ctx context.Context, athleteID string) (athlete.Athlete, error) {
	athleteID = strings.TrimSpace(athleteID)
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Load", attribute.String("athlete.id", athleteID))
	defer span.End()

	if athleteID == "" {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id is required", ErrInvalidInput)
	}

	profile, err := s.api.FetchAthlete(ctx, athleteID)
	if err != nil {
		recordSpanError(span, err)
		return athlete.Athlete{}, fmt.Errorf("load athlete %s: %w", athleteID, err)
	}

	item := athlete.Athlete{
		ID:        athleteID,
		FirstName: strings.TrimSpace(profile.FirstName),
		LastName:  strings.TrimSpace(profile.LastName),
	}
	if err := item.Validate(); err != nil {
		err = NewUpstreamError("fetch athlete", err)
		recordSpanError(span, err)
		return athlete.Athlete{}, fmt.Errorf("load athlete %s: %w", athleteID, err)
	}

	return item, nil
}

// LoadAll loads profiles one after another in input order and stops at the
// first failure.
func (s *AthleteService) LoadAll(ctx context.Context, athleteIDs []string) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.LoadAll", attribute.Int("athlete.count", len(athleteIDs)))
	defer span.End()

	out := make([]athlete.Athlete, 0, len(athleteIDs))
	for _, id := range athleteIDs {
		item, err := s.Load(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "load athlete failed", "athlete_id", id, "error", err)
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
