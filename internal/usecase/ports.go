package usecase

import (
	"context"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
)

// ExternalAthlete is the profile subset the segment API returns.
type ExternalAthlete struct {
	ID        string
	FirstName string
	LastName  string
	City      string
	Country   string
}

// SegmentAPI is the read-only contract of the remote segment service.
// FetchAthlete fails with *UpstreamError. FetchSegmentEfforts fails with
// *InvalidSegmentError when the segment is rejected and *UpstreamError
// otherwise.
type SegmentAPI interface {
	FetchAthlete(ctx context.Context, athleteID string) (ExternalAthlete, error)
	FetchSegmentEfforts(ctx context.Context, segmentID segment.ID, athleteID string) ([]segment.Effort, error)
}
