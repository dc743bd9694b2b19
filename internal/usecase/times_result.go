package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/leaderboard"
)

type FailureReason string

const (
	FailureNone                FailureReason = "success"
	FailureInvalidSegment      FailureReason = "invalid_segment"
	FailureUnknownGroup        FailureReason = "unknown_group"
	FailureUpstreamUnavailable FailureReason = "upstream_unavailable"
	FailureInvalidInput        FailureReason = "invalid_input"
	FailureInternal            FailureReason = "internal"
)

// Failure is the user-facing side of a failed leaderboard request.
type Failure struct {
	Reason  FailureReason
	Message string
	Err     error
}

// TimesResult is either a leaderboard (Failure == nil) or a Failure.
type TimesResult struct {
	Group       group.Group
	Leaderboard leaderboard.Leaderboard
	Failure     *Failure
}

func (r TimesResult) OK() bool {
	return r.Failure == nil
}

func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	reason := failureReasonOf(err)
	failure := &Failure{Reason: reason, Err: err}
	switch reason {
	case FailureInvalidSegment:
		var segErr *InvalidSegmentError
		errors.As(err, &segErr)
		failure.Message = fmt.Sprintf("Invalid segment id: %s", segErr.SegmentID)
	case FailureUnknownGroup:
		var groupErr *UnknownGroupError
		errors.As(err, &groupErr)
		failure.Message = fmt.Sprintf("Unknown group: %d", groupErr.GroupID)
	case FailureUpstreamUnavailable:
		failure.Message = "Athlete data is unavailable right now, please try again later."
	case FailureInvalidInput:
		failure.Message = "Invalid request: group and segment must be positive numbers."
	default:
		failure.Message = "Something went wrong while building the leaderboard."
	}
	return failure
}

func failureReasonOf(err error) FailureReason {
	var segErr *InvalidSegmentError
	var groupErr *UnknownGroupError
	switch {
	case err == nil:
		return FailureNone
	case errors.As(err, &segErr):
		return FailureInvalidSegment
	case errors.As(err, &groupErr):
		return FailureUnknownGroup
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrDependencyUnavailable):
		return FailureUpstreamUnavailable
	case errors.Is(err, ErrInvalidInput):
		return FailureInvalidInput
	default:
		return FailureInternal
	}
}
