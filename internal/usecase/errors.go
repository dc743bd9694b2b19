package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrUpstream              = crerr.New("upstream failure")
	ErrInvalidSegment        = crerr.New("invalid segment")
	ErrUnknownGroup          = crerr.New("unknown group")
)

// UpstreamError reports a failed or malformed response from the segment API,
// including timeouts and an open circuit breaker.
type UpstreamError struct {
	Op  string
	Err error
}

func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream %s failed", e.Op)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// InvalidSegmentError reports that the segment API rejected an efforts
// query for SegmentID.
type InvalidSegmentError struct {
	SegmentID  string
	StatusCode int
}

func (e *InvalidSegmentError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("invalid segment %s (provider status=%d)", e.SegmentID, e.StatusCode)
	}
	return fmt.Sprintf("invalid segment %s", e.SegmentID)
}

func (e *InvalidSegmentError) Is(target error) bool { return target == ErrInvalidSegment }

// UnknownGroupError reports a group id missing from the registry.
type UnknownGroupError struct {
	GroupID int
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group %d", e.GroupID)
}

func (e *UnknownGroupError) Is(target error) bool {
	return target == ErrUnknownGroup || target == ErrNotFound
}
