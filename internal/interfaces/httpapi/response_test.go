package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/segment-leaderboard/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad group", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_HidesUpstreamDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, usecase.NewUpstreamError("fetch athlete", errors.New("provider status=500 body=secret")))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if got := rec.Body.String(); containsAny(got, "secret", "provider status") {
		t.Fatalf("upstream detail leaked: %s", got)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "invalid segment", err: &usecase.InvalidSegmentError{SegmentID: "1"}, status: http.StatusNotFound, reason: "invalidSegment"},
		{name: "unknown group", err: &usecase.UnknownGroupError{GroupID: 9}, status: http.StatusNotFound, reason: "unknownGroup"},
		{name: "upstream", err: usecase.NewUpstreamError("fetch", errors.New("x")), status: http.StatusBadGateway, reason: "upstreamError"},
		{
			name:   "circuit open",
			err:    usecase.NewUpstreamError("fetch", fmt.Errorf("%w: open", usecase.ErrDependencyUnavailable)),
			status: http.StatusServiceUnavailable,
			reason: "dependencyUnavailable",
		},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.status || got.Reason != tt.reason {
				t.Fatalf("mapError(%v)=%+v want status=%d reason=%s", tt.err, got, tt.status, tt.reason)
			}
		})
	}
}

func TestPageStatus(t *testing.T) {
	if got := pageStatus(usecase.FailureInvalidSegment); got != http.StatusOK {
		t.Fatalf("invalid segment page status=%d", got)
	}
	if got := pageStatus(usecase.FailureUnknownGroup); got != http.StatusNotFound {
		t.Fatalf("unknown group page status=%d", got)
	}
	if got := pageStatus(usecase.FailureUpstreamUnavailable); got != http.StatusBadGateway {
		t.Fatalf("upstream page status=%d", got)
	}
}
