package strava

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/metrics"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/segment-leaderboard/internal/usecase"
)

const (
	defaultBaseURL      = "https://www.strava.com/api/v3"
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
	maxResponseBytes    = 4 << 20

	// Shorter tokens are only redacted as access_token= values.
	minRedactTokenLength = 8

	endpointAthlete = "athlete"
	endpointEfforts = "segment_efforts"
)

// Effort filter modes. The efforts endpoint takes an athlete_id parameter but
// does not promise to honour it.
const (
	EffortFilterUpstream = "upstream"
	EffortFilterClient   = "client"
)

var accessTokenParamRegex = regexp.MustCompile(`access_token=[^&\s"']+`)
var errStravaTransient = crerr.New("strava transient failure")
var errMalformedPayload = crerr.New("malformed strava payload")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AccessToken    string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	EffortFilter   string
	Logger         *logging.Logger
	Metrics        *metrics.Metrics
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads athlete profiles and segment efforts from the Strava v3 API.
// It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	maxRetries   int
	retryBackoff time.Duration
	effortFilter string
	logger       *logging.Logger
	metrics      *metrics.Metrics
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight[[]byte]
}

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider status=%d", e.StatusCode)
	}
	return fmt.Sprintf("provider status=%d body=%s", e.StatusCode, e.Body)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
		if cfg.Timeout > 0 {
			httpClient.Timeout = cfg.Timeout
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	effortFilter := strings.ToLower(strings.TrimSpace(cfg.EffortFilter))
	if effortFilter != EffortFilterClient {
		effortFilter = EffortFilterUpstream
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.AccessToken),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		effortFilter: effortFilter,
		logger:       logger,
		metrics:      cfg.Metrics,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// FetchAthlete returns the profile of athleteID. Every failure is an
// *usecase.UpstreamError, including a profile without firstname or lastname.
func (c *Client) FetchAthlete(ctx context.Context, athleteID string) (usecase.ExternalAthlete, error) {
	athleteID = strings.TrimSpace(athleteID)
	if athleteID == "" {
		return usecase.ExternalAthlete{}, fmt.Errorf("%w: athlete id is required", usecase.ErrInvalidInput)
	}

	started := time.Now()
	path := "/athletes/" + url.PathEscape(athleteID)

	var payload athletePayload
	_, err := c.doJSON(ctx, path, map[string]string{"athlete_id": athleteID}, &payload)
	if err == nil {
		err = payload.validate()
	}
	c.metrics.ObserveUpstream(endpointAthlete, outcomeOf(err), time.Since(started))
	if err != nil {
		return usecase.ExternalAthlete{}, usecase.NewUpstreamError("fetch athlete", fmt.Errorf("athlete_id=%s: %w", athleteID, err))
	}

	return usecase.ExternalAthlete{
		ID:        firstNonEmpty(payload.ID.String(), athleteID),
		FirstName: strings.TrimSpace(*payload.FirstName),
		LastName:  strings.TrimSpace(*payload.LastName),
		City:      strings.TrimSpace(payload.City),
		Country:   strings.TrimSpace(payload.Country),
	}, nil
}

// FetchSegmentEfforts lists athleteID's efforts on segmentID. A 4xx rejection
// other than 401, 403 and 429 is reported as *usecase.InvalidSegmentError;
// everything else as *usecase.UpstreamError.
func (c *Client) FetchSegmentEfforts(ctx context.Context, segmentID segment.ID, athleteID string) ([]segment.Effort, error) {
	athleteID = strings.TrimSpace(athleteID)
	if segmentID == "" || athleteID == "" {
		return nil, fmt.Errorf("%w: segment id and athlete id are required", usecase.ErrInvalidInput)
	}

	started := time.Now()
	path := "/segments/" + url.PathEscape(segmentID.String()) + "/all_efforts"

	var payload []effortPayload
	_, err := c.doJSON(ctx, path, map[string]string{"athlete_id": athleteID}, &payload)
	var efforts []segment.Effort
	if err == nil {
		efforts, err = c.mapEfforts(payload, athleteID)
	}
	c.metrics.ObserveUpstream(endpointEfforts, outcomeOf(err), time.Since(started))
	if err != nil {
		var statusErr *StatusError
		if stderrors.As(err, &statusErr) && isSegmentRejection(statusErr.StatusCode) {
			c.logger.InfoContext(ctx, "strava rejected segment",
				"segment_id", segmentID.String(),
				"athlete_id", athleteID,
				"status", statusErr.StatusCode,
			)
			return nil, &usecase.InvalidSegmentError{SegmentID: segmentID.String(), StatusCode: statusErr.StatusCode}
		}
		return nil, usecase.NewUpstreamError("fetch segment efforts",
			fmt.Errorf("segment_id=%s athlete_id=%s: %w", segmentID, athleteID, err))
	}

	return efforts, nil
}

func (c *Client) mapEfforts(payload []effortPayload, athleteID string) ([]segment.Effort, error) {
	out := make([]segment.Effort, 0, len(payload))
	for i, item := range payload {
		if item.ElapsedTime == nil {
			return nil, fmt.Errorf("%w: effort #%d has no elapsed_time", errMalformedPayload, i)
		}
		if *item.ElapsedTime < 0 {
			return nil, fmt.Errorf("%w: effort #%d has negative elapsed_time %d", errMalformedPayload, i, *item.ElapsedTime)
		}

		effort := segment.Effort{ElapsedTime: *item.ElapsedTime}
		if item.Athlete != nil && item.Athlete.ID > 0 {
			effort.AthleteID = strconv.FormatInt(item.Athlete.ID, 10)
		}
		if c.effortFilter == EffortFilterClient && effort.AthleteID != athleteID {
			continue
		}
		out = append(out, effort)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("access_token", c.token)

	fullURL := c.baseURL + path + "?" + values.Encode()

	// The shared call outlives any single caller; the http client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	raw, err, _ := c.flight.DoContext(ctx, fullURL, func() ([]byte, error) {
		var out []byte
		reqErr := c.breaker.Do(func() error {
			var err error
			out, err = c.executeRequest(flightCtx, fullURL)
			return err
		}, isStravaCircuitFailure)
		return out, reqErr
	})
	if err != nil && ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
		return nil, fmt.Errorf("%w: %w", errStravaTransient, err)
	}
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "strava circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: %w: segment API is temporarily unavailable", usecase.ErrDependencyUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode provider payload: %v", errMalformedPayload, err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %s", sanitizeSensitiveText(err.Error(), c.token))
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errStravaTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errStravaTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: %w", errStravaTransient, &StatusError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw, c.token)})
			default:
				return nil, &StatusError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw, c.token)}
			}
		}

		if attempt == c.maxRetries || ctx.Err() != nil {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", errStravaTransient, ctx.Err())
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: provider request failed", errStravaTransient)
	}
	c.logger.WarnContext(ctx, "strava request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isStravaCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errStravaTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// isSegmentRejection reports client errors that point at the segment itself
// rather than at credentials or throttling.
func isSegmentRejection(code int) bool {
	if code < 400 || code >= 500 {
		return false
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return true
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		return metrics.OutcomeCircuitOpen
	case stderrors.Is(err, errMalformedPayload):
		return metrics.OutcomeMalformedReply
	case stderrors.As(err, &statusErr) && isSegmentRejection(statusErr.StatusCode):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeUpstreamError
	}
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if len(token) >= minRedactTokenLength {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return accessTokenParamRegex.ReplaceAllString(value, "access_token=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return accessTokenParamRegex.ReplaceAllString(rawURL, "access_token=REDACTED")
	}
	query := parsed.Query()
	if query.Has("access_token") {
		query.Set("access_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte, token string) string {
	text := sanitizeSensitiveText(string(body), token)
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
