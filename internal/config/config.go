package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/segment-leaderboard/external/strava"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
	"github.com/riskibarqy/segment-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	CORSAllowedOrigins          []string
	LogLevel                    logging.Level
	LogFormat                   logging.Format
	StravaBaseURL               string
	StravaAccessToken           string
	StravaTimeout               time.Duration
	StravaMaxRetries            int
	StravaEffortFilter          string
	StravaCircuitEnabled        bool
	StravaCircuitFailureCount   int
	StravaCircuitOpenTimeout    time.Duration
	StravaCircuitHalfOpenMaxReq int
	LeaderboardTimeout          time.Duration
	GroupsFile                  string
	DefaultSegmentID            segment.ID
	MetricsEnabled              bool
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat := logging.FormatJSON
	if appEnv == EnvDev {
		logFormat = logging.FormatConsole
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	// Covers every upstream call of one leaderboard build.
	leaderboardTimeout, err := time.ParseDuration(getEnv("LEADERBOARD_TIMEOUT", "25s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_TIMEOUT: %w", err)
	}
	if leaderboardTimeout <= 0 {
		return Config{}, fmt.Errorf("LEADERBOARD_TIMEOUT must be > 0")
	}
	if writeTimeout > 0 && leaderboardTimeout >= writeTimeout {
		return Config{}, fmt.Errorf("LEADERBOARD_TIMEOUT (%s) must be below APP_WRITE_TIMEOUT (%s)", leaderboardTimeout, writeTimeout)
	}

	stravaAccessToken := strings.TrimSpace(getEnv("STRAVA_ACCESS_TOKEN", ""))
	if stravaAccessToken == "" {
		return Config{}, fmt.Errorf("STRAVA_ACCESS_TOKEN is required")
	}
	stravaTimeout, err := time.ParseDuration(getEnv("STRAVA_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_TIMEOUT: %w", err)
	}
	if stravaTimeout <= 0 {
		return Config{}, fmt.Errorf("STRAVA_TIMEOUT must be > 0")
	}
	stravaMaxRetries, err := getEnvAsInt("STRAVA_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_MAX_RETRIES: %w", err)
	}
	if stravaMaxRetries < 0 {
		return Config{}, fmt.Errorf("STRAVA_MAX_RETRIES must be >= 0")
	}
	stravaEffortFilter, err := parseEffortFilter(getEnv("STRAVA_EFFORT_FILTER", strava.EffortFilterUpstream))
	if err != nil {
		return Config{}, err
	}

	stravaCircuitEnabled, err := strconv.ParseBool(getEnv("STRAVA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_ENABLED: %w", err)
	}
	stravaCircuitFailureCount, err := getEnvAsInt("STRAVA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if stravaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	stravaCircuitOpenTimeout, err := time.ParseDuration(getEnv("STRAVA_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if stravaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	stravaCircuitHalfOpenMaxReq, err := getEnvAsInt("STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if stravaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	defaultSegmentID, err := segment.ParseID(getEnv("DEFAULT_SEGMENT_ID", memory.DefaultSegmentID))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_SEGMENT_ID: %w", err)
	}

	return Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "segment-leaderboard"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                   logFormat,
		StravaBaseURL:               strings.TrimRight(getEnv("STRAVA_BASE_URL", "https://www.strava.com/api/v3"), "/"),
		StravaAccessToken:           stravaAccessToken,
		StravaTimeout:               stravaTimeout,
		StravaMaxRetries:            stravaMaxRetries,
		StravaEffortFilter:          stravaEffortFilter,
		StravaCircuitEnabled:        stravaCircuitEnabled,
		StravaCircuitFailureCount:   stravaCircuitFailureCount,
		StravaCircuitOpenTimeout:    stravaCircuitOpenTimeout,
		StravaCircuitHalfOpenMaxReq: stravaCircuitHalfOpenMaxReq,
		LeaderboardTimeout:          leaderboardTimeout,
		GroupsFile:                  strings.TrimSpace(getEnv("GROUPS_FILE", "")),
		DefaultSegmentID:            defaultSegmentID,
		MetricsEnabled:              metricsEnabled,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAppName:            getEnv("PYROSCOPE_APP_NAME", "segment-leaderboard"),
		PyroscopeAuthToken:          getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:      getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword:  getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseEffortFilter(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case strava.EffortFilterUpstream, strava.EffortFilterClient:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STRAVA_EFFORT_FILTER %q: valid values are %s, %s", v, strava.EffortFilterUpstream, strava.EffortFilterClient)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}
	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
