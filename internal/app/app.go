package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/segment-leaderboard/external/strava"
	"github.com/riskibarqy/segment-leaderboard/internal/config"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/segment-leaderboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/metrics"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/segment-leaderboard/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	groups, err := loadGroups(cfg, logger)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(metrics.WithRuntimeCollectors(true))
	}

	stravaClient := strava.NewClient(strava.ClientConfig{
		BaseURL:      cfg.StravaBaseURL,
		AccessToken:  cfg.StravaAccessToken,
		Timeout:      cfg.StravaTimeout,
		MaxRetries:   cfg.StravaMaxRetries,
		EffortFilter: cfg.StravaEffortFilter,
		Logger:       logger.Named("strava"),
		Metrics:      m,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StravaCircuitEnabled,
			FailureThreshold: cfg.StravaCircuitFailureCount,
			OpenTimeout:      cfg.StravaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StravaCircuitHalfOpenMaxReq,
		},
	})

	groupRepo := memory.NewGroupRepository(groups)
	groupSvc := usecase.NewGroupService(groupRepo)
	athleteSvc := usecase.NewAthleteService(stravaClient, logger)
	leaderboardSvc := usecase.NewLeaderboardService(stravaClient, groupSvc, athleteSvc, m, logger,
		usecase.WithBuildTimeout(cfg.LeaderboardTimeout))

	handler := httpapi.NewHandler(groupSvc, leaderboardSvc, cfg.DefaultSegmentID, logger)
	router := httpapi.NewRouter(handler, m, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func loadGroups(cfg config.Config, logger *logging.Logger) ([]group.Group, error) {
	if cfg.GroupsFile == "" {
		logger.Info("using built-in groups", "count", len(memory.SeedGroups()))
		return memory.SeedGroups(), nil
	}

	groups, err := config.LoadGroups(cfg.GroupsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded groups file", "path", cfg.GroupsFile, "count", len(groups))
	return groups, nil
}
