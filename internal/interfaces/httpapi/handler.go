package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/usecase"
)

const segmentPageBaseURL = "https://www.strava.com/segments/"

type Handler struct {
	groupService       *usecase.GroupService
	leaderboardService *usecase.LeaderboardService
	defaultSegmentID   segment.ID
	pages              *pageRenderer
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	groupService *usecase.GroupService,
	leaderboardService *usecase.LeaderboardService,
	defaultSegmentID segment.ID,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		groupService:       groupService,
		leaderboardService: leaderboardService,
		defaultSegmentID:   defaultSegmentID,
		pages:              mustPageRenderer(),
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Welcome lists the configured groups with links to the default segment.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Welcome")
	defer span.End()

	h.renderWelcome(ctx, w, http.StatusOK, "")
}

// Times renders the leaderboard page. Failures fall back to the welcome view
// with a message; an invalid segment keeps status 200 like a redirect back to
// the form would.
func (h *Handler) Times(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Times")
	defer span.End()

	req := leaderboardRequest{
		GroupID:   r.PathValue("groupID"),
		SegmentID: r.PathValue("segmentID"),
	}
	groupID, err := h.parseLeaderboardRequest(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid times request", "group_id", req.GroupID, "segment_id", req.SegmentID, "error", err)
		h.renderWelcome(ctx, w, http.StatusBadRequest, usecase.NewFailure(err).Message)
		return
	}

	result := h.leaderboardService.Times(ctx, groupID, req.SegmentID)
	if !result.OK() {
		h.renderWelcome(ctx, w, pageStatus(result.Failure.Reason), result.Failure.Message)
		return
	}

	page := timesPageFromResult(result.Group, result.Leaderboard)
	if err := h.pages.render(ctx, w, http.StatusOK, pageTimes, page); err != nil {
		h.logger.ErrorContext(ctx, "render times page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// TimesForm turns the welcome form submission into a leaderboard URL.
func (h *Handler) TimesForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TimesForm")
	defer span.End()

	query := r.URL.Query()
	req := leaderboardRequest{
		GroupID:   strings.TrimSpace(query.Get("group")),
		SegmentID: strings.TrimSpace(query.Get("segment")),
	}
	if req.SegmentID == "" {
		req.SegmentID = h.defaultSegmentID.String()
	}

	groupID, err := h.parseLeaderboardRequest(ctx, req)
	if err != nil {
		h.renderWelcome(ctx, w, http.StatusBadRequest, usecase.NewFailure(err).Message)
		return
	}

	target := fmt.Sprintf("/times/%d/%s", groupID, url.PathEscape(req.SegmentID))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroups")
	defer span.End()

	groups, err := h.groupService.ListGroups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list groups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroup")
	defer span.End()

	groupID, err := h.parseGroupID(ctx, r.PathValue("groupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.groupService.GetGroup(ctx, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get group failed", "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupToDTO(g))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	req := leaderboardRequest{
		GroupID:   r.PathValue("groupID"),
		SegmentID: r.PathValue("segmentID"),
	}
	groupID, err := h.parseLeaderboardRequest(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.leaderboardService.BuildForGroup(ctx, groupID, req.SegmentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(out.Group, out.Leaderboard))
}

func (h *Handler) renderWelcome(ctx context.Context, w http.ResponseWriter, status int, message string) {
	groups, err := h.groupService.ListGroups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list groups for welcome page failed", "error", err)
		groups = nil
		if message == "" {
			message = "Groups are unavailable right now."
		}
	}

	page := welcomePage{
		Title:            "Segment Of The Week",
		Message:          message,
		DefaultSegmentID: h.defaultSegmentID.String(),
		Groups:           make([]groupLinkView, 0, len(groups)),
	}
	for _, g := range groups {
		page.Groups = append(page.Groups, groupLinkView{
			ID:           g.ID,
			Name:         g.DisplayName(),
			AthleteCount: len(g.AthleteIDs),
		})
	}

	if err := h.pages.render(ctx, w, status, pageWelcome, page); err != nil {
		h.logger.ErrorContext(ctx, "render welcome page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) parseLeaderboardRequest(ctx context.Context, req leaderboardRequest) (int, error) {
	if err := h.validateRequest(ctx, req); err != nil {
		return 0, err
	}
	return h.parseGroupID(ctx, req.GroupID)
}

func (h *Handler) parseGroupID(ctx context.Context, raw string) (int, error) {
	if err := h.validateRequest(ctx, groupRequest{GroupID: raw}); err != nil {
		return 0, err
	}
	groupID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: group id %q is out of range", usecase.ErrInvalidInput, raw)
	}
	return groupID, nil
}

type groupRequest struct {
	GroupID string `validate:"required,number,max=9"`
}

type leaderboardRequest struct {
	GroupID   string `validate:"required,number,max=9"`
	SegmentID string `validate:"required,number,max=18"`
}

func timesPageFromResult(g group.Group, board leaderboard.Leaderboard) timesPage {
	page := timesPage{
		Title:      fmt.Sprintf("%s - segment %s", g.DisplayName(), board.SegmentID),
		GroupID:    g.ID,
		GroupName:  g.DisplayName(),
		SegmentID:  board.SegmentID.String(),
		SegmentURL: segmentPageBaseURL + url.PathEscape(board.SegmentID.String()),
		Entries:    make([]entryView, 0, len(board.Ranked)),
		NoTimes:    make([]string, 0, len(board.NoTimes)),
	}
	for _, entry := range board.Ranked {
		page.Entries = append(page.Entries, entryView{
			Position: entry.Position,
			Name:     entry.Athlete.DisplayName(),
			Time:     entry.FormattedTime(),
		})
	}
	for _, a := range board.NoTimes {
		page.NoTimes = append(page.NoTimes, a.DisplayName())
	}
	return page
}
