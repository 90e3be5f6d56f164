// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexa-app/lexa-api/internal/api/shared"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/service/progress"
)

// RecallRequest is the request body for recording a recall attempt.
type RecallRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=success fail"`
}

// SwipeRequest is the request body for recording a discovery-feed swipe.
type SwipeRequest struct {
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

// BookmarkRequest is the request body for setting the bookmark flag.
type BookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}

// SessionRequest is the request body for recording a finished session.
type SessionRequest struct {
	DurationMs int64 `json:"duration_ms" validate:"gte=0"`
}

// DailyGoalRequest is the request body for changing the daily XP target.
type DailyGoalRequest struct {
	DailyGoalXP int `json:"daily_goal_xp" validate:"required,gt=0"`
}

// ProgressHandler handles progress-related HTTP requests
type ProgressHandler struct {
	progressService progress.ProgressService
	logger          *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(
	progressService progress.ProgressService,
	logger *slog.Logger,
) *ProgressHandler {
	if progressService == nil {
		panic("progressService cannot be nil for ProgressHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progressService: progressService,
		logger:          logger.With(slog.String("component", "progress_handler")),
	}
}

// requireIDs extracts the authenticated user ID from the context and the
// word ID from the URL. On failure it writes the error response and returns
// ok=false.
func (h *ProgressHandler) requireIDs(w http.ResponseWriter, r *http.Request) (userID, wordID uuid.UUID, ok bool) {
	userID, ok = h.requireUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, wordID, true
}

func (h *ProgressHandler) requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// RecordView handles POST /progress/words/{id}/view requests.
func (h *ProgressHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	result, err := h.progressService.RecordWordView(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordRecall handles POST /progress/words/{id}/recall requests. The body
// indicates whether the recall attempt succeeded.
func (h *ProgressHandler) RecordRecall(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	var req RecallRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Outcome must be success or fail")
		return
	}

	var result *progress.ActionResult
	var err error
	if req.Outcome == "success" {
		result, err = h.progressService.RecordRecallSuccess(r.Context(), userID, wordID)
	} else {
		result, err = h.progressService.RecordRecallFail(r.Context(), userID, wordID)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordProduction handles POST /progress/words/{id}/production requests.
func (h *ProgressHandler) RecordProduction(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	result, err := h.progressService.RecordProductionSuccess(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordMastered handles POST /progress/words/{id}/mastered requests.
func (h *ProgressHandler) RecordMastered(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	result, err := h.progressService.RecordWordMastered(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordSwipe handles POST /progress/words/{id}/swipe requests.
func (h *ProgressHandler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	var req SwipeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Direction must be left or right")
		return
	}

	if err := h.progressService.RecordSwipe(r.Context(), userID, wordID, progress.SwipeDirection(req.Direction)); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetBookmark handles POST /progress/words/{id}/bookmark requests.
func (h *ProgressHandler) SetBookmark(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := h.requireIDs(w, r)
	if !ok {
		return
	}

	var req BookmarkRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.progressService.SetBookmark(r.Context(), userID, wordID, req.Bookmarked); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordSession handles POST /progress/session requests.
func (h *ProgressHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Duration cannot be negative")
		return
	}

	result, err := h.progressService.RecordSession(
		r.Context(), userID, time.Duration(req.DurationMs)*time.Millisecond)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SetDailyGoal handles PUT /progress/goal requests.
func (h *ProgressHandler) SetDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req DailyGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Daily goal must be greater than zero")
		return
	}

	if err := h.progressService.SetDailyGoal(r.Context(), userID, req.DailyGoalXP); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDashboard handles GET /dashboard requests.
func (h *ProgressHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.progressService.GetDashboard(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}
