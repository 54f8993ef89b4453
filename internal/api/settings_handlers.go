package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/service"
	"github.com/limbo/drip/pkg/httputil"
)

type UpdateGoalRequest struct {
	Goal float64 `json:"goal"`
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	settings, err := s.settingsService.Get(ctx, uid)
	if err != nil {
		logger.Error("get settings error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting settings", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.UpdateSettingsRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update settings error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	settings, err := s.settingsService.Update(ctx, uid, &req)
	if err != nil {
		writeSettingsError(w, logger, "update settings error", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("settings updated")
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update goal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateGoalRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	err = s.hydrationService.UpdateGoal(ctx, uid, req.Goal)
	if err != nil {
		writeSettingsError(w, logger, "update goal error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("goal updated", slog.Float64("goal", req.Goal))
}

func writeSettingsError(w http.ResponseWriter, logger *slog.Logger, prefix string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidTimezone):
		logger.Error(prefix + ": unknown timezone")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown timezone", nil)
	case errors.Is(err, errorvalues.ErrInvalidSettings):
		logger.Error(prefix + ": invalid settings")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid settings", err)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(prefix + ": unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
	default:
		logger.Error(prefix+": service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving settings", nil)
	}
}
