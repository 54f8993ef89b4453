package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/drip/internal/achievement"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/service"
	"github.com/limbo/drip/pkg/entity"
	"github.com/limbo/drip/pkg/httputil"
)

type LogDrinkRequest struct {
	Volume float64 `json:"volume"`
	Kind   string  `json:"kind"`
}

type GetWeeklyResponse struct {
	UserID string               `json:"uid"`
	Days   []entity.WeeklyPoint `json:"days"`
}

type GetAchievementsResponse struct {
	Unlocked     int                  `json:"unlocked"`
	Total        int                  `json:"total"`
	Achievements []achievement.Status `json:"achievements"`
}

func (s *Server) LogDrink(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log drink error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req LogDrinkRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log drink error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	result, err := s.hydrationService.LogDrink(ctx, uid, &service.LogDrinkRequest{
		Volume: req.Volume,
		Kind:   entity.DrinkKind(req.Kind),
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidDrink):
			logger.Error("log drink error: invalid drink")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid drink", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("log drink error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't log drink: user doesn't exist", nil)
		default:
			logger.Error("log drink error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging drink", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, result)
	logger.Info("drink logged", slog.Int("unlocked", len(result.Unlocked)))
}

func (s *Server) RemoveDrink(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("drink removal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("drink removal error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid drink id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	err = s.hydrationService.RemoveDrink(ctx, uid, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDrinkNotFound):
			logger.Error("drink removal error: unexist drink")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "drink doesn't exist", nil)
		default:
			logger.Error("drink removal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while removing drink", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("drink removed")
}

func (s *Server) Today(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("today summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	summary, err := s.hydrationService.Today(ctx, uid)
	if err != nil {
		logger.Error("today summary error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building today summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
}

func (s *Server) Weekly(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("weekly error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	points, err := s.hydrationService.Weekly(ctx, uid)
	if err != nil {
		logger.Error("weekly error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting weekly chart", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetWeeklyResponse{
		UserID: uid.String(),
		Days:   points,
	})
}

func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("history clearing error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	err = s.hydrationService.ClearHistory(ctx, uid)
	if err != nil {
		logger.Error("history clearing error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while clearing history", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("history cleared")
}

func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	stats, err := s.hydrationService.Stats(ctx, uid)
	if err != nil {
		logger.Error("stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

func (s *Server) Achievements(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("achievements error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	statuses, err := s.hydrationService.Achievements(ctx, uid)
	if err != nil {
		logger.Error("achievements error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting achievements", nil)
		return
	}
	resp := GetAchievementsResponse{Total: len(statuses), Achievements: statuses}
	for _, st := range statuses {
		if st.Unlocked {
			resp.Unlocked++
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

// NextAchievement answers 204 when nothing waits to be presented.
func (s *Server) NextAchievement(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("next achievement error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	a, err := s.hydrationService.NextAchievement(r.Context(), uid)
	if err != nil {
		logger.Error("next achievement error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting next achievement", nil)
		return
	}
	if a == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, a)
}

func (s *Server) Reminders(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reminders error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	schedule, err := s.hydrationService.Reminders(ctx, uid)
	if err != nil {
		logger.Error("reminders error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building reminder schedule", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, schedule)
}
