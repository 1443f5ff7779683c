package handlers

import (
	"Fridgella/internal/middleware"
	"Fridgella/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
	Logger           *zap.SugaredLogger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.SugaredLogger) *AnalyticsHandler {
	return &AnalyticsHandler{AnalyticsService: analyticsService, Logger: logger}
}

// Summary сводка по продуктам пользователя на текущий момент
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	report, err := h.AnalyticsService.Summary(r.Context(), userID, time.Now())
	if err != nil {
		writeError(w, h.Logger, "Analytics", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"analytics": report})
}
