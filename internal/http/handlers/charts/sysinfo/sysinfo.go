// Package sysinfo implements the system information chart endpoint:
// counts of admins, users and events plus all-time income and tickets.
package sysinfo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/NikolaMax/ticketing-backend/internal/http/response"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// Service is the report contract of the sysinfo handler.
type Service interface {
	SystemInfo(ctx context.Context) (*models.SystemInfo, error)
}

// Handler serves GET /api/charts/sysinfo.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a sysinfo Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary System information
// @Description Returns the summary counters of the system. Sys-admin only.
// @Tags Charts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SystemInfo
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 403 {object} response.ErrorResponse "Forbidden"
// @Router /api/charts/sysinfo [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.charts.sysinfo"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	info, err := h.service.SystemInfo(r.Context())
	if err != nil {
		log.Error("failed to collect system info", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect system info"))
		return
	}

	log.Info("system info collected")
	render.JSON(w, r, info)
}
