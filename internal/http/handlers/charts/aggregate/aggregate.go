// Package aggregate implements the chart report handlers. One Handler
// instance is wired per aggregate (event/location incomes and tickets
// sold); the GET form returns the unrestricted report, the PUT form
// restricts it to a validated date interval.
//
// Reports are returned as a bare JSON array of rows, with the synthetic
// "average" row appended by the report service.
package aggregate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/NikolaMax/ticketing-backend/internal/http/response"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/models"
	"github.com/NikolaMax/ticketing-backend/internal/services/report"
)

// Query runs one chart aggregate of the report service.
type Query func(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error)

// Handler serves the unrestricted (GET) form of one aggregate.
type Handler struct {
	log   *slog.Logger
	name  string
	query Query
}

// New creates a Handler for the named aggregate.
func New(log *slog.Logger, name string, query Query) *Handler {
	return &Handler{
		log:   log,
		name:  name,
		query: query,
	}
}

// ServeHTTP godoc
// @Summary Chart aggregate
// @Description Returns the aggregate rows ordered by metric, with a trailing "average" row. Sys-admin only.
// @Tags Charts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ChartRow
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 403 {object} response.ErrorResponse "Forbidden"
// @Router /api/charts/event_incomes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.charts.aggregate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("chart", h.name),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rows, err := h.query(r.Context(), nil)
	if err != nil {
		log.Error("failed to compute aggregate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute report"))
		return
	}

	log.Info("aggregate computed", slog.Int("rows", len(rows)))
	render.JSON(w, r, rows)
}

// IntervalHandler serves the interval-restricted (PUT) form of one
// aggregate.
type IntervalHandler struct {
	log      *slog.Logger
	name     string
	query    Query
	validate *validator.Validate
}

// NewInterval creates an IntervalHandler for the named aggregate.
func NewInterval(log *slog.Logger, name string, query Query) *IntervalHandler {
	return &IntervalHandler{
		log:      log,
		name:     name,
		query:    query,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Chart aggregate over an interval
// @Description Restricts the aggregate to tickets sold within {start, end}. An inverted interval is rejected before any query runs.
// @Tags Charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyDateInterval true "Date interval"
// @Success 200 {array} models.ChartRow
// @Failure 400 {object} response.ErrorResponse "Malformed body or inverted interval"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 403 {object} response.ErrorResponse "Forbidden"
// @Router /api/charts/event_incomes/interval [put]
func (h *IntervalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.charts.aggregate.interval"

	log := h.log.With(
		slog.String("op", op),
		slog.String("chart", h.name),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyDateInterval
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	interval, err := report.ParseInterval(req)
	if err != nil {
		log.Error("invalid interval", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(report.MsgInvalidInterval))
		return
	}

	rows, err := h.query(r.Context(), interval)
	if err != nil {
		log.Error("failed to compute aggregate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute report"))
		return
	}

	log.Info("aggregate computed", slog.Int("rows", len(rows)))
	render.JSON(w, r, rows)
}
