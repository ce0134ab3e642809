// Package refresh implements the HTTP handler for token refresh.
//
// The prior token arrives in the Authorization header. A token issued
// before the user's last password reset is refused with 400 and an empty
// token state instead of an error envelope.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/NikolaMax/ticketing-backend/internal/http/response"
	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/services/auth"
)

// Service is the auth contract of the refresh handler.
type Service interface {
	Refresh(ctx context.Context, rawToken string, class device.Class) (*auth.TokenState, error)
}

// Handler serves POST /auth/refresh.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a refresh Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Refresh a token
// @Description Exchanges a still-valid token for a fresh one. Tokens issued before the last password reset are refused with an empty token state.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.TokenState
// @Failure 400 {object} auth.TokenState "Not refreshable, empty token state"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Router /auth/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("missing or invalid authorization header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	rawToken := strings.TrimPrefix(authHeader, "Bearer ")

	state, err := h.service.Refresh(r.Context(), rawToken, device.Classify(r))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotRefreshable):
			log.Info("token not refreshable")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, auth.TokenState{})
		case errors.Is(err, auth.ErrInvalidToken):
			log.Error("invalid or expired token", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid or expired token"))
		default:
			log.Error("failed to refresh token", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("token refreshed", slog.String("role", state.Role))
	render.JSON(w, r, state)
}
