// Package confirm implements the registration confirmation endpoint. The
// path segment is the reversible encoding of a numeric user id; a known id
// enables the account.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/services/auth"
)

// Confirmation result strings, kept verbatim from the original frontend
// contract.
const (
	msgSuccess = "Uspesno ste se registrovali"
	msgFailure = "Niste se uspesno registrovali"
)

// Service is the auth contract of the confirmation handler.
type Service interface {
	Confirm(ctx context.Context, encodedID string) error
}

// Handler serves GET /auth/confirmRegistration/{encodedId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a confirmation Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Confirm a registration
// @Description Decodes the link identifier and enables the account. Unknown identifiers answer 406.
// @Tags Auth
// @Produce plain
// @Param encodedId path string true "Encoded user id"
// @Success 200 {string} string
// @Failure 406 {string} string
// @Router /auth/confirmRegistration/{encodedId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirm"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	encodedID := chi.URLParam(r, "encodedId")

	if err := h.service.Confirm(r.Context(), encodedID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			log.Error("confirmation failed", slog.String("encoded_id", encodedID))
			w.WriteHeader(http.StatusNotAcceptable)
			_, _ = w.Write([]byte(msgFailure))
			return
		}
		log.Error("failed to confirm registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(msgFailure))
		return
	}

	log.Info("registration confirmed")
	_, _ = w.Write([]byte(msgSuccess))
}
