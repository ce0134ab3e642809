// Package register implements the HTTP handlers for registration. The
// request is multipart: a JSON part "obj" with the registration payload
// and a part "file" with the profile image. One handler instance is wired
// per created role (registered user, administrator).
package register

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/NikolaMax/ticketing-backend/internal/http/response"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// maxUploadSize bounds the in-memory part of multipart parsing.
const maxUploadSize = 10 << 20

// Service is the auth contract of the registration handlers.
type Service interface {
	Register(ctx context.Context, reg models.Registration, role models.Role, imagePath string) (*models.User, error)
}

// FileStore persists the uploaded profile image.
type FileStore interface {
	Save(originalName string, content io.Reader) (string, error)
}

// Handler serves POST /auth/registerUser and /auth/registerAdmin,
// depending on the role it was constructed with.
type Handler struct {
	log      *slog.Logger
	service  Service
	files    FileStore
	role     models.Role
	validate *validator.Validate
}

// New creates a registration Handler creating accounts of the given role.
func New(log *slog.Logger, service Service, files FileStore, role models.Role) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		files:    files,
		role:     role,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Register an account
// @Description Creates a disabled account from a multipart request (JSON part "obj" + image part "file") and mails a confirmation link.
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Success 200 {object} models.UserDTO
// @Failure 400 {object} response.ErrorResponse "Malformed multipart or JSON"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /auth/registerUser [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("role", h.role.String()),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	var reg models.Registration
	if err := json.Unmarshal([]byte(r.FormValue("obj")), &reg); err != nil {
		log.Error("failed to decode registration payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid registration payload"))
		return
	}

	if err := h.validate.Struct(reg); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing profile image part", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing file part"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	imagePath, err := h.files.Save(header.Filename, file)
	if err != nil {
		log.Error("failed to store profile image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to store file"))
		return
	}

	user, err := h.service.Register(r.Context(), reg, h.role, imagePath)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("username", user.Username))
	render.JSON(w, r, user.DTO())
}
