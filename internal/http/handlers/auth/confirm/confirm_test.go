package confirm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NikolaMax/ticketing-backend/internal/lib/confirmid"
	"github.com/NikolaMax/ticketing-backend/internal/services/auth"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Confirm(ctx context.Context, encodedID string) error {
	args := m.Called(ctx, encodedID)
	return args.Error(0)
}

func doConfirm(t *testing.T, svc Service, encodedID string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Get("/auth/confirmRegistration/{encodedId}", New(logger, svc).ServeHTTP)

	req := httptest.NewRequest(http.MethodGet, "/auth/confirmRegistration/"+encodedID, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Success(t *testing.T) {
	encoded := confirmid.Encode(7)
	svc := new(mockService)
	svc.On("Confirm", mock.Anything, encoded).Return(nil)

	rr := doConfirm(t, svc, encoded)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Uspesno ste se registrovali", rr.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_UnknownID(t *testing.T) {
	svc := new(mockService)
	svc.On("Confirm", mock.Anything, "bogus").Return(auth.ErrUserNotFound)

	rr := doConfirm(t, svc, "bogus")
	require.Equal(t, http.StatusNotAcceptable, rr.Code)
	assert.Equal(t, "Niste se uspesno registrovali", rr.Body.String())
}

func TestHandler_InternalError(t *testing.T) {
	encoded := confirmid.Encode(7)
	svc := new(mockService)
	svc.On("Confirm", mock.Anything, encoded).Return(assert.AnError)

	rr := doConfirm(t, svc, encoded)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Niste se uspesno registrovali", rr.Body.String())
}
