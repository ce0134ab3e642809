package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
	"github.com/NikolaMax/ticketing-backend/internal/services/auth"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Login(ctx context.Context, username, password string, class device.Class) (*auth.TokenState, error) {
	args := m.Called(ctx, username, password, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenState), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doLogin(t *testing.T, svc Service, body string, userAgent string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	rr := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(rr, req)
	return rr
}

func TestHandler_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "pera", "secret123", device.Desktop).
		Return(&auth.TokenState{Token: "tok", ExpiresIn: 3600, Role: "admin"}, nil)

	rr := doLogin(t, svc, `{"username":"pera","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var state auth.TokenState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, int64(3600), state.ExpiresIn)
	assert.Equal(t, "admin", state.Role)
	svc.AssertExpectations(t)
}

func TestHandler_DeviceClassFromUserAgent(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "pera", "secret123", device.Mobile).
		Return(&auth.TokenState{Token: "tok", ExpiresIn: 900, Role: "registered_user"}, nil)

	rr := doLogin(t, svc, `{"username":"pera","password":"secret123"}`,
		"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Mobile/15E148")
	require.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestHandler_BadJSON(t *testing.T) {
	rr := doLogin(t, new(mockService), `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ValidationFailure(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"username too short", `{"username":"ab","password":"secret123"}`},
		{"password too short", `{"username":"pera","password":"123"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doLogin(t, new(mockService), tc.body, "")
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		})
	}
}

func TestHandler_InvalidCredentials(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "pera", "wrongpass", device.Desktop).
		Return(nil, auth.ErrInvalidCredentials)

	rr := doLogin(t, svc, `{"username":"pera","password":"wrongpass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_InternalError(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "pera", "secret123", device.Desktop).
		Return(nil, assert.AnError)

	rr := doLogin(t, svc, `{"username":"pera","password":"secret123"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
