package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"authd/internal/delivery/http/middleware"
	"authd/internal/delivery/http/response"
	"authd/internal/delivery/http/router"
	"authd/internal/delivery/http/router/handler"
	"authd/internal/delivery/http/validator"
	"authd/internal/domain/entity"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/service"
	mockSvc "authd/internal/mocks/service"
	mockUsecase "authd/internal/mocks/usecase"
	"authd/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a real echo instance with the production validator,
// error handler and routes, backed by mocked usecase and token service.
func newTestServer(t *testing.T) (*echo.Echo, *mockUsecase.MockAuthUsecase, *mockSvc.MockTokenService) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	tokens := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(uc, logger),
		HealthHandler:  handler.NewHealthHandler(nil),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens, logger),
	})
	r.RegisterRoutes(e)

	return e, uc, tokens
}

func doRequest(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthHandler_Register_Created(t *testing.T) {
	e, uc, _ := newTestServer(t)

	userID := uuid.New()
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Run(func(ctx context.Context, input *usecase.RegisterInput) {
			assert.Equal(t, "a@test.com", input.Email)
			assert.Equal(t, "secret1", input.Password)
		}).
		Return(&usecase.AuthOutput{
			User:  &entity.User{ID: userID, Email: "a@test.com", CreatedAt: time.Now()},
			Token: "signed_token",
		}, nil)

	rec := doRequest(e, http.MethodPost, "/api/auth/register",
		`{"email":"a@test.com","password":"secret1"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "signed_token", data["token"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID.String(), user["id"])
	assert.Equal(t, "a@test.com", user["email"])
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e, uc, _ := newTestServer(t)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed"))

	rec := doRequest(e, http.MethodPost, "/api/auth/register",
		`{"email":"a@test.com","password":"secret1"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Email already registered", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Error.Code)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e, _, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"email":"a@test.com"}`},
		{name: "missing email", body: `{"password":"secret1"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/auth/register", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		})
	}
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", `{"email":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestAuthHandler_Login_OK(t *testing.T) {
	e, uc, _ := newTestServer(t)

	userID := uuid.New()
	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.AuthOutput{
			User:  &entity.User{ID: userID, Email: "a@test.com", CreatedAt: time.Now()},
			Token: "signed_token",
		}, nil)

	rec := doRequest(e, http.MethodPost, "/api/auth/login",
		`{"email":"a@test.com","password":"secret1"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Login successful", body.Message)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e, uc, _ := newTestServer(t)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	rec := doRequest(e, http.MethodPost, "/api/auth/login",
		`{"email":"a@test.com","password":"wrong-pass"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid email or password", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestAuthHandler_Profile_OK(t *testing.T) {
	e, uc, tokens := newTestServer(t)

	userID := uuid.New()
	tokens.EXPECT().Verify("valid_token").Return(&service.Claims{
		UserID: userID,
		Email:  "a@test.com",
	}, nil)
	uc.EXPECT().GetProfile(mock.Anything, userID).Return(&entity.User{
		ID:        userID,
		Email:     "a@test.com",
		CreatedAt: time.Now(),
	}, nil)

	rec := doRequest(e, http.MethodGet, "/api/auth/profile", "",
		map[string]string{"Authorization": "Bearer valid_token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID.String(), data["id"])
	assert.Equal(t, "a@test.com", data["email"])
}

func TestAuthHandler_Profile_Unauthenticated(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		setupMock func(tokens *mockSvc.MockTokenService)
	}{
		{
			name:   "missing header",
			header: "",
		},
		{
			name:   "not a bearer token",
			header: "Basic dXNlcjpwYXNz",
		},
		{
			name:   "invalid token",
			header: "Bearer forged_token",
			setupMock: func(tokens *mockSvc.MockTokenService) {
				tokens.EXPECT().Verify("forged_token").Return(nil, service.ErrTokenInvalid)
			},
		},
		{
			name:   "expired token",
			header: "Bearer expired_token",
			setupMock: func(tokens *mockSvc.MockTokenService) {
				tokens.EXPECT().Verify("expired_token").Return(nil, service.ErrTokenExpired)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, tokens := newTestServer(t)
			if tt.setupMock != nil {
				tt.setupMock(tokens)
			}

			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			rec := doRequest(e, http.MethodGet, "/api/auth/profile", "", headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, "UNAUTHENTICATED", body.Error.Code)
		})
	}
}

func TestAuthHandler_Profile_UserGone(t *testing.T) {
	e, uc, tokens := newTestServer(t)

	userID := uuid.New()
	tokens.EXPECT().Verify("valid_token").Return(&service.Claims{UserID: userID}, nil)
	uc.EXPECT().
		GetProfile(mock.Anything, userID).
		Return(nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed"))

	rec := doRequest(e, http.MethodGet, "/api/auth/profile", "",
		map[string]string{"Authorization": "Bearer valid_token"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Route not found", body.Message)
}
