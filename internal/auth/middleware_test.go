package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/license-service/internal/domain"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) ValidateToken(ctx context.Context, claims *Claims) (*domain.Principal, error) {
	args := m.Called(ctx, claims)
	principal, _ := args.Get(0).(*domain.Principal)
	return principal, args.Error(1)
}

func newGuardedApp(mw *AuthMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperrors.ToDomainError(err).HTTPStatus).SendString(err.Error())
		},
	})
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(principal.AccountID)
	})
	return app
}

func TestHandle_ValidToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", 60)
	resolver := new(resolverMock)
	app := newGuardedApp(NewAuthMiddleware(tokens, resolver))

	token, _, err := tokens.Generate("acc-1")
	require.NoError(t, err)

	resolver.On("ValidateToken", mock.Anything, mock.MatchedBy(func(c *Claims) bool {
		return c.AccountID == "acc-1"
	})).Return(&domain.Principal{Kind: domain.PrincipalKindPurchaser, AccountID: "acc-1"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resolver.AssertExpectations(t)
}

func TestHandle_RejectsUniformly(t *testing.T) {
	tokens := NewTokenManager("test-secret", 60)
	resolver := new(resolverMock)
	app := newGuardedApp(NewAuthMiddleware(tokens, resolver))

	staleToken, _, err := tokens.Generate("gone-1")
	require.NoError(t, err)
	resolver.On("ValidateToken", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnauthorized("incorrect auth token", "")).Once()

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "undecodable token", header: "Bearer not-a-token"},
		{name: "deleted subject", header: "Bearer " + staleToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestBearerFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{name: "case-insensitive scheme", header: "bearer tok", token: "tok", ok: true},
		{name: "empty", header: "", ok: false},
		{name: "scheme only", header: "Bearer", ok: false},
		{name: "empty token", header: "Bearer ", ok: false},
		{name: "wrong scheme", header: "Token abc", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := BearerFromHeader(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}
