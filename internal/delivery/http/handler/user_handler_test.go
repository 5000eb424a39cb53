package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"farm-policy/internal/domain/user"
	useruc "farm-policy/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	got useruc.UpdateMeInput
	err error
}

func (f *fakeAccount) GetMe(_ context.Context, id uuid.UUID) (user.User, error) {
	return user.User{ID: id, Email: "kim@farm.kr", PasswordHash: "secret"}, f.err
}

func (f *fakeAccount) UpdateMe(ctx context.Context, id uuid.UUID, in useruc.UpdateMeInput) (user.User, error) {
	f.got = in
	return f.GetMe(ctx, id)
}

func TestUserHandler_GetMe(t *testing.T) {
	app := newTestApp(uuid.New())
	NewUserHandler(&fakeAccount{}).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := readEnvelope(t, resp.Body)
	require.Contains(t, string(env.Data), "kim@farm.kr")
	require.NotContains(t, string(env.Data), "secret")
}

func TestUserHandler_UpdateMe(t *testing.T) {
	fa := &fakeAccount{}
	app := newTestApp(uuid.New())
	NewUserHandler(fa).RegisterRoutes(app)

	req := httptest.NewRequest("PUT", "/me", strings.NewReader(`{"email":"new@farm.kr","current_password":"password1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, fa.got.Email)
	require.Equal(t, "new@farm.kr", *fa.got.Email)
	require.Nil(t, fa.got.Password)
	require.Equal(t, "password1", fa.got.CurrentPassword)
}

func TestUserHandler_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{useruc.ErrUserNotFound, fiber.StatusNotFound},
		{useruc.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{useruc.ErrEmailAlreadyRegistered, fiber.StatusConflict},
		{useruc.ErrInvalidInput, fiber.StatusBadRequest},
		{useruc.ErrInternal, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := newTestApp(uuid.New())
			NewUserHandler(&fakeAccount{err: tc.err}).RegisterRoutes(app)

			req := httptest.NewRequest("PUT", "/me", strings.NewReader(`{"password":"password9","current_password":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}

	app := newTestApp(uuid.Nil)
	NewUserHandler(&fakeAccount{}).RegisterRoutes(app)
	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
