package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"farm-policy/internal/app"
	"farm-policy/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEmail = "it-farmer@example.com"

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type matchItem struct {
	Policy struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"policy"`
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}

func TestIntegration_Register_Profile_Matches(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := testConfig(t)
	mr := miniredis.RunT(t)
	cfg.Redis.Host, cfg.Redis.Port = mr.Host(), mr.Port()

	c, err := app.NewContainer(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	require.NoError(t, c.Prepare(ctx))

	_, _ = c.DB.Exec(ctx, `DELETE FROM users WHERE email = $1`, testEmail)
	defer func() { _, _ = c.DB.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, testEmail) }()

	f := app.New(c).Fiber

	var session struct {
		AccessToken string `json:"access_token"`
	}
	env := call(t, f, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": testEmail, "password": "password1",
	})
	require.Equal(t, fiber.StatusCreated, env.Status, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.AccessToken)

	env = call(t, f, http.MethodGet, "/api/v1/matches", session.AccessToken, nil)
	require.Equal(t, fiber.StatusNotFound, env.Status, "matching without a profile")

	env = call(t, f, http.MethodPut, "/api/v1/profile", session.AccessToken, map[string]any{
		"name":                "김농부",
		"birth_date":          "1980-03-15",
		"phone":               "010-1234-5678",
		"address_sido":        "전라남도",
		"address_sigungu":     "나주시",
		"farm_area":           12000,
		"crop_types":          []string{"벼", "배"},
		"farming_type":        "논농업",
		"household_members":   4,
		"annual_income":       25000000,
		"is_eco_certified":    true,
		"is_successor_farmer": true,
	})
	require.Equal(t, fiber.StatusOK, env.Status, env.Message)

	env = call(t, f, http.MethodGet, "/api/v1/matches?limit=20", session.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, env.Status, env.Message)

	var items []matchItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.NotEmpty(t, items)

	seen := map[string]bool{}
	for i, it := range items {
		require.False(t, seen[it.Policy.ID], "duplicate policy %s", it.Policy.ID)
		seen[it.Policy.ID] = true
		require.Greater(t, it.MatchScore, 30)
		require.LessOrEqual(t, it.MatchScore, 100)
		if i > 0 {
			require.GreaterOrEqual(t, items[i-1].MatchScore, it.MatchScore)
		}
	}

	env = call(t, f, http.MethodGet, "/api/v1/me", session.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, env.Status, env.Message)
	require.Contains(t, string(env.Data), testEmail)
	require.NotContains(t, string(env.Data), "password")
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := os.Getenv("FARM_POLICY_TEST_DB_HOST")
	port := os.Getenv("FARM_POLICY_TEST_DB_PORT")
	name := os.Getenv("FARM_POLICY_TEST_DB_NAME")
	user := os.Getenv("FARM_POLICY_TEST_DB_USER")
	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set FARM_POLICY_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	ssl := os.Getenv("FARM_POLICY_TEST_DB_SSL_MODE")
	if ssl == "" {
		ssl = "disable"
	}

	return config.Config{
		App: config.AppConfig{AppName: "farm-policy", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:        host,
			DBPort:        port,
			DBName:        name,
			DBUser:        user,
			DBPassword:    os.Getenv("FARM_POLICY_TEST_DB_PASSWORD"),
			DBSSLMode:     ssl,
			RunMigrations: true,
			RunSeeders:    true,
		},
		Redis: config.RedisConfig{TTL: time.Minute, MatchTTL: time.Minute},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
		PDF: config.PDFConfig{Timeout: 30 * time.Second},
	}
}

func call(t *testing.T, f *fiber.App, method, path, token string, body any) envelope {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.Status)
	return env
}
