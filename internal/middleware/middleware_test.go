package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

func signed(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken("secret", model.User{ID: 7, FirstName: "Ana", Email: "ana@x.com", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok.Token
}

func TestJWTAuth_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, model.RoleAdmin))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := JWTAuth("secret")(func(c echo.Context) error {
		called = true
		cl, ok := ClaimsFrom(c)
		if !ok || cl.UserID != 7 || cl.Role != model.RoleAdmin {
			t.Fatalf("claims = %+v", cl)
		}
		if currentUserID(c) != "7" {
			t.Fatalf("user id = %s", currentUserID(c))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("called=%v code=%d", called, rec.Code)
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Token abc",
		"garbage":      "Bearer abc.def.ghi",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h := JWTAuth("secret")(func(c echo.Context) error {
				t.Fatal("should not reach next")
				return nil
			})
			_ = h(e.NewContext(req, rec))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	for role, want := range map[string]int{model.RoleAdmin: http.StatusOK, model.RoleOperator: http.StatusOK, model.RoleCustomer: http.StatusForbidden} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, role))
		rec := httptest.NewRecorder()
		h := JWTAuth("secret")(RequireRole(model.RoleOperator, model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))
		_ = h(e.NewContext(req, rec))
		if rec.Code != want {
			t.Errorf("role %s: code %d, want %d", role, rec.Code, want)
		}
	}
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, KeyStrategy: "ip", Prefix: "rl"}
	rl := NewRateLimiter(cfg, nil, zerolog.Nop())
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, rl.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if i == 2 && rec.Header().Get("Retry-After") == "" {
			t.Error("missing Retry-After")
		}
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other ip throttled: %d", rec.Code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour}
	rl := NewRateLimiter(cfg, nil, zerolog.Nop())
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, rl.Middleware())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, rec.Code)
		}
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservas", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/reservas")
	got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c)
	if got != "rl:ip:10.0.0.9:route:POST /reservas" {
		t.Errorf("key = %q", got)
	}
}

func TestRequestLoggerWritesErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(zerolog.Nop()))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "nope") })
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("code = %d", rec.Code)
	}
}
