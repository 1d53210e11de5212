package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tickettango/api/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := JWTAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "alice", 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, c := runJWT(t, "Bearer "+access.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	// Claims round-trip through JSON, so the subject arrives as a number.
	if sub, ok := c.Get("user_id").(float64); !ok || sub != 42 {
		t.Errorf("user_id = %v, want 42", c.Get("user_id"))
	}
	if c.Get("username") != "alice" {
		t.Errorf("username = %v, want alice", c.Get("username"))
	}
}

func TestJWTAuthRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runJWT(t, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("another-secret", 42, "alice", 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := runJWT(t, "Bearer "+access.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
