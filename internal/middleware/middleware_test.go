package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/health-portal/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1}
}

func protected(cfg *config.Config, roles ...string) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		a := Actor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.UserID, "email": a.Email, "role": a.Role})
	})
	r.GET("/me", chain...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"error_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body %s: %v", w.Body.String(), err)
	}
	if body.Success {
		t.Errorf("expected success=false")
	}
	return body.Code
}

func TestAuth_ValidToken(t *testing.T) {
	cfg := testConfig()
	token, err := IssueToken(cfg, "u-1", "ana@test.com", "doctor")
	if err != nil {
		t.Fatal(err)
	}

	w := do(protected(cfg), token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"email":"ana@test.com"`) {
		t.Errorf("expected actor email in body, got %s", w.Body.String())
	}
}

func TestAuth_Rejections(t *testing.T) {
	cfg := testConfig()

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1", "email": "a@test.com", "role": "user",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))

	wrongKey, _ := IssueToken(&config.Config{JWTSecret: "other", JWTTTLHours: 1}, "u-1", "a@test.com", "user")
	badRole, _ := IssueToken(cfg, "u-1", "a@test.com", "admin")

	cases := []struct {
		name  string
		token string
		code  string
	}{
		{"missing", "", "missing_authorization_header"},
		{"expired", expired, "token_expired"},
		{"wrong key", wrongKey, "invalid_token"},
		{"unknown role", badRole, "invalid_token_payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(protected(cfg), tc.token)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if got := errorCode(t, w); got != tc.code {
				t.Errorf("expected %s, got %s", tc.code, got)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	patient, _ := IssueToken(cfg, "u-1", "p@test.com", "user")
	doctor, _ := IssueToken(cfg, "u-2", "d@test.com", "doctor")

	r := protected(cfg, "doctor", "hospital")

	if w := do(r, patient); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for patient, got %d", w.Code)
	}
	if w := do(r, doctor); w.Code != http.StatusOK {
		t.Errorf("expected 200 for doctor, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 pre-flight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://app.test" {
		t.Errorf("expected allowed origin echoed")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("expected no CORS headers for unknown origin")
	}
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	r := gin.New()
	r.Use(RequestLogger(logger), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := errorCode(t, w); got != "internal_error" {
		t.Errorf("expected internal_error, got %s", got)
	}
	if w.Header().Get(HeaderRequestID) != "rid-42" {
		t.Errorf("expected request id echoed")
	}

	out := logs.String()
	if !strings.Contains(out, "panic recovered") || !strings.Contains(out, `"request_id":"rid-42"`) {
		t.Errorf("expected panic log tagged with request id, got %s", out)
	}
	if !strings.Contains(out, `"status":500`) {
		t.Errorf("expected access log with status 500, got %s", out)
	}
}
