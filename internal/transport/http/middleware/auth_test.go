package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/metrics"
	"github.com/ErlanBelekov/vehicle-api/internal/token"
	"github.com/ErlanBelekov/vehicle-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService([]byte(testKey))
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return svc
}

// newEngine protects GET /protected with Auth and GET /admin with
// Auth + RequireRole(Admin). Handlers echo the context values.
func newEngine(t *testing.T) *gin.Engine {
	r := gin.New()
	auth := middleware.Auth(newTokens(t))
	echo := func(c *gin.Context) {
		userID, _ := c.Get(middleware.UserIDKey)
		role, _ := c.Get(middleware.RoleKey)
		c.String(http.StatusOK, "%v:%v", userID, role)
	}
	r.GET("/protected", auth, echo)
	r.GET("/admin", auth, middleware.RequireRole(domain.RoleAdmin), echo)
	return r
}

func issue(t *testing.T, userID int64, isAdmin bool) string {
	t.Helper()
	tok, _, err := newTokens(t).Issue(userID, isAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func serve(t *testing.T, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	newEngine(t).ServeHTTP(w, req)
	return w
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func TestAuth_MissingToken_Returns401(t *testing.T) {
	before := testutil.ToFloat64(metrics.TokenVerificationsTotal.WithLabelValues("missing"))

	if w := serve(t, "/protected", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := testutil.ToFloat64(metrics.TokenVerificationsTotal.WithLabelValues("missing")); got != before+1 {
		t.Errorf("missing counter = %v, want %v", got, before+1)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := serve(t, "/protected", func(r *http.Request) {
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	if w := serve(t, "/protected", bearer("not.a.jwt")); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	svc, err := token.NewService([]byte(testKey), token.WithClock(func() time.Time { return past }))
	if err != nil {
		t.Fatal(err)
	}
	tok, _, err := svc.Issue(1, false)
	if err != nil {
		t.Fatal(err)
	}

	before := testutil.ToFloat64(metrics.TokenVerificationsTotal.WithLabelValues("expired"))
	if w := serve(t, "/protected", bearer(tok)); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := testutil.ToFloat64(metrics.TokenVerificationsTotal.WithLabelValues("expired")); got != before+1 {
		t.Errorf("expired counter = %v, want %v", got, before+1)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": "Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("different-key-that-is-32-chars!!"))
	if err != nil {
		t.Fatal(err)
	}

	if w := serve(t, "/protected", bearer(signed)); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidBearer_SetsUserAndRole(t *testing.T) {
	w := serve(t, "/protected", bearer(issue(t, 42, false)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), fmt.Sprintf("%d:%s", 42, domain.RoleUser); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestAuth_FallsBackToCookie(t *testing.T) {
	w := serve(t, "/protected", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: issue(t, 9, true)})
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "9:Admin" {
		t.Errorf("body = %q, want %q", got, "9:Admin")
	}
}

func TestAuth_BearerWinsOverCookie(t *testing.T) {
	w := serve(t, "/protected", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+issue(t, 1, false))
		r.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: issue(t, 2, true)})
	})

	if got := w.Body.String(); got != "1:User" {
		t.Errorf("body = %q, want %q", got, "1:User")
	}
}

func TestRequireRole_UserGets403(t *testing.T) {
	if w := serve(t, "/admin", bearer(issue(t, 5, false))); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireRole_AdminPasses(t *testing.T) {
	if w := serve(t, "/admin", bearer(issue(t, 5, true))); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireRole_WithoutAuthGets403(t *testing.T) {
	r := gin.New()
	r.GET("/admin", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
