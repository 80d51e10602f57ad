package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	origin := "https://studytrack.example.com"
	r := gin.New()
	r.Use(CORS([]string{origin}))
	r.OPTIONS("/api/subjects", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/subjects", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
		t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
	}
}

func TestCORSFallsBackToLocalDevOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	origins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:3000",
	}

	for _, origin := range origins {
		origin := origin
		t.Run(origin, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.Use(CORS(nil))
			r.OPTIONS("/api/subjects", func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodOptions, "/api/subjects", nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
			}
		})
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.OPTIONS("/api/subjects", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/subjects", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin header for rejected origin: %q", got)
	}
}
