package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wordstash/api/internal/auth"
)

func newAdminRouter(secret string, subjects []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminMiddleware(secret, subjects), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("adminSubject")})
	})
	return r
}

func request(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAdminMiddleware_ValidToken(t *testing.T) {
	r := newAdminRouter("secret", []string{"ops"})

	token, err := auth.GenerateAdminToken("ops", "secret")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	w := request(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAdminMiddleware_MissingHeader(t *testing.T) {
	r := newAdminRouter("secret", []string{"ops"})

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminMiddleware_MalformedHeader(t *testing.T) {
	r := newAdminRouter("secret", []string{"ops"})

	if w := request(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminMiddleware_WrongSecret(t *testing.T) {
	r := newAdminRouter("secret", []string{"ops"})

	token, err := auth.GenerateAdminToken("ops", "other")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminMiddleware_SubjectNotAllowed(t *testing.T) {
	r := newAdminRouter("secret", []string{"ops"})

	token, err := auth.GenerateAdminToken("intruder", "secret")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if w := request(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
