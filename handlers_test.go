package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finanalyst/models"
)

func testServerNoDB() *server {
	gin.SetMode(gin.TestMode)
	return &server{cfg: &Config{JWTSecret: testSecret, TokenTTL: time.Hour}}
}

func probe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// These cases never reach the user lookup, so no store is needed.
func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	s := testServerNoDB()
	r := gin.New()
	r.GET("/probe", s.requireAuth(), probe)

	expired, _ := IssueToken(testSecret, testUser(), -time.Minute)
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", c.name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	s := testServerNoDB()
	asUser := func(u *models.User) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user", u)
			c.Next()
		}
	}
	r := gin.New()
	r.GET("/admin", asUser(&models.User{Role: models.RoleUser}), s.requireRole(models.RoleAdministrator), probe)
	r.GET("/admin-ok", asUser(&models.User{Role: models.RoleAdministrator}), s.requireRole(models.RoleAdministrator), probe)
	r.GET("/anon", s.requireRole(models.RoleAdministrator), probe)

	cases := []struct {
		path string
		want int
	}{
		{"/admin", http.StatusForbidden},
		{"/admin-ok", http.StatusOK},
		{"/anon", http.StatusUnauthorized},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Errorf("GET %s: status = %d, want %d", c.path, rec.Code, c.want)
		}
	}
}
