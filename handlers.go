package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finanalyst/models"
	"finanalyst/pkg/apperr"
)

type server struct {
	cfg *Config
	db  *gorm.DB
}

func newServer(cfg *Config, db *gorm.DB) *server {
	return &server{cfg: cfg, db: db}
}

func setupRoutes(r *gin.Engine, s *server) {
	r.GET("/health", s.healthHandler)

	auth := r.Group("/auth")
	auth.POST("/register", s.registerHandler)
	auth.POST("/login", s.loginHandler)
	auth.POST("/logout", s.logoutHandler)
	auth.GET("/me", s.requireAuth(), s.meHandler)

	tx := r.Group("/transactions")
	tx.GET("", s.listTransactionsHandler)
	tx.GET("/stats", s.transactionStatsHandler)
	tx.GET("/filters", s.availableFiltersHandler)
	tx.GET("/dashboard", s.dashboardHandler)
	tx.GET("/csv-config", s.csvConfigHandler)
	tx.POST("/export-csv", s.exportCSVHandler)
	tx.GET("/:id", s.getTransactionHandler)

	mut := tx.Group("")
	mut.Use(s.requireAuth())
	mut.POST("", s.createTransactionHandler)
	mut.PUT("/:id", s.updateTransactionHandler)
	mut.DELETE("/:id", s.deleteTransactionHandler)
}

// requireAuth verifies the bearer credential and loads the account into
// the request context.
func (s *server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperr.Abort(c, apperr.Unauthorized("missing or invalid Authorization header"))
			return
		}
		claims, err := ParseToken(s.cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperr.Abort(c, err)
			return
		}
		id, _ := claims["id"].(string)
		var user models.User
		if err := s.db.First(&user, "id = ?", id).Error; err != nil {
			apperr.Abort(c, apperr.Unauthorized("user not found"))
			return
		}
		c.Set("user", &user)
		c.Next()
	}
}

// requireRole gates an already-authenticated request on role membership.
func (s *server) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			apperr.Abort(c, apperr.Unauthorized("not authorized"))
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		apperr.Abort(c, apperr.Forbidden("role not allowed"))
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func (s *server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) registerHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	user, err := RegisterUser(s.db, req.Name, req.Email, req.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	token, err := IssueToken(s.cfg.JWTSecret, user, s.cfg.TokenTTL)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"token": token, "user": user}})
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	user, err := Authenticate(s.db, req.Email, req.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	token, err := IssueToken(s.cfg.JWTSecret, user, s.cfg.TokenTTL)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"token": token, "user": user}})
}

func (s *server) meHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("not authorized"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// logoutHandler is a no-op server side: the credential simply expires.
func (s *server) logoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
