package main

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finanalyst/models"
	"finanalyst/pkg/apperr"
)

// RegisterUser creates an account with a bcrypt-hashed password and
// returns the stored user. A duplicate email is a conflict.
func RegisterUser(db *gorm.DB, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, apperr.BadRequest("name and email are required")
	}
	if len(password) < 6 { // basic password policy
		return nil, apperr.BadRequest("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperr.BadRequest("user already exists")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Name: name, Email: email, HashedPassword: hashed, Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, apperr.BadRequest("user already exists")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password return the same generic error so accounts cannot be probed.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return &user, nil
}

// IssueToken signs a credential for user, valid for ttl from now.
func IssueToken(secret []byte, user *models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken checks signature validity and expiry and returns the
// claims. Every failure mode collapses into one Unauthorized error.
func ParseToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid claims")
	}
	return claims, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
