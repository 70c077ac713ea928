package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polyhub/timetable-back/internal/config"
	"github.com/polyhub/timetable-back/internal/models"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type credential struct {
	user     models.User
	password string
}

// Demo credential list. There is no real user backend; this mirrors the two
// lecturers and two students the dashboard ships with.
var credentials = []credential{
	{
		user: models.User{
			ID:         "STAFF001",
			Name:       "Dr. John Smith",
			Role:       models.RoleLecturer,
			Department: "Computer Science",
		},
		password: "password123",
	},
	{
		user: models.User{
			ID:         "STAFF002",
			Name:       "Prof. Sarah Williams",
			Role:       models.RoleLecturer,
			Department: "Mass Communication",
		},
		password: "password123",
	},
	{
		user: models.User{
			ID:         "STD001",
			Name:       "Alice Johnson",
			Role:       models.RoleStudent,
			Department: "Computer Science",
			Level:      models.LevelHND1,
		},
		password: "password123",
	},
	{
		user: models.User{
			ID:         "STD002",
			Name:       "Bob Anderson",
			Role:       models.RoleStudent,
			Department: "Mass Communication",
			Level:      models.LevelND2,
		},
		password: "password123",
	},
}

// Authenticate checks id+password against the credential list for the given
// role. The role must match: a student id with a lecturer role fails.
func Authenticate(id, password string, role models.UserRole) (models.User, error) {
	for _, c := range credentials {
		if c.user.ID == id && c.password == password && c.user.Role == role {
			return c.user, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// UserByID looks a user up without checking a password. Used when rebuilding
// identity from refresh token claims.
func UserByID(id string) (models.User, bool) {
	for _, c := range credentials {
		if c.user.ID == id {
			return c.user, true
		}
	}
	return models.User{}, false
}

// TokenPair is a short-lived access token plus a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IssueTokens signs a token pair carrying the identity fields the stores
// filter on.
func IssueTokens(cfg *config.Config, user models.User) (TokenPair, error) {
	jwtSecret := []byte(cfg.JWTSecret)
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":        user.ID,
		"name":       user.Name,
		"role":       string(user.Role),
		"department": user.Department,
		"level":      string(user.Level),
		"exp":        now.Add(accessTokenTTL).Unix(),
	}
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	signedAccess, err := access.SignedString(jwtSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"exp":  now.Add(refreshTokenTTL).Unix(),
		"type": "refresh",
	}
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	signedRefresh, err := refresh.SignedString(jwtSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: signedAccess, RefreshToken: signedRefresh}, nil
}

// ParseAccessToken validates an access token and rebuilds the identity it
// carries.
func ParseAccessToken(cfg *config.Config, tokenStr string) (models.User, error) {
	jwtSecret := []byte(cfg.JWTSecret)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] == "refresh" {
		return models.User{}, ErrInvalidCredentials
	}

	id, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)
	level, _ := claims["level"].(string)
	if id == "" {
		return models.User{}, ErrInvalidCredentials
	}

	return models.User{
		ID:         id,
		Name:       name,
		Role:       models.UserRole(role),
		Department: department,
		Level:      models.ClassLevel(level),
	}, nil
}

// ParseRefreshToken validates a refresh token and returns the subject id.
func ParseRefreshToken(cfg *config.Config, tokenStr string) (string, error) {
	jwtSecret := []byte(cfg.JWTSecret)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return "", ErrInvalidCredentials
	}

	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", ErrInvalidCredentials
	}
	return id, nil
}
