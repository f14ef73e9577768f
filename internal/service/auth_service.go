package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bookforge/internal/config"
	"bookforge/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles author authentication. Single-author deployment: one
// credential pair from the environment, book-level ownership checks downstream.
type AuthService struct {
	authorUsername string
	authorPassword string
	jwtSecret      []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.ServerConfig) *AuthService {
	return &AuthService{
		authorUsername: cfg.AuthorUsername,
		authorPassword: cfg.AuthorPassword,
		jwtSecret:      []byte(cfg.JWTSecret),
	}
}

// AuthorIDFor derives the stable author ID for a username. Deterministic so
// books created in one session stay visible in the next.
func AuthorIDFor(username string) string {
	return "author_" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(username)).String()[:8]
}

// Login validates credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.authorUsername || password != s.authorPassword {
		return nil, ErrInvalidCredentials
	}

	authorID := AuthorIDFor(username)

	claims := &model.AuthorClaims{
		AuthorID: authorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    tokenString,
		AuthorID: authorID,
	}, nil
}

// ValidateToken validates an author JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AuthorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AuthorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
