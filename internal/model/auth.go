package model

import "github.com/golang-jwt/jwt/v5"

// AuthorClaims are the JWT claims for an authenticated author
type AuthorClaims struct {
	AuthorID string `json:"authorId"`
	jwt.RegisteredClaims
}

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token    string `json:"token"`
	AuthorID string `json:"authorId"`
}
