package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for profile access tokens.
// The profile ID travels in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// IssueAccessToken signs a token whose subject is profileID.
	IssueAccessToken(profileID uuid.UUID) (string, error)

	// ParseAccessToken validates tokenString and returns the profile it was issued for.
	ParseAccessToken(tokenString string) (uuid.UUID, error)
}
