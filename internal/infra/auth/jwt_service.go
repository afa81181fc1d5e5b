// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"agromart/config"
	"agromart/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret string        // Secret key for signing access tokens.
	accessTTL    time.Duration // Time-to-live for access tokens.
	issuer       string
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := 24 * time.Hour
	issuer := ""
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			ttl = cfg.Auth.AccessTokenTTL
		}
		issuer = cfg.Auth.Issuer
	}

	return &jwtService{
		accessSecret: cfg.SecretKey.Access,
		accessTTL:    ttl,
		issuer:       issuer,
		now:          time.Now,
	}, nil
}

// IssueAccessToken signs an HS256 token for profileID.
func (s *jwtService) IssueAccessToken(profileID uuid.UUID) (string, error) {
	now := s.now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.accessSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return token, nil
}

// ParseAccessToken validates the signature and expiry and returns the subject.
func (s *jwtService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims := &service.Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(s.accessSecret), nil
	}, opts...)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid access token")
	}

	profileID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid token subject")
	}

	return profileID, nil
}
