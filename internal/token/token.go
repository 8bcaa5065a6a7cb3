// Package token issues and verifies the two JWT classes used by the service:
// user session tokens and internal service-to-service tokens. Each class has
// its own secret and expiry, so a token of one class can never verify as the
// other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jacksonn455/user-service/internal/apperrors"
)

// UserClaims is the payload of a user session token.
type UserClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceClaims is the payload of an internal service token.
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

type Issuer struct {
	userSecret    []byte
	serviceSecret []byte
	userTTL       time.Duration
	serviceTTL    time.Duration
}

func NewIssuer(userSecret, serviceSecret string, userTTL, serviceTTL time.Duration) *Issuer {
	return &Issuer{
		userSecret:    []byte(userSecret),
		serviceSecret: []byte(serviceSecret),
		userTTL:       userTTL,
		serviceTTL:    serviceTTL,
	}
}

func (i *Issuer) IssueUserToken(userID, email string) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.userTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return sign(claims, i.userSecret)
}

func (i *Issuer) VerifyUserToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := parse(tokenString, claims, i.userSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (i *Issuer) IssueServiceToken(service string) (string, error) {
	claims := ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.serviceTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return sign(claims, i.serviceSecret)
}

func (i *Issuer) VerifyServiceToken(tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}
	if err := parse(tokenString, claims, i.serviceSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parse validates signature, method and expiry. Expired and malformed tokens
// both collapse into ErrInvalidToken for callers, but keep distinct wrapping
// so operational logs can tell them apart.
func parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token expired: %w", apperrors.ErrInvalidToken)
		}
		return fmt.Errorf("malformed token: %w", apperrors.ErrInvalidToken)
	}
	if !token.Valid {
		return fmt.Errorf("malformed token: %w", apperrors.ErrInvalidToken)
	}
	return nil
}
