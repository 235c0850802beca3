// Package token mints and validates the signed access and refresh tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"social-service/internal/shared/apperr"
)

const refreshType = "refresh"

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess signs a short-lived token carrying the user id and expiry.
// Nothing sensitive goes into the payload.
func (i *Issuer) IssueAccess(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(i.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// IssueRefresh signs a long-lived token with a type discriminator so it can
// never double as an access token.
func (i *Issuer) IssueRefresh(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(i.refreshTTL).Unix(),
		"type":    refreshType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ParseAccess returns the subject user id, or an authentication error on a
// bad signature, expiry, missing subject, or a refresh token presented as
// an access token.
func (i *Issuer) ParseAccess(tok string) (string, error) {
	claims, err := i.parse(tok)
	if err != nil {
		return "", err
	}
	if typ, _ := claims["type"].(string); typ == refreshType {
		return "", apperr.Authentication("refresh token used as access token")
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return "", apperr.Authentication("token has no subject")
	}
	return uid, nil
}

// ParseRefresh returns the subject user id, or "" when the token is invalid,
// expired, not refresh-typed, or missing the subject. Callers reject the
// request on ""; an invalid refresh token is never a fault.
func (i *Issuer) ParseRefresh(tok string) string {
	claims, err := i.parse(tok)
	if err != nil {
		return ""
	}
	if typ, _ := claims["type"].(string); typ != refreshType {
		return ""
	}
	uid, _ := claims["user_id"].(string)
	return uid
}

func (i *Issuer) parse(tok string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tok,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !parsed.Valid {
		return nil, apperr.Authentication("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Authentication("invalid token claims")
	}
	return claims, nil
}
