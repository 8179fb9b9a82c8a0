package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by a session token. The subject is the
// clinician id; SessionID points at the server-side session record, so that a
// token stops working as soon as the session is revoked, independent of exp.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CreateSessionToken signs an HS256 token binding a clinician to a session id
// for the given lifetime.
func CreateSessionToken(clinicianID uint, sessionID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(clinicianID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies the token signature and expiry and returns the
// clinician id and session id it carries.
func ParseSessionToken(tokenString, secret string) (uint, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}
	if claims.SessionID == "" {
		return 0, "", errors.New("invalid token: session id missing")
	}

	clinicianID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, "", errors.New("invalid token subject")
	}
	return uint(clinicianID), claims.SessionID, nil
}
