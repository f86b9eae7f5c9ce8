package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// The client never verifies token signatures; the secret lives server-side.
// Claims are inspected unverified, only to avoid pointless round-trips with
// a token that is already expired. The backend remains the authority.

// parseClaims decodes the claims of a bearer token without verification.
func parseClaims(tokenString string) (jwt.MapClaims, error) {
	parser := jwt.Parser{}
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

// TokenExpired reports whether the token carries an exp claim that is already
// in the past. Tokens that cannot be decoded, or carry no exp claim, are not
// treated as expired; the backend gets the final say.
func TokenExpired(tokenString string) bool {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

// ExtractIDFromToken extracts the subject claim from a bearer token string.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
