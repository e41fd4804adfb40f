// Package csrf issues and checks the double-submit tokens that guard the
// console's forms.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// TokenLength is the number of random bytes behind a token.
const TokenLength = 32

// GenerateToken returns a fresh URL-safe token for the csrf cookie.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// ValidateToken reports whether the token posted with a form matches the
// one in the cookie. Missing tokens never match.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}
