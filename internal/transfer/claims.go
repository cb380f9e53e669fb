package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// StateClaims ride through the Reddit OAuth state parameter so the callback
// can recover the initiating user without an authenticated session.
type StateClaims struct {
	UserID string `json:"user_id"`
	Nonce  string `json:"nonce"`
	jwt.RegisteredClaims
}
