package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the subset of JWT claims shown by whoami. The access token is
// treated as opaque everywhere else; this peek is display-only and the
// signature is deliberately not verified, the backend remains the sole
// authority on token validity.
type TokenInfo struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PeekToken decodes JWT claims from the stored access token without
// verification. Returns false for tokens that are not parseable JWTs, which
// is fine: opaque tokens are still perfectly usable as bearer credentials.
func PeekToken(token string) (TokenInfo, bool) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, true
}
