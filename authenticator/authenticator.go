// Package authenticator provides optional single sign-on for admin users.
package authenticator

import (
	"context"
	"strings"
)

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Email returns the email claim, lowercased
func (c Claims) Email() string {
	email, _ := c["email"].(string)
	return strings.ToLower(strings.TrimSpace(email))
}

// Nickname returns the best display name available in the claims
func (c Claims) Nickname() string {
	for _, key := range []string{"nickname", "name", "preferred_username", "email"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Subject returns the sub claim
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}
