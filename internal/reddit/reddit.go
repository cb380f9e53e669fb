package reddit

import (
	"context"

	"golang.org/x/oauth2"
)

const (
	authURL  = "https://www.reddit.com/api/v1/authorize"
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"
)

// DefaultScopes covers everything the application does with a linked
// account: identify it, read its saved listing and submit posts.
var DefaultScopes = []string{"identity", "read", "history", "save", "submit"}

// Credentials are the application-level OAuth client credentials, loaded
// from the credential store and passed explicitly to every call site.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func oauthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       DefaultScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
			// Reddit only accepts client credentials via HTTP basic auth.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// AuthCodeURL builds the user-facing authorization URL. duration=permanent
// asks Reddit for a refresh token alongside the access token.
func AuthCodeURL(creds Credentials, state string) string {
	return oauthConfig(creds).AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent"))
}

// Exchange trades an authorization code for a token pair.
func Exchange(ctx context.Context, creds Credentials, code string) (*oauth2.Token, error) {
	return oauthConfig(creds).Exchange(ctx, code)
}

// GrantedScope extracts the scope string Reddit returns with a token.
func GrantedScope(token *oauth2.Token) string {
	scope, _ := token.Extra("scope").(string)
	return scope
}

// API is the surface the rest of the application talks to. Services and the
// dispatch job depend on this interface so tests can substitute a fake.
type API interface {
	Me(ctx context.Context) (*Identity, error)
	SavedPosts(ctx context.Context, username string) ([]*SavedPost, error)
	Submit(ctx context.Context, req SubmitRequest) (*Submission, error)
}

// Factory builds API clients bound to one account's tokens.
type Factory interface {
	ClientFor(creds Credentials, refreshToken string) API
	ClientFromToken(creds Credentials, token *oauth2.Token) API
}
