package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/quayside-labs/walletkit/internal/adapters"
)

// Errors.
var (
	ErrUnknownProvider = errors.New("unknown auth provider")
	ErrExchangeFailed  = errors.New("token exchange failed")
)

// Provider describes one OAuth authorization-code provider. The set is closed:
// social login supports google, github, and discord.
type Provider struct {
	Name     string
	AuthURL  string
	TokenURL string
	ClientID string
	Scopes   []string
}

// Built-in provider names.
const (
	ProviderGoogle  = "google"
	ProviderGitHub  = "github"
	ProviderDiscord = "discord"
)

// Providers returns the supported provider set with the given client ids.
// Providers without a configured client id are still listed; AuthCodeURL
// rejects them.
func Providers(clientIDs map[string]string) []Provider {
	return []Provider{
		{
			Name:     ProviderGoogle,
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
			ClientID: clientIDs[ProviderGoogle],
			Scopes:   []string{"openid", "email", "profile"},
		},
		{
			Name:     ProviderGitHub,
			AuthURL:  "https://github.com/login/oauth/authorize",
			TokenURL: "https://github.com/login/oauth/access_token",
			ClientID: clientIDs[ProviderGitHub],
			Scopes:   []string{"read:user", "user:email"},
		},
		{
			Name:     ProviderDiscord,
			AuthURL:  "https://discord.com/oauth2/authorize",
			TokenURL: "https://discord.com/api/oauth2/token",
			ClientID: clientIDs[ProviderDiscord],
			Scopes:   []string{"identify", "email"},
		},
	}
}

// ProviderByName finds a provider in the supported set.
func ProviderByName(name string, clientIDs map[string]string) (Provider, error) {
	for _, p := range Providers(clientIDs) {
		if p.Name == name {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// AuthCodeURL builds the browser authorization URL for the given state nonce
// and redirect target.
func (p Provider) AuthCodeURL(state, redirectURI string) (string, error) {
	if p.ClientID == "" {
		return "", fmt.Errorf("provider %s: client id not configured", p.Name)
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(p.Scopes, " "))
	q.Set("state", state)
	return p.AuthURL + "?" + q.Encode(), nil
}

// Token is the result of a successful code exchange.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Exchange swaps an authorization code for a token through the resolved
// network adapter. Client secrets are read from the environment by the
// caller and passed in; an empty secret is sent as-is for providers using
// PKCE-less public clients.
func (p Provider) Exchange(ctx context.Context, net adapters.NetworkAdapter, code, clientSecret, redirectURI string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.ClientID)
	if clientSecret != "" {
		form.Set("client_secret", clientSecret)
	}
	form.Set("redirect_uri", redirectURI)

	resp, err := net.Do(ctx, &adapters.Request{
		Method: http.MethodPost,
		URL:    p.TokenURL,
		Header: http.Header{
			"Content-Type": []string{"application/x-www-form-urlencoded"},
			"Accept":       []string{"application/json"},
		},
		Body: []byte(form.Encode()),
	})
	if err != nil {
		return nil, fmt.Errorf("exchanging code with %s: %w", p.Name, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrExchangeFailed, p.Name, resp.Status)
	}

	var tok Token
	if err := resp.JSON(&tok); err != nil {
		return nil, fmt.Errorf("parsing %s token response: %w", p.Name, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: %s returned no access token", ErrExchangeFailed, p.Name)
	}
	return &tok, nil
}
