package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAuthBase = "https://accounts.freelancer.com"

// DefaultRedirectURI matches the fixed callback listener address and path.
const DefaultRedirectURI = "http://localhost:8080/callback"

// DefaultScope is requested when the caller does not name one.
const DefaultScope = "basic"

// flowTimeout bounds how long the authorization-code flow waits for the
// browser redirect before giving up.
const flowTimeout = 60 * time.Second

// Flow implements the OAuth 2.0 Authorization Code and Client Credentials
// flows against the Freelancer.com accounts server.
// See https://developers.freelancer.com/docs/authentication
type Flow struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authBase     string
	listenAddr   string
	client       *http.Client

	// set for the duration of Authorize; lets tests reach the ephemeral
	// listener address
	callbackSrv *CallbackServer
}

// NewFlow creates a Flow.
// Pass an empty authBase to use the real accounts server. Pass a test server
// URL in tests. Pass an empty redirectURI to use DefaultRedirectURI.
func NewFlow(clientID, clientSecret, redirectURI, authBase string) *Flow {
	if authBase == "" {
		authBase = defaultAuthBase
	}
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	return &Flow{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authBase:     authBase,
		listenAddr:   "",
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthorizationURL builds the authorization endpoint URL with exactly four
// query parameters: response_type, client_id, redirect_uri, and scope.
// Inputs are not validated; the authorization server is the enforcement point.
func (f *Flow) AuthorizationURL(scope string) (string, error) {
	if scope == "" {
		scope = DefaultScope
	}
	endpoint, err := url.JoinPath(f.authBase, "/oauth/authorise")
	if err != nil {
		return "", fmt.Errorf("building URL: %w", err)
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", f.clientID)
	q.Set("redirect_uri", f.redirectURI)
	q.Set("scope", scope)
	return endpoint + "?" + q.Encode(), nil
}

// Authorize runs the full authorization-code flow: it starts the local
// callback listener, hands the authorization URL to open (typically a browser
// launcher), waits up to 60 seconds for the redirect, and exchanges the
// received code for a token. Each step is terminal on failure; nothing is
// retried.
func (f *Flow) Authorize(ctx context.Context, open func(url string) error) (TokenResponse, error) {
	if f.clientID == "" || f.clientSecret == "" {
		return TokenResponse{}, ErrMissingCredentials
	}

	srv, err := StartCallbackServer(f.listenAddr)
	if err != nil {
		return TokenResponse{}, err
	}
	f.callbackSrv = srv
	defer srv.Close()

	authURL, err := f.AuthorizationURL(DefaultScope)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := open(authURL); err != nil {
		return TokenResponse{}, fmt.Errorf("opening authorization URL: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, flowTimeout)
	defer cancel()
	cb, err := srv.Wait(waitCtx)
	if err != nil {
		return TokenResponse{}, err
	}
	if cb.Code == "" {
		return TokenResponse{}, &CallbackError{Reason: cb.Err}
	}

	return f.ExchangeCode(ctx, cb.Code)
}

// ExchangeCode exchanges an authorization code for an access token. The
// redirect URI sent here must exactly match the one used to build the
// authorization URL.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", f.clientID)
	data.Set("client_secret", f.clientSecret)
	data.Set("redirect_uri", f.redirectURI)
	return f.postToken(ctx, data)
}

// ClientCredentials runs the app-only flow: no browser, no callback listener.
func (f *Flow) ClientCredentials(ctx context.Context) (TokenResponse, error) {
	if f.clientID == "" || f.clientSecret == "" {
		return TokenResponse{}, ErrMissingCredentials
	}
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", f.clientID)
	data.Set("client_secret", f.clientSecret)
	data.Set("scope", DefaultScope)
	return f.postToken(ctx, data)
}

func (f *Flow) postToken(ctx context.Context, data url.Values) (TokenResponse, error) {
	endpoint, err := url.JoinPath(f.authBase, "/oauth/token")
	if err != nil {
		return TokenResponse{}, fmt.Errorf("building URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return TokenResponse{}, &TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return TokenResponse{}, fmt.Errorf("decoding token response: %w", err)
	}
	return token, nil
}
