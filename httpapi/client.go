// Package httpapi implements the backend authentication API and the OAuth
// provider userinfo exchange over plain HTTP.
//
// Calls are never retried: a failed submission is surfaced once and the
// user resubmits. Timeout policy belongs to the injected http.Client.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	dashauth "github.com/summit-enterprise/dashauth"
)

// DefaultUserinfoURL is the Google OpenID Connect userinfo endpoint.
const DefaultUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Client talks to the authentication API described in the backend contract:
//
//	POST /auth/login           {email, password}                  -> {token, user}
//	POST /auth/google          {googleId, email, name, picture}   -> {token, user}
//	POST /auth/register        {email, password, name}            -> {token, user}
//	POST /auth/forgot-password {email}                            -> {ok}
//
// It implements [dashauth.AuthAPI] and [dashauth.IdentityProvider].
type Client struct {
	base        string
	userinfoURL string
	http        *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (and with it the timeout
// policy). Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserinfoURL overrides the OAuth provider userinfo endpoint.
func WithUserinfoURL(u string) Option {
	return func(c *Client) { c.userinfoURL = u }
}

// New creates a client rooted at the given API base URL.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:        strings.TrimRight(base, "/"),
		userinfoURL: DefaultUserinfoURL,
		http:        http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	IsAdmin      bool   `json:"is_admin"`
	IsSuperuser  bool   `json:"is_superuser"`
	IsBanned     bool   `json:"is_banned"`
	IsRestricted bool   `json:"is_restricted"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (u userPayload) profile() dashauth.Profile {
	return dashauth.Profile{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PictureURL:   u.Picture,
		IsAdmin:      u.IsAdmin,
		IsSuperuser:  u.IsSuperuser,
		IsBanned:     u.IsBanned,
		IsRestricted: u.IsRestricted,
	}
}

// Login submits the credential pair to POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, dashauth.Profile, error) {
	var resp sessionResponse
	err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", dashauth.Profile{}, err
	}
	return resp.Token, resp.User.profile(), nil
}

// GoogleLogin exchanges a provider identity for an application session via
// POST /auth/google.
func (c *Client) GoogleLogin(ctx context.Context, identity dashauth.GoogleIdentity) (string, dashauth.Profile, error) {
	var resp sessionResponse
	err := c.post(ctx, "/auth/google", map[string]string{
		"googleId": identity.Sub,
		"email":    identity.Email,
		"name":     identity.Name,
		"picture":  identity.Picture,
	}, &resp)
	if err != nil {
		return "", dashauth.Profile{}, err
	}
	return resp.Token, resp.User.profile(), nil
}

// Register submits a registration to POST /auth/register.
func (c *Client) Register(ctx context.Context, req dashauth.RegisterRequest) (string, dashauth.Profile, error) {
	var resp sessionResponse
	err := c.post(ctx, "/auth/register", map[string]string{
		"email":    req.Email,
		"password": req.Password,
		"name":     req.Name,
	}, &resp)
	if err != nil {
		if statusOf(err) >= 400 && statusOf(err) < 500 {
			return "", dashauth.Profile{}, fmt.Errorf("%w: %v", dashauth.ErrRegistrationFailed, err)
		}
		return "", dashauth.Profile{}, err
	}
	return resp.Token, resp.User.profile(), nil
}

// ForgotPassword submits a reset request to POST /auth/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("%w: %v", dashauth.ErrPasswordResetFailed, err)
	}
	return nil
}

// Userinfo resolves an OAuth provider access token to an identity profile.
// Only sub, email, name, and picture are consumed.
func (c *Client) Userinfo(ctx context.Context, accessToken string) (dashauth.GoogleIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return dashauth.GoogleIdentity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return dashauth.GoogleIdentity{}, fmt.Errorf("%w: %v", dashauth.ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dashauth.GoogleIdentity{}, fmt.Errorf("%w: %w", dashauth.ErrAuthUnavailable, statusError{status: resp.StatusCode})
	}

	var identity dashauth.GoogleIdentity
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&identity); err != nil {
		return dashauth.GoogleIdentity{}, fmt.Errorf("%w: %v", dashauth.ErrAuthUnavailable, err)
	}
	return identity, nil
}

// statusError carries a non-2xx response status through the sentinel wrap.
type statusError struct {
	status int
}

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}

func statusOf(err error) int {
	var se statusError
	if errors.As(err, &se) {
		return se.status
	}
	return 0
}

func (c *Client) post(ctx context.Context, path string, body map[string]string, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", dashauth.ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", dashauth.ErrInvalidCredentials, statusError{status: resp.StatusCode})
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %w", dashauth.ErrAuthUnavailable, statusError{status: resp.StatusCode})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", dashauth.ErrAuthUnavailable, err)
	}
	return nil
}
