package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dashauth "github.com/summit-enterprise/dashauth"
)

func sessionJSON(token, id string, admin bool) string {
	resp := sessionResponse{
		Token: token,
		User: userPayload{
			ID:      id,
			Email:   id + "@example.com",
			IsAdmin: admin,
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			t.Fatalf("unexpected body: %v", body)
		}
		_, _ = w.Write([]byte(sessionJSON("tok", "u1", false)))
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, profile, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok" || profile.ID != "u1" {
		t.Fatalf("token=%q profile=%+v", token, profile)
	}
}

func TestLoginRejectionMapsToInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		c := New(srv.URL)
		_, _, err := c.Login(context.Background(), "a@b.c", "bad")
		srv.Close()

		if !errors.Is(err, dashauth.ErrInvalidCredentials) {
			t.Fatalf("status %d: expected ErrInvalidCredentials, got %v", status, err)
		}
	}
}

func TestLoginServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, dashauth.ErrAuthUnavailable) {
		t.Fatalf("expected ErrAuthUnavailable, got %v", err)
	}
	if errors.Is(err, dashauth.ErrInvalidCredentials) {
		t.Fatal("5xx must not map to ErrInvalidCredentials")
	}
}

func TestLoginTransportErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, dashauth.ErrAuthUnavailable) {
		t.Fatalf("expected ErrAuthUnavailable, got %v", err)
	}
}

func TestGoogleLoginPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/google" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["googleId"] != "g1" || body["email"] != "a@b.c" {
			t.Fatalf("unexpected body: %v", body)
		}
		_, _ = w.Write([]byte(sessionJSON("tok", "u1", false)))
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, _, err := c.GoogleLogin(context.Background(), dashauth.GoogleIdentity{
		Sub: "g1", Email: "a@b.c", Name: "N", Picture: "p",
	})
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if token != "tok" {
		t.Fatalf("token = %q", token)
	}
}

func TestRegisterClientRejectionMapsToRegistrationFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Register(context.Background(), dashauth.RegisterRequest{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, dashauth.ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
}

func TestRegisterServerErrorStaysUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Register(context.Background(), dashauth.RegisterRequest{Email: "a@b.c", Password: "pw"})
	if errors.Is(err, dashauth.ErrRegistrationFailed) {
		t.Fatal("5xx must not map to ErrRegistrationFailed")
	}
	if !errors.Is(err, dashauth.ErrAuthUnavailable) {
		t.Fatalf("expected ErrAuthUnavailable, got %v", err)
	}
}

func TestForgotPasswordWrapsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/forgot-password" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.ForgotPassword(context.Background(), "a@b.c")
	if !errors.Is(err, dashauth.ErrPasswordResetFailed) {
		t.Fatalf("expected ErrPasswordResetFailed, got %v", err)
	}
}

func TestForgotPasswordSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	if err := New(srv.URL).ForgotPassword(context.Background(), "a@b.c"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
}

func TestUserinfoSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at" {
			t.Fatalf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"sub":"g1","email":"a@b.c","name":"N","picture":"p"}`))
	}))
	defer srv.Close()

	c := New("http://unused", WithUserinfoURL(srv.URL))
	identity, err := c.Userinfo(context.Background(), "at")
	if err != nil {
		t.Fatalf("userinfo: %v", err)
	}
	if identity.Sub != "g1" || identity.Email != "a@b.c" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestUserinfoRejectionMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("http://unused", WithUserinfoURL(srv.URL))
	_, err := c.Userinfo(context.Background(), "expired")
	if !errors.Is(err, dashauth.ErrAuthUnavailable) {
		t.Fatalf("expected ErrAuthUnavailable, got %v", err)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(sessionJSON("tok", "u1", false)))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	if _, _, err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}
