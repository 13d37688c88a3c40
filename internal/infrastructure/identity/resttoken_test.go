package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carebridge/care-platform/internal/core/domain"
)

func newTestGateway(toolkit, secureToken *httptest.Server) *RESTTokenGateway {
	g := NewRESTTokenGateway("test-key")
	if toolkit != nil {
		g.identityToolkitURL = toolkit.URL
	}
	if secureToken != nil {
		g.secureTokenURL = secureToken.URL
	}
	return g
}

func TestRESTTokenGateway_SignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key, query %q", r.URL.RawQuery)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.com" || body["returnSecureToken"] != true {
			t.Errorf("unexpected body %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"idToken":      "id-123",
			"refreshToken": "refresh-456",
		})
	}))
	defer srv.Close()

	idToken, refreshToken, err := newTestGateway(srv, nil).SignInWithPassword(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignInWithPassword returned error: %v", err)
	}
	if idToken != "id-123" || refreshToken != "refresh-456" {
		t.Fatalf("unexpected tokens %q %q", idToken, refreshToken)
	}
}

func TestRESTTokenGateway_SignInWithPassword_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "INVALID_PASSWORD"},
		})
	}))
	defer srv.Close()

	_, _, err := newTestGateway(srv, nil).SignInWithPassword(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}

func TestRESTTokenGateway_SendVerificationEmail(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:sendOobCode" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "a@b.com"})
	}))
	defer srv.Close()

	if err := newTestGateway(srv, nil).SendVerificationEmail(context.Background(), "id-123"); err != nil {
		t.Fatalf("SendVerificationEmail returned error: %v", err)
	}
	if got["requestType"] != "VERIFY_EMAIL" || got["idToken"] != "id-123" {
		t.Fatalf("unexpected request body %v", got)
	}
}

func TestRESTTokenGateway_RefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" || r.PostForm.Get("refresh_token") != "refresh-456" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id_token":      "id-789",
			"refresh_token": "refresh-789",
			"user_id":       "u1",
		})
	}))
	defer srv.Close()

	result, err := newTestGateway(nil, srv).RefreshToken(context.Background(), "refresh-456")
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	if result.IDToken != "id-789" || result.UserID != "u1" {
		t.Fatalf("unexpected result %+v", result)
	}
}
