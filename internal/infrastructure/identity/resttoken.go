package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

const (
	defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	defaultSecureTokenURL     = "https://securetoken.googleapis.com/v1"
	restTimeout               = 10 * time.Second
)

// RESTTokenGateway implements ports.TokenGateway against the provider's
// end-user REST endpoints, which the Admin SDK does not cover.
type RESTTokenGateway struct {
	apiKey             string
	identityToolkitURL string
	secureTokenURL     string
	httpClient         *http.Client
}

var _ ports.TokenGateway = (*RESTTokenGateway)(nil)

func NewRESTTokenGateway(apiKey string) *RESTTokenGateway {
	return &RESTTokenGateway{
		apiKey:             apiKey,
		identityToolkitURL: defaultIdentityToolkitURL,
		secureTokenURL:     defaultSecureTokenURL,
		httpClient:         &http.Client{Timeout: restTimeout},
	}
}

func (g *RESTTokenGateway) SignInWithPassword(ctx context.Context, email, password string) (string, string, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var out struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := g.postJSON(ctx, g.identityToolkitURL+"/accounts:signInWithPassword", payload, &out); err != nil {
		return "", "", err
	}
	return out.IDToken, out.RefreshToken, nil
}

func (g *RESTTokenGateway) SendVerificationEmail(ctx context.Context, idToken string) error {
	payload := map[string]interface{}{
		"requestType": "VERIFY_EMAIL",
		"idToken":     idToken,
	}
	return g.postJSON(ctx, g.identityToolkitURL+"/accounts:sendOobCode", payload, nil)
}

func (g *RESTTokenGateway) RefreshToken(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := fmt.Sprintf("%s/token?key=%s", g.secureTokenURL, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build refresh request: %v", domain.ErrIdentityProvider, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %v", domain.ErrIdentityProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, providerError("refresh token", resp)
	}

	var out ports.RefreshResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode refresh response: %v", domain.ErrIdentityProvider, err)
	}
	return &out, nil
}

func (g *RESTTokenGateway) postJSON(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrIdentityProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+url.QueryEscape(g.apiKey), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrIdentityProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdentityProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providerError(endpoint[strings.LastIndex(endpoint, ":")+1:], resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrIdentityProvider, err)
	}
	return nil
}

// providerError surfaces the provider's error message without leaking the
// full response body into logs.
func providerError(op string, resp *http.Response) error {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &body)

	msg := body.Error.Message
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrIdentityProvider, op, msg)
}
