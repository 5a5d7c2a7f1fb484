package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const verifyTimeout = 10 * time.Second

var (
	// ErrInvalidCredential means Google refused the presented ID token.
	ErrInvalidCredential = errors.New("invalid google credential")
	// ErrAudienceMismatch means the token was issued for another client.
	ErrAudienceMismatch = errors.New("google credential issued for a different client")
)

// Identity is the verified subset of a Google ID token.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// TokenVerifier checks Google ID tokens against the tokeninfo endpoint.
type TokenVerifier struct {
	tokenInfoURL string
	clientID     string
	httpClient   *http.Client
}

// NewTokenVerifier builds a verifier. When clientID is empty the audience
// of the token is not checked.
func NewTokenVerifier(tokenInfoURL, clientID string, httpClient *http.Client) *TokenVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: verifyTimeout}
	}
	return &TokenVerifier{
		tokenInfoURL: tokenInfoURL,
		clientID:     clientID,
		httpClient:   httpClient,
	}
}

type tokenInfo struct {
	Aud              string `json:"aud"`
	Sub              string `json:"sub"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Picture          string `json:"picture"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (v *TokenVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrInvalidCredential
	}

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read tokeninfo response: %w", err)
	}

	var info tokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: tokeninfo status %d", ErrInvalidCredential, resp.StatusCode)
		}
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || info.Error != "" {
		reason := info.ErrorDescription
		if reason == "" {
			reason = info.Error
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredential, reason)
	}

	if v.clientID != "" && info.Aud != v.clientID {
		return nil, ErrAudienceMismatch
	}

	return &Identity{
		Subject: info.Sub,
		Email:   strings.ToLower(strings.TrimSpace(info.Email)),
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
