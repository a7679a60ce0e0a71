package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

const defaultIdentityBaseURL = "https://identitytoolkit.googleapis.com/v1"

// IdentityClient calls the Identity Toolkit REST API for operations the
// Admin SDK does not expose, namely email/password verification.
type IdentityClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewIdentityClient(apiKey string) *IdentityClient {
	return &IdentityClient{
		apiKey:  apiKey,
		baseURL: defaultIdentityBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewIdentityClientWithBaseURL is used by tests to point at a stub server.
func NewIdentityClientWithBaseURL(apiKey, baseURL string) *IdentityClient {
	c := NewIdentityClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// SignInSession is the credential material returned by a password sign-in.
type SignInSession struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    string
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword verifies the credentials and returns a session.
// Credential failures are mapped to the domain sentinel errors so handlers
// can distinguish "not found" from "wrong credential".
func (c *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*SignInSession, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ie identityError
		if err := json.Unmarshal(raw, &ie); err == nil {
			return nil, mapIdentityError(ie.Error.Message)
		}
		return nil, fmt.Errorf("identity toolkit returned status %d: %s", resp.StatusCode, string(raw))
	}

	var sr signInResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &SignInSession{
		UID:          sr.LocalID,
		IDToken:      sr.IDToken,
		RefreshToken: sr.RefreshToken,
		ExpiresIn:    sr.ExpiresIn,
	}, nil
}

func mapIdentityError(message string) error {
	switch {
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"):
		return domain.ErrUserNotFound
	case strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"):
		return domain.ErrWrongCredential
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return domain.ErrEmailTaken
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return domain.ErrWeakPassword
	default:
		return fmt.Errorf("identity toolkit error: %s", message)
	}
}
