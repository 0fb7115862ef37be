package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
)

// RemoteVerifier asks the identity service's validate_session endpoint
type RemoteVerifier struct {
	baseURL string
	client  *http.Client
}

// NewRemoteVerifier creates a verifier calling baseURL/validate_session
func NewRemoteVerifier(baseURL string, client *http.Client) *RemoteVerifier {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteVerifier{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type sessionResponse struct {
	Status string      `json:"status"`
	UserID json.Number `json:"user_id"`
	Name   string      `json:"name"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/validate_session", nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("validate_session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Identity{}, apperror.Unauthorized("session rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("validate_session returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Identity{}, err
	}
	var sr sessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return Identity{}, fmt.Errorf("decode validate_session response: %w", err)
	}
	if sr.Status != "valid" || sr.UserID.String() == "" {
		return Identity{}, apperror.Unauthorized("session not valid")
	}
	return Identity{UserID: sr.UserID.String(), Name: sr.Name}, nil
}
