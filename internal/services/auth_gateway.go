package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GatewayAuthenticator delegates credential checks to an external login
// gateway (an OMERO-style JSON endpoint).
type GatewayAuthenticator struct {
	url        string
	httpClient *http.Client
}

// NewGatewayAuthenticator creates a GatewayAuthenticator.
func NewGatewayAuthenticator(url string) *GatewayAuthenticator {
	return &GatewayAuthenticator{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type gatewayLoginResponse struct {
	Success   bool   `json:"success"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (a *GatewayAuthenticator) Authenticate(username, password string) (*AccountInfo, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway request: %w", err)
	}

	resp, err := a.httpClient.Post(a.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("auth gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth gateway returned status %d", resp.StatusCode)
	}

	var result gatewayLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if !result.Success {
		return nil, ErrInvalidCredentials
	}

	info := &AccountInfo{
		Username:  result.Username,
		FirstName: result.FirstName,
		LastName:  result.LastName,
	}
	if info.Username == "" {
		info.Username = username
	}

	return info, nil
}
