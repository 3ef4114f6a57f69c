package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rios0rios0/unitypm/domain"
)

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// AddUser authenticates against the registry's couchdb-style user
// endpoint and returns the granted token.
func (c *Client) AddUser(
	ctx context.Context,
	registry domain.Registry,
	username, password, email string,
) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/-/user/org.couchdb.user:%s", registry.URL, url.PathEscape(username),
	)

	payload, err := json.Marshal(loginRequest{Name: username, Password: password, Email: email})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.RegistryFetchError{Registry: registry.URL, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("registry %s rejected the credentials", registry.URL)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &domain.RegistryFetchError{
			Registry: registry.URL,
			Cause:    fmt.Errorf("unexpected status %d from login", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.RegistryFetchError{Registry: registry.URL, Cause: err}
	}

	var decoded loginResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &domain.RegistryFetchError{
			Registry: registry.URL,
			Cause:    fmt.Errorf("decoding login response: %w", err),
		}
	}
	if decoded.Token == "" {
		return "", fmt.Errorf("registry %s returned no token", registry.URL)
	}
	return decoded.Token, nil
}
