package registry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/domain"
)

const defaultUserAgent = "unitypm/1.0"

// Client fetches packuments from npm-protocol registries.
type Client struct {
	http      *http.Client
	breakers  *hostBreakers
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, bypassing the default
// retrying transport. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a registry client with the default transport stack.
func NewClient(opts ...Option) *Client {
	client := &Client{
		http:      newHTTPClient(defaultTimeout, defaultMaxRetries),
		breakers:  newHostBreakers(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// packumentResponse mirrors the registry's JSON packument document.
type packumentResponse struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Homepage    string                     `json:"homepage"`
	DistTags    map[string]string          `json:"dist-tags"`
	Versions    map[string]versionResponse `json:"versions"`
}

type versionResponse struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Unity        string            `json:"unity"`
	Dependencies map[string]string `json:"dependencies"`
}

// FetchPackument retrieves and decodes the packument for a package.
// Implements application.PackumentSource.
func (c *Client) FetchPackument(
	ctx context.Context,
	registry domain.Registry,
	name domain.DomainName,
) (domain.Packument, error) {
	endpoint := fmt.Sprintf("%s/%s", registry.URL, url.PathEscape(name.String()))

	var resp packumentResponse
	if err := c.getJSON(ctx, registry, endpoint, &resp); err != nil {
		if isNotFound(err) {
			return domain.Packument{}, &domain.PackumentNotFoundError{Name: name}
		}
		return domain.Packument{}, err
	}

	packument := decodePackument(name, resp)
	if len(packument.Versions) == 0 && len(resp.Versions) > 0 {
		return domain.Packument{}, &domain.InvalidPackumentDataError{
			Name:   name,
			Reason: "no published version parses as semver",
		}
	}
	return packument, nil
}

// decodePackument maps the wire document onto the domain model, skipping
// versions whose number does not parse.
func decodePackument(name domain.DomainName, resp packumentResponse) domain.Packument {
	packument := domain.Packument{
		Name:        name,
		Description: resp.Description,
		Homepage:    resp.Homepage,
	}

	for number, version := range resp.Versions {
		parsed, err := domain.ParseSemanticVersion(number)
		if err != nil {
			logger.Debugf("Skipping unparsable version %q of %q: %v", number, name, err)
			continue
		}

		dependencies := make(map[domain.DomainName]domain.VersionSpecifier, len(version.Dependencies))
		for depName, depVersion := range version.Dependencies {
			parsedName, nameErr := domain.ParseDomainName(depName)
			if nameErr != nil {
				logger.Debugf("Skipping invalid dependency name %q of %q: %v", depName, name, nameErr)
				continue
			}
			dependencies[parsedName] = domain.ParseVersionSpecifier(depVersion)
		}

		packument.Versions = append(packument.Versions, domain.PackumentVersion{
			Name:         name,
			Version:      parsed,
			TargetEditor: version.Unity,
			Dependencies: dependencies,
		})
	}
	packument.SortVersions()

	if len(resp.DistTags) > 0 {
		packument.DistTags = make(map[string]domain.SemanticVersion, len(resp.DistTags))
		for tag, number := range resp.DistTags {
			parsed, err := domain.ParseSemanticVersion(number)
			if err != nil {
				continue
			}
			packument.DistTags[tag] = parsed
		}
	}

	return packument
}

// statusError marks authoritative non-200 registry responses internally;
// callers see the typed domain errors instead.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.url)
}

func isNotFound(err error) bool {
	status, ok := err.(*statusError)
	return ok && status.code == http.StatusNotFound
}

// getJSON performs an authenticated GET through the per-host circuit
// breaker and decodes the response body.
func (c *Client) getJSON(ctx context.Context, registry domain.Registry, endpoint string, out any) error {
	breaker := c.breakers.get(registry.URL.Host())
	if !breaker.Ready() {
		return &domain.RegistryFetchError{
			Registry: registry.URL,
			Cause:    fmt.Errorf("circuit breaker open for %s", registry.URL.Host()),
		}
	}

	// Authoritative responses (404 and friends) are captured outside the
	// breaker call so they never count as upstream failures.
	var body []byte
	var authoritative *statusError
	err := breaker.Call(func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		applyAuth(req, registry)

		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return doErr
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
			authoritative = &statusError{code: resp.StatusCode, url: endpoint}
			return nil
		}

		body, reqErr = io.ReadAll(resp.Body)
		return reqErr
	}, 0)

	if err != nil {
		return &domain.RegistryFetchError{Registry: registry.URL, Cause: err}
	}
	if authoritative != nil {
		return authoritative
	}

	if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
		return &domain.RegistryFetchError{
			Registry: registry.URL,
			Cause:    fmt.Errorf("decoding response: %w", decodeErr),
		}
	}
	return nil
}

// applyAuth attaches the registry credentials to a request.
func applyAuth(req *http.Request, registry domain.Registry) {
	auth := registry.Auth
	if auth == nil {
		return
	}
	switch {
	case auth.Token != "":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	case auth.Username != "":
		credentials := base64.StdEncoding.EncodeToString(
			[]byte(auth.Username + ":" + auth.Password),
		)
		req.Header.Set("Authorization", "Basic "+credentials)
	}
}
