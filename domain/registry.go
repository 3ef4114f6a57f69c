package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// RegistryUrl is a validated, normalized absolute URL identifying a
// package registry. Normalization lowercases the scheme and host and
// strips any trailing slash so the value is usable as a map key.
type RegistryUrl string

// ParseRegistryUrl validates and normalizes a registry URL.
func ParseRegistryUrl(raw string) (RegistryUrl, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid registry url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("registry url %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("registry url %q must be absolute", raw)
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.Fragment = ""
	parsed.RawQuery = ""
	return RegistryUrl(parsed.String()), nil
}

func (u RegistryUrl) String() string {
	return string(u)
}

// Host returns the host portion of the registry URL.
func (u RegistryUrl) Host() string {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return string(u)
	}
	return parsed.Host
}

// AuthInfo carries the credentials used against a registry. Either Token
// or Username/Password is set.
type AuthInfo struct {
	Token      string
	Username   string
	Password   string
	Email      string
	AlwaysAuth bool
}

// Registry identifies one upstream package registry and its optional
// credentials. Immutable value.
type Registry struct {
	URL  RegistryUrl
	Auth *AuthInfo
}
