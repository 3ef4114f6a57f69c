// Package upmconfig reads and writes the user's .upmconfig.toml, the
// file the editor itself uses for registry credentials.
package upmconfig

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rios0rios0/unitypm/domain"
)

const (
	fileName = ".upmconfig.toml"
	fileMode = 0o600

	// pathOverrideVar mirrors the editor's own override variable.
	pathOverrideVar = "UPM_USER_CONFIG_PATH"
)

// Entry is the credential block for one registry, keyed by its URL.
type Entry struct {
	Token      string `toml:"token,omitempty"`
	BasicAuth  string `toml:"_auth,omitempty"` // base64("user:password")
	Email      string `toml:"email,omitempty"`
	AlwaysAuth bool   `toml:"alwaysAuth,omitempty"`
}

// File is the decoded .upmconfig.toml document.
type File struct {
	NpmAuth map[string]Entry `toml:"npmAuth"`
}

// DefaultPath returns the user-level config location, honoring the
// editor's UPM_USER_CONFIG_PATH override.
func DefaultPath() (string, error) {
	if override := os.Getenv(pathOverrideVar); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// Load decodes the config at path. A missing file yields an empty config.
func Load(path string) (*File, error) {
	decoded := &File{NpmAuth: map[string]Entry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return decoded, nil
		}
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if _, decodeErr := toml.Decode(string(data), decoded); decodeErr != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, decodeErr)
	}
	if decoded.NpmAuth == nil {
		decoded.NpmAuth = map[string]Entry{}
	}
	return decoded, nil
}

// Save encodes and writes the config to path.
func Save(path string, file *File) error {
	var builder strings.Builder
	if err := toml.NewEncoder(&builder).Encode(file); err != nil {
		return fmt.Errorf("encoding upmconfig: %w", err)
	}
	if err := os.WriteFile(path, []byte(builder.String()), fileMode); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// AuthFor returns the credentials recorded for a registry, or nil. Keys
// are matched after registry-URL normalization so trailing slashes and
// case differences do not matter.
func (f *File) AuthFor(url domain.RegistryUrl) *domain.AuthInfo {
	for rawKey, entry := range f.NpmAuth {
		key, err := domain.ParseRegistryUrl(rawKey)
		if err != nil || key != url {
			continue
		}

		auth := &domain.AuthInfo{
			Token:      entry.Token,
			Email:      entry.Email,
			AlwaysAuth: entry.AlwaysAuth,
		}
		if entry.BasicAuth != "" {
			if decoded, decodeErr := base64.StdEncoding.DecodeString(entry.BasicAuth); decodeErr == nil {
				if username, password, found := strings.Cut(string(decoded), ":"); found {
					auth.Username = username
					auth.Password = password
				}
			}
		}
		return auth
	}
	return nil
}

// SetToken records a token credential for a registry, replacing any
// previous entry for the same URL.
func (f *File) SetToken(url domain.RegistryUrl, token, email string, alwaysAuth bool) {
	if f.NpmAuth == nil {
		f.NpmAuth = map[string]Entry{}
	}
	f.NpmAuth[url.String()] = Entry{
		Token:      token,
		Email:      email,
		AlwaysAuth: alwaysAuth,
	}
}
