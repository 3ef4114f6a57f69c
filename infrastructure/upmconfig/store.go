package upmconfig

import (
	"github.com/rios0rios0/unitypm/domain"
)

// Store persists credentials into the user's .upmconfig.toml. Implements
// application.CredentialStore.
type Store struct {
	path string
}

// NewStore creates a credential store backed by the config at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// StoreToken records a token credential, merged into the existing file.
func (s *Store) StoreToken(url domain.RegistryUrl, token, email string, alwaysAuth bool) error {
	file, err := Load(s.path)
	if err != nil {
		return err
	}
	file.SetToken(url, token, email, alwaysAuth)
	return Save(s.path, file)
}
