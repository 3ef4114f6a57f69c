// Package testdoubles provides test doubles (spies, stubs, dummies) for
// the application collaborator interfaces. These are hand-crafted
// implementations, no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/rios0rios0/unitypm/domain"
)

// ---------------------------------------------------------------------------
// StubPackumentSource
// ---------------------------------------------------------------------------

// FetchCall records one FetchPackument invocation.
type FetchCall struct {
	Registry domain.RegistryUrl
	Name     domain.DomainName
}

type sourceKey struct {
	registry domain.RegistryUrl
	name     domain.DomainName
}

// StubPackumentSource implements application.PackumentSource from an
// in-memory packument table. Unknown packages fail with
// PackumentNotFoundError, like a real registry.
type StubPackumentSource struct {
	packuments map[sourceKey]domain.Packument
	failures   map[sourceKey]error

	// spy: every fetch performed, in order
	Calls []FetchCall
}

// NewStubPackumentSource creates an empty source.
func NewStubPackumentSource() *StubPackumentSource {
	return &StubPackumentSource{
		packuments: map[sourceKey]domain.Packument{},
		failures:   map[sourceKey]error{},
	}
}

// Put registers a packument served by the given registry.
func (s *StubPackumentSource) Put(registry domain.RegistryUrl, packument domain.Packument) *StubPackumentSource {
	s.packuments[sourceKey{registry: registry, name: packument.Name}] = packument
	return s
}

// FailWith makes fetches of the given package fail with err.
func (s *StubPackumentSource) FailWith(
	registry domain.RegistryUrl,
	name domain.DomainName,
	err error,
) *StubPackumentSource {
	s.failures[sourceKey{registry: registry, name: name}] = err
	return s
}

// FetchPackument implements application.PackumentSource.
func (s *StubPackumentSource) FetchPackument(
	_ context.Context,
	registry domain.Registry,
	name domain.DomainName,
) (domain.Packument, error) {
	s.Calls = append(s.Calls, FetchCall{Registry: registry.URL, Name: name})

	key := sourceKey{registry: registry.URL, name: name}
	if err, failing := s.failures[key]; failing {
		return domain.Packument{}, err
	}
	if packument, found := s.packuments[key]; found {
		return packument, nil
	}
	return domain.Packument{}, &domain.PackumentNotFoundError{Name: name}
}

// ---------------------------------------------------------------------------
// SpyManifestRepository
// ---------------------------------------------------------------------------

// SpyManifestRepository implements application.ManifestRepository over an
// in-memory manifest and records every save.
type SpyManifestRepository struct {
	Manifest domain.UnityProjectManifest
	LoadErr  error
	SaveErr  error

	// spy: manifests passed to Save, in order
	Saved []domain.UnityProjectManifest
}

// NewSpyManifestRepository creates a repository serving the manifest.
func NewSpyManifestRepository(manifest domain.UnityProjectManifest) *SpyManifestRepository {
	return &SpyManifestRepository{Manifest: manifest}
}

// Load implements application.ManifestRepository.
func (r *SpyManifestRepository) Load(string) (domain.UnityProjectManifest, error) {
	if r.LoadErr != nil {
		return domain.UnityProjectManifest{}, r.LoadErr
	}
	return r.Manifest.Clone(), nil
}

// Save implements application.ManifestRepository.
func (r *SpyManifestRepository) Save(_ string, manifest domain.UnityProjectManifest) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saved = append(r.Saved, manifest)
	return nil
}

// ---------------------------------------------------------------------------
// StubEditorSource
// ---------------------------------------------------------------------------

// StubEditorSource implements application.EditorVersionSource with
// canned answers.
type StubEditorSource struct {
	Version    string
	VersionErr error
	Compatible bool
	CompatErr  error
}

// NewStubEditorSource creates a source reporting the given version and
// treating every package as compatible.
func NewStubEditorSource(version string) *StubEditorSource {
	return &StubEditorSource{Version: version, Compatible: true}
}

// ProjectEditorVersion implements application.EditorVersionSource.
func (s *StubEditorSource) ProjectEditorVersion(string) (string, error) {
	if s.VersionErr != nil {
		return "", s.VersionErr
	}
	return s.Version, nil
}

// IsCompatible implements application.EditorVersionSource.
func (s *StubEditorSource) IsCompatible(string, string) (bool, error) {
	if s.CompatErr != nil {
		return false, s.CompatErr
	}
	return s.Compatible, nil
}

// StubAuthenticator implements application.UserAuthenticator with a
// canned token.
type StubAuthenticator struct {
	Token string
	Err   error

	// spy: usernames passed to AddUser, in order
	Usernames []string
}

// AddUser implements application.UserAuthenticator.
func (s *StubAuthenticator) AddUser(
	_ context.Context,
	_ domain.Registry,
	username, _, _ string,
) (string, error) {
	s.Usernames = append(s.Usernames, username)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Token, nil
}

// StoredToken is one credential recorded by SpyCredentialStore.
type StoredToken struct {
	URL        domain.RegistryUrl
	Token      string
	Email      string
	AlwaysAuth bool
}

// SpyCredentialStore implements application.CredentialStore in memory.
type SpyCredentialStore struct {
	Err    error
	Stored []StoredToken
}

// StoreToken implements application.CredentialStore.
func (s *SpyCredentialStore) StoreToken(url domain.RegistryUrl, token, email string, alwaysAuth bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.Stored = append(s.Stored, StoredToken{URL: url, Token: token, Email: email, AlwaysAuth: alwaysAuth})
	return nil
}

// StubSearcher implements application.PackageSearcher with canned hits.
type StubSearcher struct {
	Results []domain.SearchResult
	Err     error

	// spy: queries passed to Search, in order
	Queries []string
}

// Search implements application.PackageSearcher.
func (s *StubSearcher) Search(
	_ context.Context,
	_ domain.Registry,
	query string,
) ([]domain.SearchResult, error) {
	s.Queries = append(s.Queries, query)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Results, nil
}
