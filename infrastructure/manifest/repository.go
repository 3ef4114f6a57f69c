// Package manifest persists the Unity project manifest
// (Packages/manifest.json).
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/unitypm/domain"
)

const (
	packagesDir  = "Packages"
	manifestFile = "manifest.json"
	fileMode     = 0o644
)

// Repository reads and writes project manifests on disk. Implements
// application.ManifestRepository.
type Repository struct{}

// NewRepository creates a manifest repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Path returns the manifest location for a project root.
func Path(cwd string) string {
	return filepath.Join(cwd, packagesDir, manifestFile)
}

// Load reads and decodes the manifest of the project rooted at cwd.
func (r *Repository) Load(cwd string) (domain.UnityProjectManifest, error) {
	path := Path(cwd)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UnityProjectManifest{}, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	var loaded domain.UnityProjectManifest
	if unmarshalErr := json.Unmarshal(data, &loaded); unmarshalErr != nil {
		return domain.UnityProjectManifest{}, fmt.Errorf("parsing manifest %q: %w", path, unmarshalErr)
	}
	if loaded.Dependencies == nil {
		loaded.Dependencies = map[domain.DomainName]domain.DependencyVersion{}
	}
	return loaded, nil
}

// Save encodes and writes the manifest of the project rooted at cwd,
// using the two-space indentation the editor itself produces.
func (r *Repository) Save(cwd string, manifest domain.UnityProjectManifest) error {
	path := Path(cwd)
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')

	if writeErr := os.WriteFile(path, data, fileMode); writeErr != nil {
		return fmt.Errorf("writing manifest %q: %w", path, writeErr)
	}
	return nil
}
