package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the sentinel wrapped by every "package does not exist"
// failure, in the registry or in the manifest.
var ErrNotFound = errors.New("package not found")

// ErrVersionNotFound is the sentinel wrapped by "package exists but the
// requested version does not" failures.
var ErrVersionNotFound = errors.New("version not found")

// ErrURLDependency marks a transitive dependency declared as a direct
// package URL, which cannot be resolved against a registry.
var ErrURLDependency = errors.New("url dependency cannot be resolved against a registry")

// PackumentNotFoundError reports that a registry has no packument for a
// package, or that a manifest has no dependency entry for it.
type PackumentNotFoundError struct {
	Name DomainName
}

func (e *PackumentNotFoundError) Error() string {
	return fmt.Sprintf("package %q not found", e.Name)
}

func (e *PackumentNotFoundError) Unwrap() error {
	return ErrNotFound
}

// VersionNotFoundError reports that a packument exists but no published
// version matches the request. AvailableVersions is ordered newest-first
// so callers can suggest installable alternatives directly.
type VersionNotFoundError struct {
	Name              DomainName
	RequestedVersion  string
	AvailableVersions []SemanticVersion
}

func (e *VersionNotFoundError) Error() string {
	available := make([]string, len(e.AvailableVersions))
	for i, v := range e.AvailableVersions {
		available[i] = v.String()
	}
	return fmt.Sprintf(
		"version %q of package %q not found (available: %s)",
		e.RequestedVersion, e.Name, strings.Join(available, ", "),
	)
}

func (e *VersionNotFoundError) Unwrap() error {
	return ErrVersionNotFound
}

// RegistryFetchError reports a transport-level failure talking to a
// registry, distinct from an authoritative "not found" response.
type RegistryFetchError struct {
	Registry RegistryUrl
	Cause    error
}

func (e *RegistryFetchError) Error() string {
	return fmt.Sprintf("failed to fetch from registry %s: %v", e.Registry, e.Cause)
}

func (e *RegistryFetchError) Unwrap() error {
	return e.Cause
}

// EditorIncompatibleError reports that a resolved package version targets
// a newer editor than the project uses.
type EditorIncompatibleError struct {
	Name          DomainName
	Version       SemanticVersion
	TargetEditor  string
	ProjectEditor string
}

func (e *EditorIncompatibleError) Error() string {
	return fmt.Sprintf(
		"package %s@%s requires editor %s but the project uses %s",
		e.Name, e.Version, e.TargetEditor, e.ProjectEditor,
	)
}

// InvalidPackumentDataError reports a packument whose metadata could not
// be interpreted (e.g. an unparsable target editor version).
type InvalidPackumentDataError struct {
	Name   DomainName
	Reason string
}

func (e *InvalidPackumentDataError) Error() string {
	return fmt.Sprintf("invalid packument data for %q: %s", e.Name, e.Reason)
}

// UnresolvedDependencyError reports that the dependency walk for a
// package left nodes unresolved and the caller did not force the add.
type UnresolvedDependencyError struct {
	Name       DomainName
	Unresolved []UnresolvedNode
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("%d dependencies of %q could not be resolved", len(e.Unresolved), e.Name)
}
