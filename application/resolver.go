package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/unitypm/domain"
)

// PackumentSource fetches registry metadata documents. Implemented by the
// npm-protocol client in infrastructure/registry; tests use the stub in
// test/doubles.go.
type PackumentSource interface {
	// FetchPackument retrieves the packument for a package, failing with
	// domain.PackumentNotFoundError when the registry does not know the
	// package and domain.RegistryFetchError on transport failures.
	FetchPackument(ctx context.Context, registry domain.Registry, name domain.DomainName) (domain.Packument, error)
}

// ResolverService selects the packument version matching a version
// specifier against one registry. It performs no fallback itself; see
// ResolveWithFallback.
type ResolverService struct {
	source PackumentSource
}

// NewResolverService creates a resolver backed by the given source.
func NewResolverService(source PackumentSource) *ResolverService {
	return &ResolverService{source: source}
}

// Resolve fetches the packument for name and selects the version matching
// the specifier. "latest" resolves to the "latest" dist-tag when present,
// otherwise the highest stable version; prereleases are only selected
// when explicitly requested. Fails with domain.PackumentNotFoundError,
// domain.VersionNotFoundError or domain.RegistryFetchError.
func (s *ResolverService) Resolve(
	ctx context.Context,
	registry domain.Registry,
	name domain.DomainName,
	specifier domain.VersionSpecifier,
) (domain.PackumentVersion, domain.Packument, error) {
	if _, isURL := specifier.URL(); isURL {
		return domain.PackumentVersion{}, domain.Packument{},
			fmt.Errorf("resolving %q: %w", name, domain.ErrURLDependency)
	}

	packument, err := s.source.FetchPackument(ctx, registry, name)
	if err != nil {
		return domain.PackumentVersion{}, domain.Packument{}, err
	}

	if version, isVersion := specifier.Version(); isVersion {
		if found, ok := packument.FindVersion(version); ok {
			return found, packument, nil
		}
		return domain.PackumentVersion{}, packument, &domain.VersionNotFoundError{
			Name:              name,
			RequestedVersion:  version.String(),
			AvailableVersions: packument.AvailableVersions(),
		}
	}

	if tag, isTag := specifier.Tag(); isTag {
		if tagged, ok := packument.DistTags[tag]; ok {
			if found, okVersion := packument.FindVersion(tagged); okVersion {
				return found, packument, nil
			}
		}
		return domain.PackumentVersion{}, packument, &domain.VersionNotFoundError{
			Name:              name,
			RequestedVersion:  tag,
			AvailableVersions: packument.AvailableVersions(),
		}
	}

	if latest, ok := packument.LatestVersion(); ok {
		return latest, packument, nil
	}
	return domain.PackumentVersion{}, packument, &domain.VersionNotFoundError{
		Name:             name,
		RequestedVersion: "latest",
	}
}

// ResolveWithFallback resolves against the primary registry first and, on
// any failure, retries against the upstream registry when one is given.
// The returned flag reports whether the upstream satisfied the request.
func (s *ResolverService) ResolveWithFallback(
	ctx context.Context,
	primary domain.Registry,
	upstream *domain.Registry,
	name domain.DomainName,
	specifier domain.VersionSpecifier,
) (domain.PackumentVersion, bool, error) {
	version, _, primaryErr := s.Resolve(ctx, primary, name, specifier)
	if primaryErr == nil {
		return version, false, nil
	}
	if upstream == nil {
		return domain.PackumentVersion{}, false, primaryErr
	}

	version, _, upstreamErr := s.Resolve(ctx, *upstream, name, specifier)
	if upstreamErr == nil {
		return version, true, nil
	}

	return domain.PackumentVersion{}, false, preferActionable(primaryErr, upstreamErr)
}

// preferActionable picks the failure to surface when both registries
// failed: a VersionNotFoundError beats a plain not-found because it
// carries the installable alternatives.
func preferActionable(primaryErr, upstreamErr error) error {
	var versionNotFound *domain.VersionNotFoundError
	if errors.As(primaryErr, &versionNotFound) {
		return primaryErr
	}
	if errors.As(upstreamErr, &versionNotFound) {
		return upstreamErr
	}
	return primaryErr
}
