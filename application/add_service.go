package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

// ManifestRepository abstracts loading and persisting the project
// manifest (Packages/manifest.json).
type ManifestRepository interface {
	// Load reads the manifest of the project rooted at cwd.
	Load(cwd string) (domain.UnityProjectManifest, error)

	// Save writes the manifest of the project rooted at cwd.
	Save(cwd string, manifest domain.UnityProjectManifest) error
}

// EditorVersionSource reads the editor release a project targets.
type EditorVersionSource interface {
	// ProjectEditorVersion returns the project's editor version string
	// (e.g. "2021.3.1f1"), or empty when it cannot be determined.
	ProjectEditorVersion(cwd string) (string, error)

	// IsCompatible reports whether a project editor version satisfies a
	// packument's target editor requirement ("MAJOR.MINOR").
	IsCompatible(projectVersion, targetVersion string) (bool, error)
}

// AddOptions carries the per-invocation flags of the add command.
type AddOptions struct {
	// Testable marks the added packages in the manifest's testables list.
	Testable bool

	// Force overrides editor-compatibility and unresolved-dependency
	// failures, and persists whatever part of the batch succeeded.
	Force bool
}

// AddResult records one successfully added package.
type AddResult struct {
	Name     domain.DomainName
	Version  domain.DependencyVersion
	Previous *domain.DependencyVersion // nil when newly added
	Upstream bool
}

// AddFailure records one package of the batch that could not be added.
type AddFailure struct {
	Name domain.DomainName
	Err  error
}

// AddSummary is the outcome of one add invocation.
type AddSummary struct {
	Results  []AddResult
	Failures []AddFailure
	Saved    bool
}

// AddService resolves requested packages and applies the corresponding
// manifest mutations: dependency entries, scoped-registry scopes and
// testable markers.
type AddService struct {
	resolver  *ResolverService
	manifests ManifestRepository
	editors   EditorVersionSource
}

// NewAddService creates the add orchestrator.
func NewAddService(
	resolver *ResolverService,
	manifests ManifestRepository,
	editors EditorVersionSource,
) *AddService {
	return &AddService{
		resolver:  resolver,
		manifests: manifests,
		editors:   editors,
	}
}

// Add processes the batch of requested references against one manifest
// snapshot. A failed reference never aborts its siblings; the manifest is
// persisted once at the end, and only when every reference succeeded
// unless Force chose the best-effort policy.
func (s *AddService) Add(
	ctx context.Context,
	env config.Env,
	references []domain.PackageReference,
	opts AddOptions,
) (*AddSummary, error) {
	manifest, err := s.manifests.Load(env.CWD)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	editorVersion, editorErr := s.editors.ProjectEditorVersion(env.CWD)
	if editorErr != nil {
		logger.Debugf("Could not determine project editor version: %v", editorErr)
		editorVersion = ""
	}

	summary := &AddSummary{}
	walker := NewDependencyWalker(s.resolver, env.PrimaryRegistry, env.UpstreamOrNil())
	dirty := false

	for _, reference := range references {
		next, result, addErr := s.addOne(ctx, env, walker, manifest, reference, editorVersion, opts)
		if addErr != nil {
			logger.Errorf("Failed to add %q: %v", reference.Name, addErr)
			summary.Failures = append(summary.Failures, AddFailure{Name: reference.Name, Err: addErr})
			continue
		}
		if result.Previous == nil || !result.Previous.Equal(result.Version) {
			dirty = true
		}
		if !manifestEquivalent(manifest, next) {
			dirty = true
		}
		manifest = next
		summary.Results = append(summary.Results, *result)
	}

	if dirty && (len(summary.Failures) == 0 || opts.Force) {
		if saveErr := s.manifests.Save(env.CWD, manifest); saveErr != nil {
			return summary, fmt.Errorf("saving manifest: %w", saveErr)
		}
		summary.Saved = true
	}

	return summary, nil
}

// addOne resolves a single reference and returns the mutated manifest.
func (s *AddService) addOne(
	ctx context.Context,
	env config.Env,
	walker *DependencyWalker,
	manifest domain.UnityProjectManifest,
	reference domain.PackageReference,
	editorVersion string,
	opts AddOptions,
) (domain.UnityProjectManifest, *AddResult, error) {
	previous := previousVersion(manifest, reference.Name)

	// Direct package references bypass registry resolution entirely.
	if url, isURL := reference.Specifier.URL(); isURL {
		next := domain.AddDependency(manifest, reference.Name, domain.URLDependency(url))
		if opts.Testable {
			next = domain.AddTestable(next, reference.Name)
		}
		return next, &AddResult{
			Name:     reference.Name,
			Version:  domain.URLDependency(url),
			Previous: previous,
		}, nil
	}

	version, fromUpstream, err := s.resolver.ResolveWithFallback(
		ctx, env.PrimaryRegistry, env.UpstreamOrNil(), reference.Name, reference.Specifier,
	)
	if err != nil {
		return manifest, nil, err
	}

	if compatErr := s.checkEditor(reference.Name, version, editorVersion, opts.Force); compatErr != nil {
		return manifest, nil, compatErr
	}

	resolved, unresolved := walker.Resolve(ctx, manifest, reference.Name, reference.Specifier, true)
	if len(unresolved) > 0 {
		for _, node := range unresolved {
			logger.Warnf("Unresolved dependency %s@%s: %v", node.Name, node.Specifier, node.Reason)
		}
		if !opts.Force {
			return manifest, nil, &domain.UnresolvedDependencyError{
				Name:       reference.Name,
				Unresolved: unresolved,
			}
		}
	}

	next := domain.AddDependency(manifest, reference.Name, domain.VersionDependency(version.Version))
	next = s.recordScopes(env, next, resolved)
	if opts.Testable {
		next = domain.AddTestable(next, reference.Name)
	}

	return next, &AddResult{
		Name:     reference.Name,
		Version:  domain.VersionDependency(version.Version),
		Previous: previous,
		Upstream: fromUpstream,
	}, nil
}

// checkEditor enforces the editor-compatibility gate unless forced.
func (s *AddService) checkEditor(
	name domain.DomainName,
	version domain.PackumentVersion,
	editorVersion string,
	force bool,
) error {
	if version.TargetEditor == "" || editorVersion == "" {
		return nil
	}
	compatible, err := s.editors.IsCompatible(editorVersion, version.TargetEditor)
	if err != nil {
		logger.Debugf("Could not compare editor versions: %v", err)
		return nil
	}
	if compatible || force {
		return nil
	}
	return &domain.EditorIncompatibleError{
		Name:          name,
		Version:       version.Version,
		TargetEditor:  version.TargetEditor,
		ProjectEditor: editorVersion,
	}
}

// recordScopes adds every package satisfied by the primary registry to
// that registry's scoped-registry entry, creating the entry on demand.
// Upstream and internal nodes need no scope.
func (s *AddService) recordScopes(
	env config.Env,
	manifest domain.UnityProjectManifest,
	resolved []domain.ResolvedNode,
) domain.UnityProjectManifest {
	if env.PrimaryRegistry.URL == env.UpstreamRegistry.URL {
		return manifest
	}

	for _, node := range resolved {
		if node.Upstream || node.Internal {
			continue
		}
		name := node.Name
		manifest = domain.MapScopedRegistry(manifest, env.PrimaryRegistry.URL,
			func(registry *domain.ScopedRegistry) *domain.ScopedRegistry {
				entry := domain.ScopedRegistry{
					Name: env.PrimaryRegistry.URL.Host(),
					URL:  env.PrimaryRegistry.URL,
				}
				if registry != nil {
					entry = *registry
				}
				entry = domain.AddScope(entry, name)
				return &entry
			})
	}
	return manifest
}

func previousVersion(manifest domain.UnityProjectManifest, name domain.DomainName) *domain.DependencyVersion {
	if version, ok := manifest.Dependencies[name]; ok {
		previous := version
		return &previous
	}
	return nil
}

// manifestEquivalent reports whether two manifests would persist the same
// content.
func manifestEquivalent(left, right domain.UnityProjectManifest) bool {
	if len(left.Dependencies) != len(right.Dependencies) {
		return false
	}
	for name, version := range left.Dependencies {
		other, ok := right.Dependencies[name]
		if !ok || !other.Equal(version) {
			return false
		}
	}
	if len(left.ScopedRegistries) != len(right.ScopedRegistries) {
		return false
	}
	for i, registry := range left.ScopedRegistries {
		other := right.ScopedRegistries[i]
		if registry.Name != other.Name || registry.URL != other.URL {
			return false
		}
		if len(registry.Scopes) != len(other.Scopes) {
			return false
		}
		for j, scope := range registry.Scopes {
			if other.Scopes[j] != scope {
				return false
			}
		}
	}
	if len(left.Testables) != len(right.Testables) {
		return false
	}
	for i, testable := range left.Testables {
		if right.Testables[i] != testable {
			return false
		}
	}
	return true
}
