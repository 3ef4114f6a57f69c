package application

import (
	"context"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/domain"
)

// DependencyWalker discovers the transitive dependency set of a package
// reference across a primary registry and an optional upstream fallback.
type DependencyWalker struct {
	resolver *ResolverService
	primary  domain.Registry
	upstream *domain.Registry // nil disables upstream fallback
}

// NewDependencyWalker creates a walker over the given registries.
func NewDependencyWalker(
	resolver *ResolverService,
	primary domain.Registry,
	upstream *domain.Registry,
) *DependencyWalker {
	return &DependencyWalker{
		resolver: resolver,
		primary:  primary,
		upstream: upstream,
	}
}

type walkItem struct {
	name      domain.DomainName
	specifier domain.VersionSpecifier
	depth     int
}

// Resolve traverses breadth-first from the root reference. Each package
// is resolved at most once; the first specifier encountered wins, so
// conflicting transitive requests are not re-resolved. Packages already
// satisfied by the manifest are marked internal and not traversed into.
// When deep is false only the root's direct dependencies are considered.
// Traversal order is deterministic for a fixed packument graph.
func (w *DependencyWalker) Resolve(
	ctx context.Context,
	manifest domain.UnityProjectManifest,
	name domain.DomainName,
	specifier domain.VersionSpecifier,
	deep bool,
) ([]domain.ResolvedNode, []domain.UnresolvedNode) {
	var resolved []domain.ResolvedNode
	var unresolved []domain.UnresolvedNode

	visited := map[domain.DomainName]bool{name: true}
	queue := []walkItem{{name: name, specifier: specifier, depth: 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		// The root is being added on purpose, so only dependants below it
		// can be satisfied by what the manifest already declares.
		if item.depth > 0 {
			if node, ok := internalNode(manifest, item); ok {
				resolved = append(resolved, node)
				continue
			}
		}

		if _, isURL := item.specifier.URL(); isURL {
			unresolved = append(unresolved, domain.UnresolvedNode{
				Name:      item.name,
				Specifier: item.specifier,
				Reason:    domain.ErrURLDependency,
			})
			continue
		}

		version, fromUpstream, err := w.resolver.ResolveWithFallback(
			ctx, w.primary, w.upstream, item.name, item.specifier,
		)
		if err != nil {
			logger.Debugf("Failed to resolve %s@%s: %v", item.name, item.specifier, err)
			unresolved = append(unresolved, domain.UnresolvedNode{
				Name:      item.name,
				Specifier: item.specifier,
				Reason:    err,
			})
			continue
		}

		resolved = append(resolved, domain.ResolvedNode{
			Name:     item.name,
			Version:  version.Version,
			Upstream: fromUpstream,
		})

		if item.depth > 0 && !deep {
			continue
		}
		for _, dependency := range sortedDependencies(version) {
			if visited[dependency.name] {
				continue
			}
			visited[dependency.name] = true
			queue = append(queue, walkItem{
				name:      dependency.name,
				specifier: dependency.specifier,
				depth:     item.depth + 1,
			})
		}
	}

	return resolved, unresolved
}

// internalNode checks whether the manifest already satisfies a dependency
// request: any pinned entry satisfies a non-concrete request, and a
// pinned version satisfies a concrete request when it is equal or newer.
func internalNode(manifest domain.UnityProjectManifest, item walkItem) (domain.ResolvedNode, bool) {
	pinned, declared := manifest.Dependencies[item.name]
	if !declared {
		return domain.ResolvedNode{}, false
	}

	requested, concrete := item.specifier.Version()
	pinnedVersion, pinnedIsVersion := pinned.Version()
	if concrete && pinnedIsVersion && pinnedVersion.LessThan(requested) {
		return domain.ResolvedNode{}, false
	}

	node := domain.ResolvedNode{Name: item.name, Internal: true}
	if pinnedIsVersion {
		node.Version = pinnedVersion
	} else if concrete {
		node.Version = requested
	}
	return node, true
}

type dependencyRequest struct {
	name      domain.DomainName
	specifier domain.VersionSpecifier
}

// sortedDependencies returns a packument version's declared dependencies
// ordered by name, so the walk never depends on map iteration order.
func sortedDependencies(version domain.PackumentVersion) []dependencyRequest {
	requests := make([]dependencyRequest, 0, len(version.Dependencies))
	for name, specifier := range version.Dependencies {
		requests = append(requests, dependencyRequest{name: name, specifier: specifier})
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].name < requests[j].name })
	return requests
}
