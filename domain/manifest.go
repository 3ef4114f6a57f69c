package domain

import "sort"

// ScopedRegistry is one entry of the manifest's scoped-registry list: a
// named registry endpoint serving the packages listed in Scopes.
type ScopedRegistry struct {
	Name   string       `json:"name"`
	URL    RegistryUrl  `json:"url"`
	Scopes []DomainName `json:"scopes"`
}

// HasScope reports whether the registry already serves the given package.
func (r ScopedRegistry) HasScope(name DomainName) bool {
	for _, scope := range r.Scopes {
		if scope == name {
			return true
		}
	}
	return false
}

// AddScope returns a copy of the registry with the package added to its
// scope set. Idempotent; scopes stay sorted.
func AddScope(registry ScopedRegistry, name DomainName) ScopedRegistry {
	if registry.HasScope(name) {
		return registry
	}
	scopes := make([]DomainName, 0, len(registry.Scopes)+1)
	scopes = append(scopes, registry.Scopes...)
	scopes = append(scopes, name)
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	registry.Scopes = scopes
	return registry
}

// removeScope returns a copy of the registry without the package.
func removeScope(registry ScopedRegistry, name DomainName) ScopedRegistry {
	scopes := make([]DomainName, 0, len(registry.Scopes))
	for _, scope := range registry.Scopes {
		if scope != name {
			scopes = append(scopes, scope)
		}
	}
	if len(scopes) == 0 {
		scopes = nil
	}
	registry.Scopes = scopes
	return registry
}

// UnityProjectManifest is the document under management
// (Packages/manifest.json). Optional collections are nil when absent; the
// mutation functions below never leave an empty collection present.
type UnityProjectManifest struct {
	Dependencies     map[DomainName]DependencyVersion `json:"dependencies"`
	ScopedRegistries []ScopedRegistry                 `json:"scopedRegistries,omitempty"`
	Testables        []DomainName                     `json:"testables,omitempty"`
}

// EmptyManifest returns a manifest with no dependencies.
func EmptyManifest() UnityProjectManifest {
	return UnityProjectManifest{Dependencies: map[DomainName]DependencyVersion{}}
}

// Clone returns a deep copy. Every mutation operates on a copy so the
// input manifest is never modified in place.
func (m UnityProjectManifest) Clone() UnityProjectManifest {
	clone := UnityProjectManifest{
		Dependencies: make(map[DomainName]DependencyVersion, len(m.Dependencies)),
	}
	for name, version := range m.Dependencies {
		clone.Dependencies[name] = version
	}
	if m.ScopedRegistries != nil {
		clone.ScopedRegistries = make([]ScopedRegistry, len(m.ScopedRegistries))
		for i, registry := range m.ScopedRegistries {
			registry.Scopes = append([]DomainName(nil), registry.Scopes...)
			clone.ScopedRegistries[i] = registry
		}
	}
	if m.Testables != nil {
		clone.Testables = append([]DomainName(nil), m.Testables...)
	}
	return clone
}

// HasDependency reports whether the manifest declares the package.
func (m UnityProjectManifest) HasDependency(name DomainName) bool {
	_, ok := m.Dependencies[name]
	return ok
}

// RemovedDependency records what TryRemoveDependency deleted, with the
// version as it existed before removal.
type RemovedDependency struct {
	Name    DomainName
	Version DependencyVersion
}

// AddDependency returns a manifest with the entry for name inserted or
// overwritten. Always succeeds.
func AddDependency(manifest UnityProjectManifest, name DomainName, version DependencyVersion) UnityProjectManifest {
	result := manifest.Clone()
	if result.Dependencies == nil {
		result.Dependencies = map[DomainName]DependencyVersion{}
	}
	result.Dependencies[name] = version
	return result
}

// TryRemoveDependency removes the entry for name from the dependency map,
// from every scoped registry's scopes (deleting entries whose scope set
// becomes empty, and the whole list if it empties), and from testables
// (deleting the list if it empties). Fails with PackumentNotFoundError
// iff the package is not a declared dependency.
func TryRemoveDependency(manifest UnityProjectManifest, name DomainName) (UnityProjectManifest, RemovedDependency, error) {
	version, ok := manifest.Dependencies[name]
	if !ok {
		return manifest, RemovedDependency{}, &PackumentNotFoundError{Name: name}
	}

	result := manifest.Clone()
	delete(result.Dependencies, name)

	if result.ScopedRegistries != nil {
		kept := make([]ScopedRegistry, 0, len(result.ScopedRegistries))
		for _, registry := range result.ScopedRegistries {
			registry = removeScope(registry, name)
			if len(registry.Scopes) > 0 {
				kept = append(kept, registry)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		result.ScopedRegistries = kept
	}

	if result.Testables != nil {
		kept := make([]DomainName, 0, len(result.Testables))
		for _, testable := range result.Testables {
			if testable != name {
				kept = append(kept, testable)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		result.Testables = kept
	}

	return result, RemovedDependency{Name: name, Version: version}, nil
}

// ScopedRegistryFor returns the scoped-registry entry matching the URL.
func (m UnityProjectManifest) ScopedRegistryFor(url RegistryUrl) (ScopedRegistry, bool) {
	for _, registry := range m.ScopedRegistries {
		if registry.URL == url {
			return registry, true
		}
	}
	return ScopedRegistry{}, false
}

// MapScopedRegistry looks up the entry matching url (fn receives nil when
// there is none), applies fn, and rewrites the list with the result. A
// nil return from fn deletes the entry; an entry left without scopes is
// dropped as well, and the list itself is absent when it empties.
func MapScopedRegistry(
	manifest UnityProjectManifest,
	url RegistryUrl,
	fn func(registry *ScopedRegistry) *ScopedRegistry,
) UnityProjectManifest {
	result := manifest.Clone()

	index := -1
	for i, registry := range result.ScopedRegistries {
		if registry.URL == url {
			index = i
			break
		}
	}

	var replacement *ScopedRegistry
	if index >= 0 {
		existing := result.ScopedRegistries[index]
		replacement = fn(&existing)
	} else {
		replacement = fn(nil)
	}

	switch {
	case replacement == nil && index >= 0:
		result.ScopedRegistries = append(
			result.ScopedRegistries[:index],
			result.ScopedRegistries[index+1:]...,
		)
	case replacement != nil && index >= 0:
		result.ScopedRegistries[index] = *replacement
	case replacement != nil && index < 0:
		result.ScopedRegistries = append(result.ScopedRegistries, *replacement)
	}

	kept := make([]ScopedRegistry, 0, len(result.ScopedRegistries))
	for _, registry := range result.ScopedRegistries {
		if len(registry.Scopes) > 0 {
			kept = append(kept, registry)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	result.ScopedRegistries = kept

	return result
}

// AddTestable returns a manifest with the package marked testable,
// creating the list when absent. Idempotent; the list stays sorted.
func AddTestable(manifest UnityProjectManifest, name DomainName) UnityProjectManifest {
	result := manifest.Clone()
	for _, testable := range result.Testables {
		if testable == name {
			return result
		}
	}
	result.Testables = append(result.Testables, name)
	sort.Slice(result.Testables, func(i, j int) bool {
		return result.Testables[i] < result.Testables[j]
	})
	return result
}
