package domain

// ResolvedNode is one successfully resolved package from a dependency
// walk.
type ResolvedNode struct {
	Name    DomainName
	Version SemanticVersion

	// Upstream is true when the package was satisfied by the upstream
	// fallback registry rather than the primary one.
	Upstream bool

	// Internal is true when the package was already satisfied by the
	// manifest's current dependencies and needs no work.
	Internal bool
}

// UnresolvedNode is one package a dependency walk failed to resolve,
// carrying the original failure so callers can present actionable
// diagnostics.
type UnresolvedNode struct {
	Name      DomainName
	Specifier VersionSpecifier
	Reason    error
}
