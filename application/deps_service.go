package application

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

// DepsReport is the outcome of one dependency walk.
type DepsReport struct {
	Resolved   []domain.ResolvedNode
	Unresolved []domain.UnresolvedNode
}

// DepsService walks a package's dependency tree against the configured
// registries. The project manifest, when one exists, marks which
// dependencies the project already satisfies.
type DepsService struct {
	resolver  *ResolverService
	manifests ManifestRepository
}

// NewDepsService creates the deps orchestrator.
func NewDepsService(resolver *ResolverService, manifests ManifestRepository) *DepsService {
	return &DepsService{resolver: resolver, manifests: manifests}
}

// Deps resolves the dependency closure of one package reference. Running
// outside a project is fine: the walk then starts from an empty manifest.
func (s *DepsService) Deps(
	ctx context.Context,
	env config.Env,
	reference domain.PackageReference,
	deep bool,
) (*DepsReport, error) {
	manifest, err := s.manifests.Load(env.CWD)
	if err != nil {
		logger.Debugf("No project manifest, walking without one: %v", err)
		manifest = domain.EmptyManifest()
	}

	walker := NewDependencyWalker(s.resolver, env.PrimaryRegistry, env.UpstreamOrNil())
	resolved, unresolved := walker.Resolve(ctx, manifest, reference.Name, reference.Specifier, deep)
	return &DepsReport{Resolved: resolved, Unresolved: unresolved}, nil
}
