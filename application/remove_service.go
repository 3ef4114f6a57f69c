package application

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

// RemoveFailure records one package of the batch that could not be
// removed.
type RemoveFailure struct {
	Name domain.DomainName
	Err  error
}

// RemoveSummary is the outcome of one remove invocation.
type RemoveSummary struct {
	Removed  []domain.RemovedDependency
	Failures []RemoveFailure
	Saved    bool
}

// RemoveService applies remove mutations to the project manifest.
type RemoveService struct {
	manifests ManifestRepository
}

// NewRemoveService creates the remove orchestrator.
func NewRemoveService(manifests ManifestRepository) *RemoveService {
	return &RemoveService{manifests: manifests}
}

// Remove deletes each named package from the manifest, its scoped
// registries and its testables. Packages that are not declared are
// reported as failures without aborting their siblings; the manifest is
// persisted once when anything was removed.
func (s *RemoveService) Remove(env config.Env, names []domain.DomainName) (*RemoveSummary, error) {
	manifest, err := s.manifests.Load(env.CWD)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	summary := &RemoveSummary{}
	for _, name := range names {
		next, removed, removeErr := domain.TryRemoveDependency(manifest, name)
		if removeErr != nil {
			logger.Errorf("Failed to remove %q: %v", name, removeErr)
			summary.Failures = append(summary.Failures, RemoveFailure{Name: name, Err: removeErr})
			continue
		}
		manifest = next
		summary.Removed = append(summary.Removed, removed)
	}

	if len(summary.Removed) > 0 {
		if saveErr := s.manifests.Save(env.CWD, manifest); saveErr != nil {
			return summary, fmt.Errorf("saving manifest: %w", saveErr)
		}
		summary.Saved = true
	}

	return summary, nil
}
