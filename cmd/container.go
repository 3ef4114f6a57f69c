package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/infrastructure/editor"
	"github.com/rios0rios0/unitypm/infrastructure/manifest"
	"github.com/rios0rios0/unitypm/infrastructure/registry"
	"github.com/rios0rios0/unitypm/infrastructure/upmconfig"
)

func newRegistryClient() *registry.Client {
	return registry.NewClient()
}

func newPackumentSource(client *registry.Client) application.PackumentSource {
	return client
}

func newPackageSearcher(client *registry.Client) application.PackageSearcher {
	return client
}

func newUserAuthenticator(client *registry.Client) application.UserAuthenticator {
	return client
}

func newManifestRepository() application.ManifestRepository {
	return manifest.NewRepository()
}

func newEditorSource() application.EditorVersionSource {
	return editor.NewVersionReader()
}

func newCredentialStore() (application.CredentialStore, error) {
	path, err := upmconfig.DefaultPath()
	if err != nil {
		return nil, err
	}
	return upmconfig.NewStore(path), nil
}

// buildContainer wires the infrastructure implementations into the
// application services via DIG.
func buildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		newRegistryClient,
		newPackumentSource,
		newPackageSearcher,
		newUserAuthenticator,
		newManifestRepository,
		newEditorSource,
		newCredentialStore,
		application.NewResolverService,
		application.NewAddService,
		application.NewRemoveService,
		application.NewViewService,
		application.NewDepsService,
		application.NewSearchService,
		application.NewLoginService,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}
	return container, nil
}

// withContainer builds the container and invokes fn with its
// dependencies resolved.
func withContainer(fn any) error {
	container, err := buildContainer()
	if err != nil {
		return err
	}
	return container.Invoke(fn)
}
