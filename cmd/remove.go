package cmd

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
)

var removeCmd = &cobra.Command{
	Use:     "remove <package>...",
	Aliases: []string{"rm"},
	Short:   "Remove packages from the project manifest",
	Long: `Remove one or more packages from the project's Packages/manifest.json,
together with their scoped-registry scopes and testable markers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	names := make([]domain.DomainName, 0, len(args))
	for _, arg := range args {
		name, parseErr := domain.ParseDomainName(arg)
		if parseErr != nil {
			return parseErr
		}
		names = append(names, name)
	}

	return withContainer(func(service *application.RemoveService) error {
		summary, removeErr := service.Remove(env, names)
		if removeErr != nil {
			return removeErr
		}

		for _, removed := range summary.Removed {
			logger.Infof("Removed %s@%s", removed.Name, removed.Version)
		}
		for _, failure := range summary.Failures {
			logger.Errorf("Could not remove %s: %v", failure.Name, failure.Err)
		}

		if len(summary.Failures) > 0 {
			return fmt.Errorf("failed to remove %d package(s)", len(summary.Failures))
		}
		return nil
	})
}
