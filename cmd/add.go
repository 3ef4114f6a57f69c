package cmd

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
)

var (
	addTestable bool
	addForce    bool
)

var addCmd = &cobra.Command{
	Use:   "add <package>[@<version>]...",
	Short: "Add packages to the project manifest",
	Long: `Resolve one or more packages against the configured registries and add
them to the project's Packages/manifest.json.

A reference may pin an exact version ("com.foo@1.2.3"), a dist-tag
("com.foo@latest") or a direct Git/file URL ("com.foo@git+https://...").
Without a suffix the latest version is used. Scoped registries are
maintained so the editor can resolve every package the primary registry
satisfies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addTestable, "test", "t", false,
		"Mark the added packages as testable")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false,
		"Ignore editor-compatibility and unresolved-dependency failures")
	rootCmd.AddCommand(addCmd)
}

func runAdd(command *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	references := make([]domain.PackageReference, 0, len(args))
	for _, arg := range args {
		reference, parseErr := domain.ParsePackageReference(arg)
		if parseErr != nil {
			return parseErr
		}
		references = append(references, reference)
	}

	return withContainer(func(service *application.AddService) error {
		summary, addErr := service.Add(command.Context(), env, references, application.AddOptions{
			Testable: addTestable,
			Force:    addForce,
		})
		if addErr != nil {
			return addErr
		}

		for _, result := range summary.Results {
			switch {
			case result.Previous != nil && !result.Previous.Equal(result.Version):
				logger.Infof("Updated %s: %s -> %s", result.Name, result.Previous, result.Version)
			case result.Previous != nil:
				logger.Infof("%s@%s is already up to date", result.Name, result.Version)
			default:
				logger.Infof("Added %s@%s", result.Name, result.Version)
			}
		}
		for _, failure := range summary.Failures {
			logger.Errorf("Could not add %s: %v", failure.Name, failure.Err)
		}

		if len(summary.Failures) > 0 {
			return fmt.Errorf("failed to add %d package(s)", len(summary.Failures))
		}
		return nil
	})
}
