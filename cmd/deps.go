package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
)

var depsDeep bool

var depsCmd = &cobra.Command{
	Use:     "deps <package>[@<version>]",
	Aliases: []string{"dep"},
	Short:   "Show a package's dependencies",
	Long: `Resolve and display the dependencies of a package. By default only the
direct dependencies are shown; --deep walks the whole transitive
closure. Dependencies the current project already satisfies are marked
as internal.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().BoolVarP(&depsDeep, "deep", "d", false,
		"Resolve the full transitive dependency closure")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(command *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	reference, err := domain.ParsePackageReference(args[0])
	if err != nil {
		return err
	}

	return withContainer(func(service *application.DepsService) error {
		report, depsErr := service.Deps(command.Context(), env, reference, depsDeep)
		if depsErr != nil {
			return depsErr
		}

		for _, node := range report.Resolved {
			fmt.Printf("%s@%s%s\n", node.Name, node.Version, nodeMarker(node))
		}
		for _, node := range report.Unresolved {
			fmt.Printf("%s@%s (unresolved: %v)\n", node.Name, node.Specifier, node.Reason)
		}

		if len(report.Unresolved) > 0 {
			return fmt.Errorf("%d dependencies could not be resolved", len(report.Unresolved))
		}
		return nil
	})
}

func nodeMarker(node domain.ResolvedNode) string {
	switch {
	case node.Internal:
		return " (internal)"
	case node.Upstream:
		return " (upstream)"
	default:
		return ""
	}
}
