package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
)

var viewCmd = &cobra.Command{
	Use:     "view <package>",
	Aliases: []string{"info", "show"},
	Short:   "Show package metadata from the registry",
	Long: `Fetch and display a package's registry metadata: description, published
versions, dist-tags and the dependencies of the latest version.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(command *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	name, err := domain.ParseDomainName(args[0])
	if err != nil {
		return err
	}

	return withContainer(func(service *application.ViewService) error {
		result, viewErr := service.View(command.Context(), env, name)
		if viewErr != nil {
			return viewErr
		}

		packument := result.Packument
		fmt.Printf("%s\n", packument.Name)
		if packument.Description != "" {
			fmt.Printf("%s\n", packument.Description)
		}
		if packument.Homepage != "" {
			fmt.Printf("homepage: %s\n", packument.Homepage)
		}
		if result.Upstream {
			fmt.Printf("registry: %s (upstream)\n", env.UpstreamRegistry.URL)
		} else {
			fmt.Printf("registry: %s\n", env.PrimaryRegistry.URL)
		}
		fmt.Println()

		if latest, ok := packument.LatestVersion(); ok {
			fmt.Printf("latest: %s\n", latest.Version)
			if latest.TargetEditor != "" {
				fmt.Printf("unity: %s\n", latest.TargetEditor)
			}
			printDependencies(latest)
		}

		if versions := packument.AvailableVersions(); len(versions) > 0 {
			fmt.Println("\nversions:")
			for _, version := range versions {
				fmt.Printf("  %s\n", version)
			}
		}

		if len(packument.DistTags) > 0 {
			fmt.Println("\ndist-tags:")
			tags := make([]string, 0, len(packument.DistTags))
			for tag := range packument.DistTags {
				tags = append(tags, tag)
			}
			sort.Strings(tags)
			for _, tag := range tags {
				fmt.Printf("  %s: %s\n", tag, packument.DistTags[tag])
			}
		}
		return nil
	})
}

func printDependencies(version domain.PackumentVersion) {
	if len(version.Dependencies) == 0 {
		return
	}
	names := make([]domain.DomainName, 0, len(version.Dependencies))
	for name := range version.Dependencies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	fmt.Println("\ndependencies:")
	for _, name := range names {
		fmt.Printf("  %s@%s\n", name, version.Dependencies[name])
	}
}
