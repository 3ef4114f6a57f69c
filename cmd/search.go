package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search the primary registry for packages",
	Args:    cobra.ExactArgs(1),
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(command *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	return withContainer(func(service *application.SearchService) error {
		results, searchErr := service.Search(command.Context(), env, args[0])
		if searchErr != nil {
			return searchErr
		}
		if len(results) == 0 {
			fmt.Printf("No packages matching %q in %s\n", args[0], env.PrimaryRegistry.URL)
			return nil
		}

		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "NAME\tVERSION\tDATE\tDESCRIPTION")
		for _, result := range results {
			date := ""
			if !result.Date.IsZero() {
				date = result.Date.Format("2006-01-02")
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
				result.Name, result.Version, date, result.Description)
		}
		return writer.Flush()
	})
}
