package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/application"
)

var (
	loginUsername   string
	loginPassword   string
	loginEmail      string
	loginAlwaysAuth bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the primary registry",
	Long: `Authenticate against the primary registry and store the granted token
in the user's .upmconfig.toml, where the editor itself also reads it.
Use --registry to log in to a different registry.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Registry username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Registry password")
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email address")
	loginCmd.Flags().BoolVar(&loginAlwaysAuth, "always-auth", false,
		"Send credentials on every request, not only for protected routes")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(command *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	return withContainer(func(service *application.LoginService) error {
		_, loginErr := service.Login(command.Context(), env.PrimaryRegistry, application.LoginOptions{
			Username:   loginUsername,
			Password:   loginPassword,
			Email:      loginEmail,
			AlwaysAuth: loginAlwaysAuth,
		})
		if loginErr != nil {
			return loginErr
		}
		logger.Infof("Logged in to %s as %s", env.PrimaryRegistry.URL, loginUsername)
		return nil
	})
}
