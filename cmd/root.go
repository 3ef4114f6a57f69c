package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/infrastructure/upmconfig"
)

var (
	// Global flags
	configPath   string
	registryFlag string
	noUpstream   bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "unitypm",
	Short: "Package manager for Unity project manifests",
	Long: `A CLI tool that manages the packages of a Unity project through
npm-protocol registries, without opening the editor.

It resolves versions and transitive dependencies against a configurable
primary registry (OpenUPM by default), falls back to the official Unity
registry for packages the primary does not carry, and keeps the
project's Packages/manifest.json consistent: dependency entries, scoped
registries and testables are maintained together.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&registryFlag, "registry", "r", "",
		"Primary registry URL (overrides config file and env)")
	rootCmd.PersistentFlags().BoolVar(&noUpstream, "no-upstream", false,
		"Disable the official Unity registry fallback")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// loadEnv resolves the effective environment for one invocation and
// attaches any stored registry credentials to it.
func loadEnv() (config.Env, error) {
	env, err := config.ParseEnv(config.EnvOptions{
		ConfigPath: configPath,
		Registry:   registryFlag,
		NoUpstream: noUpstream,
	})
	if err != nil {
		return config.Env{}, err
	}
	attachCredentials(&env)
	return env, nil
}

func attachCredentials(env *config.Env) {
	path, err := upmconfig.DefaultPath()
	if err != nil {
		logger.Debugf("Could not locate .upmconfig.toml: %v", err)
		return
	}
	file, err := upmconfig.Load(path)
	if err != nil {
		logger.Debugf("Could not read %q: %v", path, err)
		return
	}
	env.PrimaryRegistry.Auth = file.AuthFor(env.PrimaryRegistry.URL)
	env.UpstreamRegistry.Auth = file.AuthFor(env.UpstreamRegistry.URL)
}
