package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/faas-client/cmd/faas/commands"
	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "faas",
	Short: "Serverless function hosting CLI",
	Long: `A command-line interface for the serverless function hosting platform.

Create workspaces, deploy functions to them, update their context data and
run them from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commands.ApplyColorSetting()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	commands.SetDefaults()

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.faas/config.yml)")
	rootCmd.PersistentFlags().String("api-host", "", "platform API host (default is "+constants.DefaultAPIHost+")")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output, including HTTP requests")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", constants.DefaultLogLevel, "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(commands.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag(commands.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag(commands.KeyNoColor, rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag(commands.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewCreateWorkspaceCommand())
	rootCmd.AddCommand(commands.NewDestroyWorkspaceCommand())
	rootCmd.AddCommand(commands.NewListWorkspaceCommand())
	rootCmd.AddCommand(commands.NewRefreshCredentialsCommand())
	rootCmd.AddCommand(commands.NewDeployToCommand())
	rootCmd.AddCommand(commands.NewRemoveFromCommand())
	rootCmd.AddCommand(commands.NewUpdateContextCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.faas/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, e.g. FAAS_API_KEY
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	// An explicit --api-host wins over file and environment
	if flag := rootCmd.PersistentFlags().Lookup("api-host"); flag != nil && flag.Changed {
		viper.Set(commands.KeyAPIHost, flag.Value.String())
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(commands.KeyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
