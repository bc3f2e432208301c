package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//	@title			Guardian Portal API
//	@version		1.0
//	@description	Authentication, sessions, preferences and guardian dashboards for the Guardian Portal web client.

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

var (
	envFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "portal",
	Short:         "Guardian Portal API server",
	Long:          "Backend for the Guardian Portal web client: accounts, sessions, preferences, guardian dashboards and locale bundles.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "portal:", err)
		os.Exit(1)
	}
}
