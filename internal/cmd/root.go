package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gh-env-sync",
	Short: "A CLI tool to sync GitHub deployment environments from a config file",
	Long: `gh-env-sync declaratively synchronizes GitHub repository deployment
environments and their variables to match a YAML configuration document.
It reconciles the remote state through the GitHub REST API, creating
environments and creating or updating variables as needed. The sync is
additive: environments and variables absent from the configuration are
never deleted.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A .env file is optional; ignore a missing one.
		_ = godotenv.Load()

		log.SetLevel(log.InfoLevel)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
