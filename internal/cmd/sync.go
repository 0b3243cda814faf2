package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelhelvey/gh-env-sync/pkg/config"
	"github.com/michaelhelvey/gh-env-sync/pkg/github"
)

var (
	syncEnvironment string
	syncConfigPath  string
	syncToken       string
	syncUserAgent   string
)

var syncCmd = &cobra.Command{
	Use:   "sync <owner/repo>",
	Short: "Sync environment variables to GitHub",
	Long: `Sync deployment environments and their variables from a YAML
configuration document to a GitHub repository.

For each selected environment the tool ensures the environment exists
remotely, then creates or updates every variable in the document. The sync
stops at the first failure; already-applied writes are idempotent, so a
re-run after a failure converges the remote state.

The configuration document maps environment names to variable key/value
pairs:

  prod:
    DATABASE_URL: "postgres://prod.example.com/app"
    LOG_LEVEL: "warn"
  staging:
    DATABASE_URL: "postgres://staging.example.com/app"
    LOG_LEVEL: "debug"

Examples:
  # Sync every environment in the document
  gh-env-sync sync myorg/my-service

  # Sync a single environment
  gh-env-sync sync myorg/my-service --environment staging

  # Use an explicit document path and token
  gh-env-sync sync myorg/my-service --config envs.yaml --token $GITHUB_TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncEnvironment, "environment", "e", "", "Sync only this environment (must be a key in the configuration document)")
	syncCmd.Flags().StringVarP(&syncConfigPath, "config", "c", "github_environments.yaml", "Path to the configuration document")
	syncCmd.Flags().StringVarP(&syncToken, "token", "t", "", "A 'repo' scoped GitHub access token (defaults to GITHUB_TOKEN or the tool config)")
	syncCmd.Flags().StringVarP(&syncUserAgent, "user-agent", "u", "", "User-Agent identity for GitHub API requests (defaults to the repository owner)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, args []string) error {
	ref, err := github.ParseRepositoryRef(args[0])
	if err != nil {
		return err
	}

	doc, err := github.LoadDocumentFromFile(syncConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration document: %w", err)
	}

	// The selector precondition is checked before any remote call.
	if syncEnvironment != "" {
		if _, ok := doc[syncEnvironment]; !ok {
			return fmt.Errorf("environment %q not found in %s; available environments: %v",
				syncEnvironment, syncConfigPath, doc.EnvironmentNames())
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load tool config: %w", err)
	}

	token, err := github.ResolveToken(syncToken, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", github.GetAuthInstructions())
		return err
	}

	client, err := github.NewClient(github.ClientOptions{
		Token:     token,
		UserAgent: github.ResolveUserAgent(syncUserAgent, cfg, ref.Owner),
		Owner:     ref.Owner,
		Repo:      ref.Name,
	})
	if err != nil {
		return err
	}

	reconciler := github.NewReconciler(client)
	if err := reconciler.Sync(doc, syncEnvironment); err != nil {
		return err
	}

	if syncEnvironment != "" {
		fmt.Printf("✓ Synced environment %s (%d variables) for %s\n",
			syncEnvironment, len(doc[syncEnvironment]), client.Repository())
	} else {
		fmt.Printf("✓ Synced %d environments (%d variables) for %s\n",
			len(doc), doc.VariableCount(), client.Repository())
	}

	return nil
}
