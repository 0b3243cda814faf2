package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaelhelvey/gh-env-sync/pkg/config"
	"github.com/michaelhelvey/gh-env-sync/pkg/github"
)

var (
	environmentsToken     string
	environmentsUserAgent string
)

var environmentsCmd = &cobra.Command{
	Use:   "environments <owner/repo>",
	Short: "List a repository's deployment environments",
	Long: `List the names of all deployment environments currently configured
on a GitHub repository.

Examples:
  gh-env-sync environments myorg/my-service`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvironments,
}

func init() {
	environmentsCmd.Flags().StringVarP(&environmentsToken, "token", "t", "", "A 'repo' scoped GitHub access token (defaults to GITHUB_TOKEN or the tool config)")
	environmentsCmd.Flags().StringVarP(&environmentsUserAgent, "user-agent", "u", "", "User-Agent identity for GitHub API requests (defaults to the repository owner)")
	rootCmd.AddCommand(environmentsCmd)
}

func runEnvironments(_ *cobra.Command, args []string) error {
	ref, err := github.ParseRepositoryRef(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load tool config: %w", err)
	}

	token, err := github.ResolveToken(environmentsToken, cfg)
	if err != nil {
		return err
	}

	client, err := github.NewClient(github.ClientOptions{
		Token:     token,
		UserAgent: github.ResolveUserAgent(environmentsUserAgent, cfg, ref.Owner),
		Owner:     ref.Owner,
		Repo:      ref.Name,
	})
	if err != nil {
		return err
	}

	names, err := client.ListEnvironments()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Printf("No environments configured for %s\n", client.Repository())
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}
