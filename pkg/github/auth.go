package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/michaelhelvey/gh-env-sync/pkg/config"
)

// ResolveToken returns the GitHub token to use, in priority order: the
// --token flag, the GITHUB_TOKEN environment variable, then the tool
// configuration file.
func ResolveToken(flagToken string, cfg *config.Config) (string, error) {
	if flagToken != "" {
		return strings.TrimSpace(flagToken), nil
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return strings.TrimSpace(token), nil
	}

	if cfg != nil && cfg.GitHub.Token != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}

	return "", fmt.Errorf("no GitHub token found: pass --token, set GITHUB_TOKEN, or configure a token in %s", config.ConfigPathHint())
}

// ResolveUserAgent returns the User-Agent identity to use, in priority
// order: the --user-agent flag, the tool configuration file, then the
// repository owner login. GitHub asks that this header carry the requesting
// user's username or app name.
func ResolveUserAgent(flagUserAgent string, cfg *config.Config, owner string) string {
	if flagUserAgent != "" {
		return flagUserAgent
	}

	if cfg != nil && cfg.GitHub.UserAgent != "" {
		return cfg.GitHub.UserAgent
	}

	return owner
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. Please set up authentication using one of the following methods:

1. Environment Variable (Recommended for CI/CD):
   export GITHUB_TOKEN="your_personal_access_token"

2. Configuration File:
   Add the following to ~/.gh-env-sync/config.yaml:

   github:
     token: "your_personal_access_token"

To create a personal access token:
1. Go to GitHub Settings > Developer settings > Personal access tokens
2. Click "Generate new token (classic)"
3. Select the following scopes:
   - repo (Full control of private repositories)
4. Copy the generated token and use it with one of the methods above

Note: The token must have 'repo' scope to manage environments and variables.`
}
