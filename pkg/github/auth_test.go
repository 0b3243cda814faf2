package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaelhelvey/gh-env-sync/pkg/config"
)

func TestResolveToken_FlagTakesPriority(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	cfg := &config.Config{GitHub: config.GitHubConfig{Token: "config-token"}}

	token, err := ResolveToken("flag-token", cfg)

	assert.NoError(t, err)
	assert.Equal(t, "flag-token", token)
}

func TestResolveToken_EnvironmentFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "  env-token  ")
	cfg := &config.Config{GitHub: config.GitHubConfig{Token: "config-token"}}

	token, err := ResolveToken("", cfg)

	assert.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestResolveToken_ConfigFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	cfg := &config.Config{GitHub: config.GitHubConfig{Token: "config-token"}}

	token, err := ResolveToken("", cfg)

	assert.NoError(t, err)
	assert.Equal(t, "config-token", token)
}

func TestResolveToken_NoToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	_, err := ResolveToken("", &config.Config{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no GitHub token found")
}

func TestResolveToken_NilConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	_, err := ResolveToken("", nil)

	assert.Error(t, err)
}

func TestResolveUserAgent(t *testing.T) {
	cfg := &config.Config{GitHub: config.GitHubConfig{UserAgent: "config-agent"}}

	assert.Equal(t, "flag-agent", ResolveUserAgent("flag-agent", cfg, "owner"))
	assert.Equal(t, "config-agent", ResolveUserAgent("", cfg, "owner"))
	assert.Equal(t, "owner", ResolveUserAgent("", &config.Config{}, "owner"))
	assert.Equal(t, "owner", ResolveUserAgent("", nil, "owner"))
}

func TestGetAuthInstructions(t *testing.T) {
	instructions := GetAuthInstructions()

	assert.Contains(t, instructions, "GITHUB_TOKEN")
	assert.Contains(t, instructions, "repo")
}
