package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client implements the APIClient interface using the GitHub REST API.
// The repository identity is resolved once at construction; every call made
// through the client carries bearer authentication, the configured
// User-Agent, and go-github's pinned Accept and X-GitHub-Api-Version
// headers.
type Client struct {
	client *github.Client
	ctx    context.Context
	repo   RepositoryIdentity
}

// ClientOptions configures a Client. Token, Owner and Repo are required.
type ClientOptions struct {
	// Token is a 'repo' scoped GitHub access token.
	Token string

	// UserAgent identifies the caller in the User-Agent header. GitHub asks
	// that this be the requesting user's username or app name.
	UserAgent string

	Owner string
	Repo  string

	// BaseURL overrides the API endpoint, primarily for tests. Must end
	// with a trailing slash to be usable as a relative-URL base.
	BaseURL string
}

// NewClient creates a GitHub API client and resolves the repository identity
// with a single lookup call. Construction is fail-fast: if the lookup does
// not succeed there is no usable client.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Token == "" {
		return nil, NewGitHubError(ErrorTypeAuth, "GitHub token cannot be empty", nil)
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	tc := oauth2.NewClient(ctx, ts)

	gh := github.NewClient(tc)
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}
	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		gh.BaseURL = base
	}

	c := &Client{
		client: gh,
		ctx:    ctx,
	}

	repo, err := c.resolveRepository(opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}
	c.repo = repo

	return c, nil
}

// Repository returns the identity resolved at construction time.
func (c *Client) Repository() RepositoryIdentity {
	return c.repo
}

// resolveRepository fetches the repository so that the numeric id is
// available for the variable endpoints.
func (c *Client) resolveRepository(owner, name string) (RepositoryIdentity, error) {
	log.Debugf("resolving repository %s/%s", owner, name)

	repo, _, err := c.client.Repositories.Get(c.ctx, owner, name)
	if err != nil {
		return RepositoryIdentity{}, WrapGitHubError(err, fmt.Sprintf("repository %s/%s", owner, name))
	}

	identity := RepositoryIdentity{
		Owner: repo.GetOwner().GetLogin(),
		Name:  repo.GetName(),
		ID:    repo.GetID(),
	}
	log.Debugf("resolved repository %s to id %d", identity, identity.ID)

	return identity, nil
}

// ListEnvironments lists the names of all deployment environments for the
// repository, in API order.
func (c *Client) ListEnvironments() ([]string, error) {
	log.Debugf("listing environments for %s", c.repo)

	opts := &github.EnvironmentListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var names []string
	for {
		envs, resp, err := c.client.Repositories.ListEnvironments(c.ctx, c.repo.Owner, c.repo.Name, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("environments for %s", c.repo))
		}

		for _, env := range envs.Environments {
			names = append(names, env.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// UpsertEnvironment creates the named environment or leaves it unchanged if
// it already exists. The underlying PUT is idempotent.
func (c *Client) UpsertEnvironment(name string) error {
	log.Debugf("upserting environment %s for %s", name, c.repo)

	_, _, err := c.client.Repositories.CreateUpdateEnvironment(c.ctx, c.repo.Owner, c.repo.Name, name, &github.CreateUpdateEnvironment{})
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("environment %s for %s", name, c.repo))
	}
	return nil
}

// DeleteEnvironment deletes the named environment. Not used by the sync
// flow, which is additive-only.
func (c *Client) DeleteEnvironment(name string) error {
	log.Debugf("deleting environment %s for %s", name, c.repo)

	_, err := c.client.Repositories.DeleteEnvironment(c.ctx, c.repo.Owner, c.repo.Name, name)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("environment %s for %s", name, c.repo))
	}
	return nil
}

// environmentVariable mirrors the variable endpoints' JSON wire shape.
type environmentVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// variablesPath builds the id-addressed variables path. The variable
// endpoints address environments by numeric repository id, not owner/name,
// which is why the id is cached on the client.
func (c *Client) variablesPath(env, key string) string {
	p := fmt.Sprintf("repositories/%d/environments/%s/variables", c.repo.ID, url.PathEscape(env))
	if key != "" {
		p += "/" + url.PathEscape(key)
	}
	return p
}

// GetEnvironmentVariable fetches a variable's value. A 404 response is not
// an error: it reports found=false, distinguishing "variable does not exist"
// from every other failure.
func (c *Client) GetEnvironmentVariable(env, key string) (string, bool, error) {
	log.Debugf("getting environment variable %s in environment %s for %s", key, env, c.repo)

	req, err := c.client.NewRequest(http.MethodGet, c.variablesPath(env, key), nil)
	if err != nil {
		return "", false, err
	}

	var v environmentVariable
	_, err = c.client.Do(c.ctx, req, &v)
	if err != nil {
		if IsNotFound(err) {
			log.Debugf("environment variable %s in environment %s not found", key, env)
			return "", false, nil
		}
		return "", false, WrapGitHubError(err, fmt.Sprintf("variable %s in environment %s for %s", key, env, c.repo))
	}

	return v.Value, true, nil
}

// CreateEnvironmentVariable creates a variable in the named environment.
func (c *Client) CreateEnvironmentVariable(env, key, value string) error {
	log.Debugf("creating environment variable %s in environment %s for %s", key, env, c.repo)

	body := environmentVariable{Name: key, Value: value}
	req, err := c.client.NewRequest(http.MethodPost, c.variablesPath(env, ""), body)
	if err != nil {
		return err
	}

	if _, err := c.client.Do(c.ctx, req, nil); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("variable %s in environment %s for %s", key, env, c.repo))
	}
	return nil
}

// UpdateEnvironmentVariable updates an existing variable's value. The key is
// addressed via the URL path; only the value travels in the body.
func (c *Client) UpdateEnvironmentVariable(env, key, value string) error {
	log.Debugf("updating environment variable %s in environment %s for %s", key, env, c.repo)

	body := struct {
		Value string `json:"value"`
	}{Value: value}
	req, err := c.client.NewRequest(http.MethodPatch, c.variablesPath(env, key), body)
	if err != nil {
		return err
	}

	if _, err := c.client.Do(c.ctx, req, nil); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("variable %s in environment %s for %s", key, env, c.repo))
	}
	return nil
}

// UpsertEnvironmentVariable creates the variable if it is absent and updates
// it otherwise. The variable API has no native upsert, so this probes with a
// get first. The get and the write are not atomic; a remote change between
// them is a benign last-write-wins race since this tool is expected to be
// the sole writer.
func (c *Client) UpsertEnvironmentVariable(env, key, value string) error {
	_, found, err := c.GetEnvironmentVariable(env, key)
	if err != nil {
		return err
	}

	if found {
		return c.UpdateEnvironmentVariable(env, key, value)
	}
	return c.CreateEnvironmentVariable(env, key, value)
}

// DeleteEnvironmentVariable deletes a variable. Not used by the sync flow,
// which is additive-only.
func (c *Client) DeleteEnvironmentVariable(env, key string) error {
	log.Debugf("deleting environment variable %s in environment %s for %s", key, env, c.repo)

	req, err := c.client.NewRequest(http.MethodDelete, c.variablesPath(env, key), nil)
	if err != nil {
		return err
	}

	if _, err := c.client.Do(c.ctx, req, nil); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("variable %s in environment %s for %s", key, env, c.repo))
	}
	return nil
}
