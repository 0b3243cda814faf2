package github

// APIClient defines the interface for GitHub API operations against a single
// repository's deployment environments and their variables.
type APIClient interface {
	// Repository returns the identity resolved at construction time.
	Repository() RepositoryIdentity

	// Environment operations
	ListEnvironments() ([]string, error)
	UpsertEnvironment(name string) error
	DeleteEnvironment(name string) error

	// Environment variable operations. GetEnvironmentVariable reports a
	// missing variable as found=false rather than an error.
	GetEnvironmentVariable(env, key string) (value string, found bool, err error)
	CreateEnvironmentVariable(env, key, value string) error
	UpdateEnvironmentVariable(env, key, value string) error
	UpsertEnvironmentVariable(env, key, value string) error
	DeleteEnvironmentVariable(env, key string) error
}

// Reconciler defines the interface for state reconciliation operations
type Reconciler interface {
	// Sync reconciles the remote state with the document. An empty
	// environment selector syncs every environment in the document.
	Sync(doc Document, environment string) error

	// SyncEnvironment reconciles a single environment's variables.
	SyncEnvironment(name string, vars Variables) error
}
