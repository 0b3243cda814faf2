package github

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// reconciler implements the Reconciler interface
type reconciler struct {
	client APIClient
}

// NewReconciler creates a new reconciler instance driving the given client
func NewReconciler(client APIClient) Reconciler {
	return &reconciler{
		client: client,
	}
}

// Sync reconciles the remote state with the document. If environment names a
// single environment it must exist as a key in the document; that is checked
// before any remote call is made. An empty selector syncs every environment.
//
// The sync is fail-fast: the first failing operation aborts the run and no
// later environment or variable is attempted. Already-applied writes are
// left in place; every operation is idempotent, so a re-run converges.
func (r *reconciler) Sync(doc Document, environment string) error {
	if environment != "" {
		vars, ok := doc[environment]
		if !ok {
			return &GitHubError{
				Type:     ErrorTypeValidation,
				Message:  fmt.Sprintf("environment %q not found in configuration; available environments: %v", environment, doc.EnvironmentNames()),
				Resource: fmt.Sprintf("environment %s", environment),
			}
		}
		return r.SyncEnvironment(environment, vars)
	}

	for _, name := range doc.EnvironmentNames() {
		if err := r.SyncEnvironment(name, doc[name]); err != nil {
			return err
		}
	}

	return nil
}

// SyncEnvironment ensures the environment exists remotely and upserts every
// variable in it. The environment upsert happens unconditionally: existence
// cannot be cheaply verified without an extra call and the PUT is
// idempotent. Variables are visited in sorted key order, each exactly once.
func (r *reconciler) SyncEnvironment(name string, vars Variables) error {
	log.Infof("syncing environment %s (%d variables)", name, len(vars))

	if err := r.client.UpsertEnvironment(name); err != nil {
		return err
	}

	for _, key := range vars.Keys() {
		log.Infof("syncing variable %s in environment %s", key, name)
		if err := r.client.UpsertEnvironmentVariable(name, key, vars[key]); err != nil {
			return err
		}
	}

	return nil
}
