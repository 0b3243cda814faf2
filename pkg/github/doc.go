// Package github provides declarative synchronization of GitHub deployment
// environments and their variables. It implements an API client over the
// GitHub REST environments and actions-variables endpoints and a reconciler
// that drives the remote state to match a desired-state YAML document.
//
// The package includes:
// - APIClient interface for GitHub API operations
// - Reconciler interface for state reconciliation
// - Document model for the desired-state configuration
// - Structured error types preserving HTTP status and body
package github
