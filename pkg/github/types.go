package github

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies a repository by its owner login and name, before
// any contact with the API.
type RepositoryRef struct {
	Owner string
	Name  string
}

// ParseRepositoryRef parses an "owner/repo" argument into a RepositoryRef.
// The argument must contain exactly one slash with non-empty halves.
func ParseRepositoryRef(s string) (RepositoryRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository %q: expected owner/repo, e.g. rust-lang/rust", s)
	}
	return RepositoryRef{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the ref in owner/repo form.
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// RepositoryIdentity is a repository as resolved by the API: the owner login
// and name pair plus the numeric id. The id is required because the variable
// endpoints address environments by repository id rather than by owner/name.
// Resolved once at client construction and immutable afterwards.
type RepositoryIdentity struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	ID    int64  `json:"id"`
}

// String returns the identity in owner/repo form.
func (r RepositoryIdentity) String() string {
	return r.Owner + "/" + r.Name
}
