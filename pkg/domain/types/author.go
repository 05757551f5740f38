package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// AuthorID identifies a team member submitting updates
type AuthorID string

var authorIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Validate checks if the AuthorID is valid
func (a AuthorID) Validate() error {
	if a == "" {
		return goerr.New("author ID cannot be empty")
	}
	if !authorIDPattern.MatchString(string(a)) {
		return goerr.New("author ID must be lowercase alphanumeric with dots, hyphens or underscores", goerr.V("id", a))
	}
	return nil
}

// String returns the string representation of AuthorID
func (a AuthorID) String() string {
	return string(a)
}
