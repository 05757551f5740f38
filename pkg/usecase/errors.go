package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer
var (
	// ErrInvalidUpdate rejects a submission with empty content or a
	// malformed author/period.
	ErrInvalidUpdate = goerr.New("invalid update submission")

	// ErrUnknownAuthor rejects a submission from someone not on the roster.
	ErrUnknownAuthor = goerr.New("author is not on the roster")

	// ErrNoDispatcher is returned when delivery is requested but no
	// messaging channel is configured.
	ErrNoDispatcher = goerr.New("no delivery channel configured")
)
