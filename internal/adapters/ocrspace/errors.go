package ocrspace

import "errors"

// Error kinds returned by this package. Match them with errors.Is; the
// concrete errors wrap the underlying cause as well.
var (
	// ErrValidation reports a bad or missing target input.
	ErrValidation = errors.New("ocrspace: invalid target")
	// ErrEncoding reports a failure to re-encode an in-memory image.
	ErrEncoding = errors.New("ocrspace: image encoding failed")
	// ErrTransport reports a connect, send or receive failure.
	ErrTransport = errors.New("ocrspace: transport failure")
	// ErrConfiguration reports a malformed endpoint or a missing collaborator.
	ErrConfiguration = errors.New("ocrspace: invalid configuration")
	// ErrEmptyResponse marks a reply without a body. The package never
	// returns it itself; callers that read the body decide when it applies.
	ErrEmptyResponse = errors.New("ocrspace: empty response body")
)
