package domain

import "time"

type Recognition struct {
	ID               string    // UUID, part of the Redis key
	Source           string    // file path, URL or "image" the text came from
	Text             string    // joined ParsedText
	ExitCode         int       // OCRExitCode
	SearchablePDFURL string    // set when a searchable PDF was requested
	ProcessingTimeMs string    // as reported by the service
	CreatedAt        time.Time // when the reply was recorded
}
