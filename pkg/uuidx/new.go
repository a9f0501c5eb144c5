// Package uuidx generates the time ordered identifiers used for runs and events.
package uuidx

import "github.com/google/uuid"

// New returns a version 7 UUID. It panics if the random source fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString returns New as a string.
func NewString() string {
	return New().String()
}

// Parse parses s as a UUID. An empty string is uuid.Nil.
func Parse(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
