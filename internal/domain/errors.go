package domain

import "errors"

var (
	// ErrQuestionNotFound indicates a question ID outside the loaded set.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionNotFound is returned when a heartbeat arrives for an expired or unknown session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUserIDRequired is returned when a request omits the user identifier.
	ErrUserIDRequired = errors.New("user id required")
	// ErrNoResults indicates the results log has no exportable data yet.
	ErrNoResults = errors.New("no results recorded")
)
