package tui

import "errors"

// ErrMissingSessionManager is returned when the session manager is not provided.
var ErrMissingSessionManager = errors.New("tui: session manager is required")

// ErrMissingIdeaService is returned when the idea service is not provided.
var ErrMissingIdeaService = errors.New("tui: idea service is required")

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")
