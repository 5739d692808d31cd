// Package mcp provides an MCP (Model Context Protocol) server adapter for BizPilot.
// It lets AI assistants generate and refine business plans with the local
// user's account and session.
package mcp

import "errors"

// ErrMissingSessionManager is returned when the session manager is not provided.
var ErrMissingSessionManager = errors.New("mcp: session manager is required")

// ErrMissingIdeaService is returned when the idea service is not provided.
var ErrMissingIdeaService = errors.New("mcp: idea service is required")

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("mcp: auth service is required")

var errNothingToRestore = errors.New("no saved session to restore")
