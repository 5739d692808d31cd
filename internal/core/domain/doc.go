// Package domain defines the core business entities for BizPilot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PlanDocument: A generated business plan, kept schema-loose
//   - SessionState: The plan currently in effect and its original prompt
//   - ModificationRequest: One iterative update of the current plan
//   - Account/Credentials: The logged-in user and their tier
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
