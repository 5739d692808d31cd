// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PlanGenerator: Calls the remote plan generation endpoint
//   - AccountClient: Calls the remote account endpoints
//   - KeyValueStore: Durable text store for the session
//   - CredentialsStore: Login persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeWatcher: Notifies when persisted state changes on disk.
//     Without it, the TUI only checks for a saved session at start-up.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or driving package
package driven
