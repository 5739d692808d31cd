// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SessionManager owns the active plan and its durable copy, IdeaService
// runs generations and iterative updates on top of it, and AuthService
// and SettingsService manage the login and configuration they depend on.
package services
