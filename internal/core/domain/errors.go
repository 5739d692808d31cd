package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Session Errors.

	// ErrNoBaseline indicates an update was requested without a current plan.
	ErrNoBaseline = errors.New("no baseline plan to modify")

	// ErrEmptyInstruction indicates a blank modification instruction.
	ErrEmptyInstruction = errors.New("modification instruction is empty")

	// ErrEmptyPrompt indicates a blank idea prompt.
	ErrEmptyPrompt = errors.New("idea prompt is empty")

	// ErrUpdateInProgress indicates a generation is already in flight for the session.
	ErrUpdateInProgress = errors.New("generation already in progress")

	// ErrMalformedPlan indicates text that does not decode to a plan document.
	ErrMalformedPlan = errors.New("malformed plan document")

	// Generation Errors.

	// ErrGenerationFailed covers every transport or endpoint failure of a generation call.
	// The session is left unchanged whenever this is returned.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Assistant Errors.

	// ErrEmptyMessage indicates a blank question for the assistant.
	ErrEmptyMessage = errors.New("assistant message is empty")

	// ErrAssistantUnavailable covers every failure to get an assistant reply.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// Authentication Errors.

	// ErrUnauthenticated indicates no valid session credential is stored.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrAuthInvalid indicates the server rejected the supplied credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRegistrationFailed indicates the server did not create the account.
	ErrRegistrationFailed = errors.New("registration failed")
)

// UserMessage maps an error to the short text shown to the user.
// Precondition failures get distinct messages; everything else collapses
// into a generic retry hint.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoBaseline):
		return "No previous idea to modify. Generate one first or restore your last session."
	case errors.Is(err, ErrEmptyInstruction):
		return "Please describe the change you want to make."
	case errors.Is(err, ErrEmptyPrompt):
		return "Please describe your business idea."
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in to generate or modify business ideas."
	case errors.Is(err, ErrUpdateInProgress):
		return "A generation is already running. Please wait for it to finish."
	case errors.Is(err, ErrAuthInvalid):
		return "Invalid email or password."
	case errors.Is(err, ErrEmptyMessage):
		return "Please type a question for the assistant."
	case errors.Is(err, ErrAssistantUnavailable):
		return "Sorry, I'm having trouble connecting right now. Please try again."
	case errors.Is(err, ErrGenerationFailed):
		return "Failed to update business idea. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
