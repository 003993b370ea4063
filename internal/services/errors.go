package services

import "errors"

// Service-layer error kinds. Handlers translate these to HTTP statuses;
// raw provider errors never cross the handler boundary.
var (
	// ErrNoAPIKey means the capability's credential is absent from the
	// environment. Terminal until the operator configures it.
	ErrNoAPIKey = errors.New("no api key configured")

	// ErrQuotaExhausted is a provider failure whose message matched the
	// quota/rate-limit pattern. Callers should retry after a cooldown.
	ErrQuotaExhausted = errors.New("provider quota exhausted")

	// ErrEmptyResponse means the provider answered with no usable content.
	ErrEmptyResponse = errors.New("provider returned empty response")

	// ErrMalformedPlan means the provider's text did not decode into a
	// valid plan. Kept distinct from transport failures so the two are
	// not conflated in responses.
	ErrMalformedPlan = errors.New("provider returned a malformed plan")

	// ErrGenerationInFlight rejects a regenerate issued while a previous
	// one for the same session has not resolved.
	ErrGenerationInFlight = errors.New("plan generation already in progress")

	// ErrStaleGeneration marks a generation result whose request token is
	// no longer current; the result has been discarded, not persisted.
	ErrStaleGeneration = errors.New("plan generation superseded")

	// ErrNoSpeechProvider means every configured speech provider failed or
	// none is configured; the caller should fall back to on-device speech.
	ErrNoSpeechProvider = errors.New("no speech provider available")

	// ErrNoFlow means no onboarding flow is active for the session.
	ErrNoFlow = errors.New("no onboarding flow in progress")

	// ErrStepIncomplete means the current onboarding step's required
	// fields are not all set.
	ErrStepIncomplete = errors.New("current onboarding step is incomplete")

	// ErrAtFirstStep rejects Back on the first onboarding step.
	ErrAtFirstStep = errors.New("already at the first onboarding step")

	// ErrNotFound is returned for missing plans, exercises and meals.
	ErrNotFound = errors.New("not found")
)
