package ai

import (
	"errors"
	"fmt"

	"edunex/internal/models"
)

// Gateway error sentinels.
var (
	ErrEmptyResponse         = errors.New("empty response")
	ErrUnknownProvider       = errors.New("unknown provider")
	ErrProviderNotConfigured = errors.New("provider not configured")
	ErrSafetyBlocked         = errors.New("blocked by safety filter")
)

// ProviderError is a failed upstream call. Status is zero when the failure
// happened before a response was received or while parsing it.
type ProviderError struct {
	Provider models.Provider
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Message == "":
		return fmt.Sprintf("%s API error (%d)", e.Provider, e.Status)
	case e.Status == 0:
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	default:
		return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.Status, e.Message)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EmptyResponseError is returned when the provider answered without text.
type EmptyResponseError struct {
	Provider models.Provider
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s returned empty response", e.Provider)
}

func (e *EmptyResponseError) Is(target error) bool { return target == ErrEmptyResponse }

// NotConfiguredError is returned for a provider without credentials or endpoint.
type NotConfiguredError struct {
	Provider models.Provider
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s not configured", e.Provider.EnvKey())
}

func (e *NotConfiguredError) Is(target error) bool { return target == ErrProviderNotConfigured }

// StatusCode returns the HTTP status a proxy endpoint should answer with
// for err.
func StatusCode(err error) int {
	var perr *ProviderError
	switch {
	case errors.As(err, &perr) && perr.Status >= 400:
		return perr.Status
	case errors.Is(err, ErrSafetyBlocked):
		return 400
	case errors.Is(err, ErrUnknownProvider):
		return 404
	default:
		return 500
	}
}

// Message returns the bare upstream message of err, without the provider
// prefix added by ProviderError.
func Message(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return err.Error()
}
