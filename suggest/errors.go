package suggest

import "github.com/goliatone/go-errors"

const (
	TextCodeEmptyTopic        = "suggest_empty_topic"
	TextCodeProviderNotFound  = "suggest_provider_not_found"
	TextCodeGenerationFailed  = "suggest_generation_failed"
	TextCodeMalformedResponse = "suggest_malformed_response"
)

// ErrEmptyTopic is returned when a topic is empty or whitespace only.
var ErrEmptyTopic = errors.New("topic cannot be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyTopic).
	WithCode(errors.CodeBadRequest)

// ErrProviderNotFound is returned when a requested provider is not registered.
var ErrProviderNotFound = errors.New("suggestion provider not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProviderNotFound).
	WithCode(errors.CodeNotFound)

// ErrGenerationFailed is returned when a provider call fails.
var ErrGenerationFailed = errors.New("idea generation failed", errors.CategoryOperation).
	WithTextCode(TextCodeGenerationFailed).
	WithCode(errors.CodeInternal)

// ErrMalformedResponse is returned when a provider responds with a payload
// that does not carry a usable idea list.
var ErrMalformedResponse = errors.New("provider returned malformed response", errors.CategoryOperation).
	WithTextCode(TextCodeMalformedResponse).
	WithCode(errors.CodeInternal)
