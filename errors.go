package feed

import "github.com/goliatone/go-errors"

const (
	TextCodeDuplicateHandle  = "feed_duplicate_handle"
	TextCodeDuplicateContact = "feed_duplicate_contact"
	TextCodePostNotFound     = "feed_post_not_found"
	TextCodeAccountNotFound  = "feed_account_not_found"
	TextCodeInvalidContact   = "feed_invalid_contact"
	TextCodeTokenExpired     = "feed_token_expired"
	TextCodeTokenMalformed   = "feed_token_malformed"
)

// ErrDuplicateHandle is returned when a registration reuses an existing handle.
var ErrDuplicateHandle = errors.New("handle is already taken", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateHandle).
	WithCode(errors.CodeConflict)

// ErrDuplicateContact is returned when a registration reuses an existing
// email or phone contact.
var ErrDuplicateContact = errors.New("email or phone is already registered", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateContact).
	WithCode(errors.CodeConflict)

// ErrPostNotFound is returned when an operation targets a post id that does
// not exist. It signals a caller bug or stale reference, never retried here.
var ErrPostNotFound = errors.New("post not found", errors.CategoryNotFound).
	WithTextCode(TextCodePostNotFound).
	WithCode(errors.CodeNotFound)

// ErrAccountNotFound is returned when an account lookup by id or handle
// resolves to nothing.
var ErrAccountNotFound = errors.New("account not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidContact is returned when a contact identifier is neither a
// parseable email address nor a valid phone number.
var ErrInvalidContact = errors.New("contact must be an email or phone number", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidContact).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned when a session token is past its expiry.
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a session token cannot be parsed or its
// signature does not verify.
var ErrTokenMalformed = errors.New("session token malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString guards hashing of empty secrets.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndSecret is the bcrypt mismatch; Authenticate converts it
// into the nil-account no-match result rather than surfacing it.
var ErrMismatchedHashAndSecret = errors.New("secret does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
