package feed

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse phone contacts that are not
// already in international format.
var DefaultPhoneRegion = "US"

type identifierOption struct {
	column string
	value  string
}

// NormalizeContact canonicalizes a contact identifier: emails pass through
// trimmed, phone numbers are stored in E.164. Anything else is rejected.
func NormalizeContact(contact string) (string, error) {
	trimmed := strings.TrimSpace(contact)
	if trimmed == "" {
		return "", ErrInvalidContact
	}

	if isEmail(trimmed) {
		return trimmed, nil
	}

	if e164, ok := normalizePhone(trimmed); ok {
		return e164, nil
	}

	return "", ErrInvalidContact.WithMetadata(map[string]any{
		"contact": trimmed,
	})
}

// resolveAccountIdentifier maps a raw login identifier onto the columns it
// could match. Handles are case-sensitive, so the raw value is always probed
// against the handle column; id and contact probes are added when the value
// parses as such.
func resolveAccountIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 3)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	options = append(options, identifierOption{
		column: "handle",
		value:  trimmed,
	})

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "contact",
			value:  trimmed,
		})
	} else if e164, ok := normalizePhone(trimmed); ok {
		options = append(options, identifierOption{
			column: "contact",
			value:  e164,
		})
	}

	return options
}

func normalizePhone(value string) (string, bool) {
	num, err := phonenumbers.Parse(value, DefaultPhoneRegion)
	if err != nil {
		return "", false
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}

	return phonenumbers.Format(num, phonenumbers.E164), true
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
