package tts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a synthesis failure.
type Kind string

const (
	// KindValidation marks requests rejected before any network call:
	// empty text, an unknown provider, or a missing required API key.
	KindValidation Kind = "validation"

	// KindConnection marks transport failures reaching the provider:
	// timeout, DNS failure, refused connection.
	KindConnection Kind = "connection"

	// KindProvider marks non-2xx provider responses (invalid key, rate
	// limit, malformed voice id, ...).
	KindProvider Kind = "provider"

	// KindUnexpectedResponse marks 2xx responses whose body cannot be
	// interpreted as audio. These are integration defects, kept distinct
	// from KindProvider so they can be diagnosed separately.
	KindUnexpectedResponse Kind = "unexpected_response"
)

// Error is the failure type returned by this package. API key values
// never appear in Message.
type Error struct {
	Kind    Kind
	Message string
	Status  int  // provider HTTP status, set for KindProvider
	Timeout bool // set for KindConnection when the deadline elapsed
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the failure classification of err, or "" when err was
// not produced by this package.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return ""
}

func errValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func errConnection(timeout bool, format string, args ...any) *Error {
	return &Error{Kind: KindConnection, Timeout: timeout, Message: fmt.Sprintf(format, args...)}
}

func errProvider(status int, format string, args ...any) *Error {
	return &Error{Kind: KindProvider, Status: status, Message: fmt.Sprintf(format, args...)}
}

func errUnexpected(format string, args ...any) *Error {
	return &Error{Kind: KindUnexpectedResponse, Message: fmt.Sprintf(format, args...)}
}

// extractMessage pulls a human-readable message out of a provider error
// body. ElevenLabs nests details under "detail", OpenAI under
// "error.message"; anything unrecognized falls back to the raw body.
func extractMessage(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return raw
	}

	for _, key := range []string{"detail", "error", "message"} {
		field, ok := doc[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(field, &s); err == nil && s != "" {
			return s
		}

		var nested map[string]json.RawMessage
		if err := json.Unmarshal(field, &nested); err != nil {
			continue
		}
		for _, nk := range []string{"message", "detail", "status"} {
			if nf, ok := nested[nk]; ok {
				if err := json.Unmarshal(nf, &s); err == nil && s != "" {
					return s
				}
			}
		}
	}
	return raw
}
