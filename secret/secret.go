// Package secret contains secrets to use in the application, like the cookie secret.
//
// Its purpose is to easily deal with sensitive data
// you want to keep from accidentally being exposed.
package secret

import (
	"encoding/json"
	"log/slog"
)

// New wraps secret.
func New(secret string) Secret {
	return Secret{secret: &secret}
}

// Secret prevents accidentally exposing
// any data you did not want to expose by masking it.
type Secret struct {
	// A pointer keeps the value out of reflection based printing.
	// It is still readable via unsafe memory access.
	secret *string
}

// Secret returns the actual value of the Secret.
func (s Secret) Secret() string {
	if s == *new(Secret) {
		return ""
	}

	return *s.secret
}

// String is always masked, so the Secret can be printed or formatted safely.
func (s Secret) String() string {
	return "******"
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String()) //nolint:wrapcheck // export the underlying error
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var des string
	if err := json.Unmarshal(data, &des); err != nil {
		return err //nolint:wrapcheck // export the underlying error
	}

	s.secret = &des

	return nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Secret) UnmarshalText(data []byte) error {
	text := string(data)
	s.secret = &text

	return nil
}

// LogValue masks the Secret for all slog handlers.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// IsEmpty reports whether the Secret has no value.
func (s Secret) IsEmpty() bool {
	return s.Secret() == ""
}
