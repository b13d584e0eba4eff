// Package license implements the optional shared-secret gate in front of the
// recommendation pipeline. The allowlist is a comma-separated set of tokens;
// an empty allowlist disables the gate entirely.
package license

import (
	"errors"
	"strings"
)

var (
	ErrMissing = errors.New("missing license key")
	ErrInvalid = errors.New("invalid license key")
)

// Check validates a caller-supplied key against the configured allowlist.
// Returns nil when the gate is disabled or the key is a member of the list.
func Check(allowlist, key string) error {
	if strings.TrimSpace(allowlist) == "" {
		return nil
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ErrMissing
	}

	for _, token := range strings.Split(allowlist, ",") {
		if strings.TrimSpace(token) == key {
			return nil
		}
	}
	return ErrInvalid
}
