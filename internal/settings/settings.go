// Package settings loads named configuration blobs that plugins own.
//
// Loading is an explicit boundary: callers always get a usable value back and
// an error telling them whether it came from storage or is the fallback.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/maxviazov/storefront-catalog/internal/model"
)

var (
	// ErrNotConfigured means no stored setting matches the prefix.
	ErrNotConfigured = errors.New("settings: not configured")
	// ErrUnavailable means the backing store could not be queried.
	ErrUnavailable = errors.New("settings: store unavailable")
	// ErrMalformed means a setting exists but its metadata does not decode.
	ErrMalformed = errors.New("settings: malformed metadata")
)

// Store is the read side of repository.SettingRepository.
type Store interface {
	FindByPrefix(ctx context.Context, prefix string) ([]model.Setting, error)
}

// Load decodes the first setting whose name starts with prefix into a T.
// On any failure it returns fallback together with an error wrapping one of
// ErrNotConfigured, ErrUnavailable or ErrMalformed.
func Load[T any](ctx context.Context, store Store, prefix string, fallback T) (T, error) {
	if store == nil {
		return fallback, fmt.Errorf("%w: no store", ErrUnavailable)
	}
	found, err := store.FindByPrefix(ctx, strings.ToLower(prefix))
	if err != nil {
		return fallback, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(found) == 0 {
		return fallback, ErrNotConfigured
	}

	s := found[0]
	if len(s.Metadata) == 0 {
		return fallback, fmt.Errorf("%w: %s has no metadata", ErrMalformed, s.Name)
	}
	var out T
	if err := json.Unmarshal(s.Metadata, &out); err != nil {
		return fallback, fmt.Errorf("%w: %s: %w", ErrMalformed, s.Name, err)
	}
	return out, nil
}

// Outcome names the branch Load took, for logging.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "loaded"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
