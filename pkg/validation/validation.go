// Package validation provides checks for configuration values: numeric
// tuning parameters, player names and key names.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits for names read from configuration.
const (
	MaxPlayerNameLen = 32
	MaxKeyNameLen    = 16
)

// Regular expressions for input validation
var (
	// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation for player names
	validPlayerNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.()]+$`)
	// Key names are single words such as "A", "Left" or "Space".
	validKeyName = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ValidateFinite rejects NaN and infinities.
func ValidateFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("must be a finite number, got %v", v)
	}
	return nil
}

// ValidatePositive requires a finite value above zero.
func ValidatePositive(v float64) error {
	if err := ValidateFinite(v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be positive, got %v", v)
	}
	return nil
}

// ValidateNonNegative requires a finite value of at least zero.
func ValidateNonNegative(v float64) error {
	if err := ValidateFinite(v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("must not be negative, got %v", v)
	}
	return nil
}

// ValidateRange requires a finite value in [lo, hi].
func ValidateRange(v, lo, hi float64) error {
	if err := ValidateFinite(v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return fmt.Errorf("must be between %v and %v, got %v", lo, hi, v)
	}
	return nil
}

// ValidatePlayerName validates a player name and returns it trimmed.
func ValidatePlayerName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("player name cannot be empty")
	}

	if len(name) > MaxPlayerNameLen {
		return "", fmt.Errorf("player name too long: %d characters (max %d)", len(name), MaxPlayerNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("player name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("player name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("player name contains control characters")
		}
	}

	if !validPlayerNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("player name contains invalid characters (only alphanumeric, spaces, hyphens, underscores, and basic punctuation allowed)")
	}

	return trimmed, nil
}

// ValidateKeyName checks a key binding name.
func ValidateKeyName(key string) error {
	if key == "" {
		return fmt.Errorf("key name cannot be empty")
	}
	if len(key) > MaxKeyNameLen {
		return fmt.Errorf("key name too long: %d characters (max %d)", len(key), MaxKeyNameLen)
	}
	if !validKeyName.MatchString(key) {
		return fmt.Errorf("key name %q must be a single alphanumeric word", key)
	}
	return nil
}

// ValidateDistinctKeys requires every key in keys to be different.
func ValidateDistinctKeys(keys ...string) error {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		norm := strings.ToLower(k)
		if seen[norm] {
			return fmt.Errorf("key %q is bound twice", k)
		}
		seen[norm] = true
	}
	return nil
}
