package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accessor provides type-safe access to configuration values.
// It reads raw values from a ValueStore and falls back to the
// registry's defaults.
//
// Values are converted to the requested type where that is lossless:
// environment variables arrive as strings, so "30" reads as an int,
// "on" as a bool and "500" as 500ms. Numbers read as strings keep
// their decimal form.
type Accessor struct {
	registry *Registry
	values   ValueStore
}

// ValueStore is the interface for accessing raw configuration values.
type ValueStore interface {
	// GetValue returns the value at the given path.
	// Returns nil, false if the path doesn't exist.
	GetValue(path string) (any, bool)
}

// NewAccessor creates a new type-safe accessor.
func NewAccessor(registry *Registry, values ValueStore) *Accessor {
	return &Accessor{
		registry: registry,
		values:   values,
	}
}

// Get returns the raw value at the given path.
// If the value is not set, returns the default from the registry.
// Returns ErrSettingNotFound if the setting is not registered.
func (a *Accessor) Get(path string) (any, error) {
	if val, ok := a.values.GetValue(path); ok {
		return val, nil
	}

	setting := a.registry.Get(path)
	if setting == nil {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return setting.Default, nil
}

// GetString returns a string value at the given path.
func (a *Accessor) GetString(path string) (string, error) {
	val, err := a.Get(path)
	if err != nil {
		return "", err
	}

	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", mismatch(path, "string", val)
	}
}

// GetInt returns an integer value at the given path.
func (a *Accessor) GetInt(path string) (int, error) {
	val, err := a.Get(path)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int(v), nil
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, nil
		}
	}
	return 0, mismatch(path, "integer", val)
}

// GetBool returns a boolean value at the given path.
// Strings accept true/false, yes/no, on/off and 1/0.
func (a *Accessor) GetBool(path string) (bool, error) {
	val, err := a.Get(path)
	if err != nil {
		return false, err
	}

	switch v := val.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return false, mismatch(path, "boolean", val)
}

// GetDuration returns a time.Duration value at the given path.
// Accepts duration strings (e.g., "500ms") and integers (milliseconds),
// including integers written as strings.
func (a *Accessor) GetDuration(path string) (time.Duration, error) {
	val, err := a.Get(path)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return v, nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	case string:
		s := strings.TrimSpace(v)
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
	}
	return 0, mismatch(path, "duration", val)
}

// mismatch builds a TypeError describing val.
func mismatch(path, expected string, val any) *TypeError {
	actual := fmt.Sprintf("%T", val)
	if s, ok := val.(string); ok {
		actual = fmt.Sprintf("string %q", s)
	}
	return &TypeError{Path: path, Expected: expected, Actual: actual}
}
