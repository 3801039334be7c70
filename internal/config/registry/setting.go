// Package registry holds the definitions of every known setting.
//
// A Setting records a path's type, default and validation rules. The
// Accessor reads values from a layered store and converts them to the
// registered type, so "500" from the environment reads as an int and
// "000000" stays a string.
package registry

import (
	"fmt"
	"strings"
	"time"
)

// Setting defines a configuration setting with its metadata.
type Setting struct {
	// Path is the dot-separated path (e.g., "render.fps").
	Path string

	// Type is the setting's data type.
	Type SettingType

	// Default is the default value.
	Default any

	// Description is human-readable documentation.
	Description string

	// Enum lists allowed values. Strings compare case-insensitively.
	Enum []any

	// Minimum for numeric and duration types (nil means no minimum).
	// Durations compare in nanoseconds.
	Minimum *float64

	// Maximum for numeric and duration types (nil means no maximum).
	Maximum *float64

	// Check runs after the built-in checks, for formats such as colors.
	Check func(value any) error
}

// Validate checks if a value is valid for this setting.
func (s *Setting) Validate(value any) error {
	if err := s.validateType(value); err != nil {
		return err
	}

	if len(s.Enum) > 0 && !containsValue(s.Enum, value) {
		return fmt.Errorf("value must be one of: %v", s.Enum)
	}

	if s.Type == TypeInt || s.Type == TypeDuration {
		if err := s.validateRange(value); err != nil {
			return err
		}
	}

	if s.Check != nil {
		return s.Check(value)
	}
	return nil
}

// validateType checks if the value matches the expected type.
func (s *Setting) validateType(value any) error {
	switch s.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeInt:
		switch value.(type) {
		case int, int32, int64:
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case TypeDuration:
		if _, ok := value.(time.Duration); !ok {
			return fmt.Errorf("expected duration, got %T", value)
		}
	}
	return nil
}

// validateRange checks if a numeric value is within the allowed range.
func (s *Setting) validateRange(value any) error {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case time.Duration:
		f = float64(v)
	default:
		return nil
	}

	if s.Minimum != nil && f < *s.Minimum {
		if s.Type == TypeDuration {
			return fmt.Errorf("must be at least %v", time.Duration(*s.Minimum))
		}
		return fmt.Errorf("must be at least %v", *s.Minimum)
	}
	if s.Maximum != nil && f > *s.Maximum {
		if s.Type == TypeDuration {
			return fmt.Errorf("must be at most %v", time.Duration(*s.Maximum))
		}
		return fmt.Errorf("must be at most %v", *s.Maximum)
	}
	return nil
}

// SettingType represents the data type of a setting.
type SettingType uint8

const (
	// TypeString represents a string value.
	TypeString SettingType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeBool represents a boolean value.
	TypeBool
	// TypeDuration represents a time duration.
	TypeDuration
)

// String returns the string representation of the type.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeBool:
		return "boolean"
	case TypeDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// containsValue checks if a slice contains a value.
func containsValue(slice []any, value any) bool {
	str, isString := value.(string)
	for _, v := range slice {
		if s, ok := v.(string); ok && isString {
			if strings.EqualFold(s, str) {
				return true
			}
			continue
		}
		if v == value {
			return true
		}
	}
	return false
}

// MinValue creates a pointer to a float64 for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue creates a pointer to a float64 for use as Maximum.
func MaxValue(v float64) *float64 {
	return &v
}
