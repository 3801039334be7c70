package config

import (
	"errors"

	"github.com/dshills/cellpanel/internal/config/registry"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates a value can't be read as its setting's type.
	ErrTypeMismatch = registry.ErrTypeMismatch

	// ErrValidationFailed indicates a setting holds an unusable value.
	ErrValidationFailed = registry.ErrValidationFailed

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// ValidationError describes a validation failure for a setting.
type ValidationError = registry.ValidationError

// TypeError is returned when a value can't be converted to its setting's type.
type TypeError = registry.TypeError
