package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigurationNotFound means that neither the environment-specific source nor the
	// default source exists.
	ErrConfigurationNotFound = errors.New("configuration not found")

	// ErrConfigurationLoad means that a configuration source exists but could not be read
	// or parsed.
	ErrConfigurationLoad = errors.New("configuration could not be loaded")

	// ErrMissingKey means that a required key is absent from the resolved configuration.
	ErrMissingKey = errors.New("missing configuration key")
)

// NotFoundError is returned by Resolve when no configuration source exists. Tried lists the
// source names in the order they were attempted.
type NotFoundError struct {
	Environment string
	Tried       []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s for environment %q", strings.Join(e.Tried, " or "), e.Environment)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrConfigurationNotFound }

// LoadError is returned by Resolve when the chosen source could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load configuration from %s: %s", e.Source, e.Err)
}

func (e *LoadError) Is(target error) bool { return target == ErrConfigurationLoad }

func (e *LoadError) Unwrap() error { return e.Err }

// MissingKeyError is returned by Configuration.Require.
type MissingKeyError struct {
	Key    string
	Source string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required key %q is not set in %s", e.Key, e.Source)
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrMissingKey }
