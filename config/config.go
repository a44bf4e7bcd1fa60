// Package config resolves the key/value configuration for one target environment.
//
// Sources are Java-style properties files found by naming convention in a source directory:
// config.<environment>.properties is preferred, and config.properties is the fallback. Once a
// Configuration has been loaded it never changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/launchdarkly/api-contract-tests/framework"

	"github.com/magiconair/properties"
)

const (
	// DefaultEnvironment is used when no environment name is supplied.
	DefaultEnvironment = "dev"

	// DefaultSourceName is the fallback source used when there is no environment-specific one.
	DefaultSourceName = "config.properties"

	// BaseURIKey is the key holding the base URL of the service under test.
	BaseURIKey = "BASE_URI"
)

// Configuration is an immutable snapshot of resolved settings.
type Configuration struct {
	environment string
	source      string
	values      map[string]string
}

// NewConfiguration creates a Configuration from an explicit set of values. It is mainly useful
// for tests and for callers that obtain their settings elsewhere.
func NewConfiguration(environment string, values map[string]string) *Configuration {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Configuration{
		environment: NormalizeEnvironment(environment),
		source:      "(inline)",
		values:      copied,
	}
}

// Get returns the value for key, and false if the key is not present.
func (c *Configuration) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Require is like Get, but treats a missing or blank value as an error.
func (c *Configuration) Require(key string) (string, error) {
	v, ok := c.values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingKeyError{Key: key, Source: c.source}
	}
	return v, nil
}

// Keys returns all keys in sorted order.
func (c *Configuration) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environment returns the normalized environment name the configuration was resolved for.
func (c *Configuration) Environment() string { return c.environment }

// Source returns the name of the source the values were loaded from.
func (c *Configuration) Source() string { return c.source }

// NormalizeEnvironment trims and lower-cases an environment name, so that "QA", " qa " and "qa"
// are the same environment. A blank name means DefaultEnvironment.
func NormalizeEnvironment(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DefaultEnvironment
	}
	return n
}

// SourceNameForEnvironment returns the conventional name of the environment-specific source.
func SourceNameForEnvironment(environment string) string {
	return fmt.Sprintf("config.%s.properties", NormalizeEnvironment(environment))
}

// Resolve loads the configuration for an environment from source, falling back to the default
// source if there is no environment-specific one. It reports which source it used to logger.
//
// Resolve itself does no caching; see Resolver for the load-once behavior.
func Resolve(source fs.FS, environment string, logger framework.Logger) (*Configuration, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	env := NormalizeEnvironment(environment)
	envSource := SourceNameForEnvironment(env)

	name := envSource
	data, err := fs.ReadFile(source, envSource)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("Environment-specific config %s not found, trying %s", envSource, DefaultSourceName)
		name = DefaultSourceName
		data, err = fs.ReadFile(source, DefaultSourceName)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Environment: env, Tried: []string{envSource, DefaultSourceName}}
		}
	}
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	values, err := parseProperties(data)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	logger.Printf("Loaded configuration for environment %q from %s", env, name)

	return &Configuration{
		environment: env,
		source:      name,
		values:      values,
	}, nil
}

func parseProperties(data []byte) (map[string]string, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}
