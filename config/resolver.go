package config

import (
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/launchdarkly/api-contract-tests/framework"
)

// State describes where a Resolver is in its lifecycle.
type State int32

const (
	Uninitialized State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolver loads the configuration for one environment the first time it is asked for, and
// returns the same result on every later call. Loaded and Failed are both terminal: after a
// failure, every call returns the identical error without trying to load again.
//
// A Resolver is safe for concurrent use. Concurrent first callers block until the single load
// attempt finishes; nobody observes a partially loaded configuration.
type Resolver struct {
	source      fs.FS
	environment string
	logger      framework.Logger

	once   sync.Once
	state  atomic.Int32
	config *Configuration
	err    error
}

// NewResolver creates a Resolver. Nothing is read until Resolve or Get is called.
func NewResolver(source fs.FS, environment string, logger framework.Logger) *Resolver {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Resolver{
		source:      source,
		environment: NormalizeEnvironment(environment),
		logger:      logger,
	}
}

// Environment returns the normalized environment name.
func (r *Resolver) Environment() string { return r.environment }

// State returns the current lifecycle state.
func (r *Resolver) State() State { return State(r.state.Load()) }

// Resolve returns the configuration, loading it on the first call.
func (r *Resolver) Resolve() (*Configuration, error) {
	r.once.Do(func() {
		r.state.Store(int32(Loading))
		r.config, r.err = Resolve(r.source, r.environment, r.logger)
		if r.err != nil {
			r.config = nil
			r.state.Store(int32(Failed))
			return
		}
		r.state.Store(int32(Loaded))
	})
	return r.config, r.err
}

// Get resolves the configuration if necessary and looks up a key. The error is non-nil only if
// the configuration could not be resolved.
func (r *Resolver) Get(key string) (string, bool, error) {
	c, err := r.Resolve()
	if err != nil {
		return "", false, err
	}
	v, ok := c.Get(key)
	return v, ok, nil
}
