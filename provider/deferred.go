package provider

import (
	"context"
	"fmt"

	"github.com/soto-project/aws-credential-core/credential"
)

// Deferred wraps a slow one-shot provider (a file read, a metadata
// discovery round trip) behind a memoized result: the wrapped provider's
// GetCredential is invoked exactly once, from a goroutine started at
// construction, and every subsequent call returns that same result
// immediately once it is ready.
//
// The inner provider's error is intentionally flattened to ErrNoProvider at
// resolution: callers of a Deferred provider should not need to know
// whether the underlying failure was a missing file, an invalid profile, or
// a network error.
type Deferred struct {
	inner   Provider
	startup chan struct{}

	resolved    credential.Credential
	resolvedErr error
}

// NewDeferred constructs a Deferred provider and immediately starts
// resolving inner in the background.
func NewDeferred(ctx context.Context, inner Provider) *Deferred {
	d := &Deferred{
		inner:   inner,
		startup: make(chan struct{}),
	}
	go d.resolve(ctx)
	return d
}

func (d *Deferred) resolve(ctx context.Context) {
	defer close(d.startup)
	cred, err := d.inner.GetCredential(ctx)
	if err != nil {
		d.resolvedErr = fmt.Errorf("%w: %s", ErrNoProvider, err)
		return
	}
	d.resolved = cred
}

// GetCredential implements Provider.
func (d *Deferred) GetCredential(ctx context.Context) (credential.Credential, error) {
	select {
	case <-d.startup:
		return d.resolved, d.resolvedErr
	default:
	}

	select {
	case <-d.startup:
		return d.resolved, d.resolvedErr
	case <-ctx.Done():
		return credential.Credential{}, ctx.Err()
	}
}

// Shutdown waits for the startup resolution to finish (so no goroutine
// outlives the caller), then forwards shutdown to the inner provider if it
// supports one.
func (d *Deferred) Shutdown(ctx context.Context) error {
	select {
	case <-d.startup:
	case <-ctx.Done():
		return ctx.Err()
	}
	if s, ok := d.inner.(Shutdowner); ok {
		return s.Shutdown(ctx)
	}
	return nil
}
