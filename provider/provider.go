// Package provider defines the common Provider interface every credential
// source implements, the Context each provider is constructed with, and the
// composable wrappers (Static, Null, Rotating, Deferred, Chain) that turn
// one-shot fetchers into the expiration-aware, single-flight, chain-backed
// providers signers actually call.
package provider

import (
	"context"
	"errors"

	"github.com/soto-project/aws-credential-core/clock"
	"github.com/soto-project/aws-credential-core/credential"
	"github.com/soto-project/aws-credential-core/httpclient"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/logging"
)

// ErrNoProvider is returned when no provider could supply credentials: by
// Null directly, by a Chain whose every factory failed,
// and by a Deferred provider whose wrapped fetch failed (with the original
// error intentionally flattened away, see Deferred).
var ErrNoProvider = errors.New("no credential provider available")

// Provider produces a Credential on demand.
type Provider interface {
	// GetCredential returns the current credential, fetching or refreshing
	// it first if necessary. Implementations must be safe for concurrent
	// use.
	GetCredential(ctx context.Context) (credential.Credential, error)
}

// Shutdowner is implemented by providers that hold resources (goroutines,
// open connections) needing an orderly release. It is checked for via type
// assertion rather than folded into Provider, since most providers need no
// shutdown step at all.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Context is handed to every provider and factory at construction time. It
// carries the collaborators a provider needs and nothing else: providers
// must not reach for process-wide singletons, so that the lifetime of a
// Context can equal the lifetime of exactly one top-level client.
type Context struct {
	HTTPClient httpclient.Client
	Clock      clock.Clock
	Logger     logging.Logger
	Env        environment.Reader
}

// NewContext returns a Context with every field set to a sane default:
// a real clock, a no-op logger, the OS environment, and a default HTTP
// client. Callers building a production client will usually override
// HTTPClient with one tuned for their transport needs.
func NewContext() *Context {
	return &Context{
		HTTPClient: httpclient.New(nil),
		Clock:      clock.Real{},
		Logger:     logging.NewNoOpLogger(),
		Env:        environment.OS{},
	}
}

// WithLogger returns a shallow copy of ctx with Logger replaced.
func (c *Context) WithLogger(l logging.Logger) *Context {
	cp := *c
	cp.Logger = l
	return &cp
}
