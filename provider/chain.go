package provider

import (
	"context"
	"sync/atomic"

	"github.com/soto-project/aws-credential-core/credential"
)

// Chain tries a list of Factory values in order, locking in the first one
// whose produced Provider successfully returns a credential. Once locked
// in, the chain delegates every future call to that provider verbatim: the
// list is never re-scanned, even if the selected provider later starts
// failing.
type Chain struct {
	providerCtx *Context
	factories   []Factory

	startup  chan struct{}
	internal atomic.Pointer[Provider]
}

// NewChain constructs a Chain and immediately starts the selection walk in
// the background.
func NewChain(ctx context.Context, providerCtx *Context, factories []Factory) *Chain {
	c := &Chain{
		providerCtx: providerCtx,
		factories:   factories,
		startup:     make(chan struct{}),
	}
	go c.selectProvider(ctx)
	return c
}

func (c *Chain) selectProvider(ctx context.Context) {
	defer close(c.startup)

	for i, factory := range c.factories {
		p := factory.Create(c.providerCtx)
		cred, err := p.GetCredential(ctx)
		if err != nil {
			c.providerCtx.Logger.Debug("chain: provider %d failed, trying next: %v", i, err)
			continue
		}
		c.providerCtx.Logger.Info("chain: selected provider %d (%s)", i, cred.Source)
		c.internal.Store(&p)
		return
	}

	c.providerCtx.Logger.Warn("chain: no provider in the list produced a credential")
	var null Provider = Null{}
	c.internal.Store(&null)
}

// GetCredential implements Provider.
func (c *Chain) GetCredential(ctx context.Context) (credential.Credential, error) {
	if p := c.internal.Load(); p != nil {
		return (*p).GetCredential(ctx)
	}

	select {
	case <-c.startup:
	case <-ctx.Done():
		return credential.Credential{}, ctx.Err()
	}
	return (*c.internal.Load()).GetCredential(ctx)
}

// Shutdown waits for provider selection to finish, then forwards shutdown
// to the selected provider if it supports one.
func (c *Chain) Shutdown(ctx context.Context) error {
	select {
	case <-c.startup:
	case <-ctx.Done():
		return ctx.Err()
	}
	if p := c.internal.Load(); p != nil {
		if s, ok := (*p).(Shutdowner); ok {
			return s.Shutdown(ctx)
		}
	}
	return nil
}
