package provider

// Factory is a one-shot builder that captures everything needed to produce
// a Provider once a Context (HTTP client, clock, logger, environment) is
// available. Splitting construction into Factory+Context lets a Chain
// describe "try these sources, in this order" declaratively before any of
// them actually touch the network or filesystem.
type Factory interface {
	Create(ctx *Context) Provider
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(ctx *Context) Provider

// Create implements Factory.
func (f FactoryFunc) Create(ctx *Context) Provider { return f(ctx) }
