package provider

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/soto-project/aws-credential-core/credential"
)

// DefaultMinRemainingLifetime is the window within which Rotating refreshes
// a credential ahead of its actual expiration.
const DefaultMinRemainingLifetime = 3 * time.Minute

// singleflightKey is the constant key every refresh is coalesced under: one
// Rotating instance manages exactly one refresh lane.
const singleflightKey = "refresh"

// Rotating wraps a one-shot fetcher (typically a metadata client) and turns
// it into an expiration-aware, single-flight cache: concurrent callers that
// all observe an expiring (or absent) credential coalesce into exactly one
// call to the inner fetcher, via singleflight.Group.
type Rotating struct {
	ctx   *Context
	inner Provider
	eager bool

	mu      sync.RWMutex
	minLife time.Duration
	cred    *credential.Credential

	group singleflight.Group
}

// RotatingOption configures a Rotating provider at construction time.
type RotatingOption func(*Rotating)

// WithMinRemainingLifetime overrides DefaultMinRemainingLifetime.
func WithMinRemainingLifetime(d time.Duration) RotatingOption {
	return func(r *Rotating) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.minLife = d
	}
}

// eagerRefresh, when set, is applied after every other RotatingOption so a
// background refresh never races the options loop over r.minLife.
func eagerRefresh(r *Rotating) {
	go func() {
		_, _ = r.GetCredential(context.Background())
	}()
}

// WithEagerRefresh schedules a background refresh immediately at
// construction, so the first real GetCredential call usually finds a warm
// cache instead of paying for the fetch inline.
func WithEagerRefresh() RotatingOption {
	return func(r *Rotating) { r.eager = true }
}

// NewRotating wraps inner in a Rotating cache.
func NewRotating(ctx *Context, inner Provider, opts ...RotatingOption) *Rotating {
	r := &Rotating{
		ctx:     ctx,
		inner:   inner,
		minLife: DefaultMinRemainingLifetime,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.eager {
		eagerRefresh(r)
	}
	return r
}

// GetCredential implements Provider.
func (r *Rotating) GetCredential(ctx context.Context) (credential.Credential, error) {
	if cred, ok := r.cachedCredential(); ok {
		return cred, nil
	}
	return r.refresh(ctx)
}

func (r *Rotating) cachedCredential() (credential.Credential, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cred == nil {
		return credential.Credential{}, false
	}
	if r.cred.IsExpiring(r.ctx.Clock.Now(), r.minLife) {
		return credential.Credential{}, false
	}
	return *r.cred, true
}

// refresh coalesces concurrent refreshes into exactly one call to inner via
// singleflight.Group: the key is constant because a Rotating instance has
// exactly one refresh lane. The fetch ignores the cancellation of the caller
// that started it, so cancelling ctx only ends this caller's wait.
func (r *Rotating) refresh(ctx context.Context) (credential.Credential, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(singleflightKey, func() (any, error) {
		r.ctx.Logger.Debug("rotating provider refreshing credential")
		cred, err := r.inner.GetCredential(fetchCtx)
		if err != nil {
			r.ctx.Logger.Warn("rotating provider refresh failed: %v", err)
			return credential.Credential{}, err
		}
		r.mu.Lock()
		r.cred = &cred
		r.mu.Unlock()
		return cred, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return credential.Credential{}, res.Err
		}
		return res.Val.(credential.Credential), nil
	case <-ctx.Done():
		return credential.Credential{}, ctx.Err()
	}
}

// Shutdown releases the singleflight lane for the next fetch. Rotating
// holds no other background state, so there is nothing else to wait for or
// release; any refresh already in flight still completes and delivers its
// result to its own waiters.
func (r *Rotating) Shutdown(context.Context) error {
	r.group.Forget(singleflightKey)
	return nil
}
