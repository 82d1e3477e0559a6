// Package factory provides the named CredentialProviderFactory
// constructors (static, environment, ecs, ec2, config file, empty, null)
// and assembles the platform-appropriate default provider chain from them.
package factory

import (
	"context"
	"runtime"

	"github.com/soto-project/aws-credential-core/credential"
	"github.com/soto-project/aws-credential-core/metadata"
	"github.com/soto-project/aws-credential-core/provider"
	"github.com/soto-project/aws-credential-core/sharedcreds"
)

// Custom adapts a user-supplied closure into a provider.Factory.
func Custom(fn func(*provider.Context) provider.Provider) provider.Factory {
	return provider.FactoryFunc(fn)
}

// Static always produces a fixed credential.
func Static(accessKeyID, secretAccessKey, sessionToken string) provider.Factory {
	return provider.FactoryFunc(func(ctx *provider.Context) provider.Provider {
		cred := credential.New(ctx.Env, accessKeyID, secretAccessKey, sessionToken, nil)
		return provider.NewStatic(cred)
	})
}

// Environment produces a StaticFromEnvironment provider, or Null if the
// required environment variables are absent.
func Environment() provider.Factory {
	return provider.FactoryFunc(func(ctx *provider.Context) provider.Provider {
		if s, ok := provider.StaticFromEnvironment(ctx); ok {
			return s
		}
		return provider.Null{}
	})
}

// ECS produces an ECS metadata client wrapped in a Rotating cache, or Null
// if AWS_CONTAINER_CREDENTIALS_RELATIVE_URI is not set -- checked eagerly
// here so a chain doesn't pay for a doomed HTTP round trip on every startup.
func ECS() provider.Factory {
	return provider.FactoryFunc(func(ctx *provider.Context) provider.Provider {
		if _, ok := ctx.Env.Lookup("AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"); !ok {
			return provider.Null{}
		}
		client := metadata.NewECSClient(ctx.HTTPClient, ctx.Env, ctx.Logger)
		return provider.NewRotating(ctx, client)
	})
}

// EC2 produces an IMDS client wrapped in a Rotating cache. The cache is
// eagerly warmed at construction, since the instance profile credential is
// almost always available and this spares the first real caller the round
// trip to the metadata service.
func EC2() provider.Factory {
	return provider.FactoryFunc(func(ctx *provider.Context) provider.Provider {
		client := metadata.NewIMDSClient(ctx.HTTPClient, ctx.Env, ctx.Logger)
		return provider.NewRotating(ctx, client, provider.WithEagerRefresh())
	})
}

// ConfigFile produces a file-backed provider wrapped in Deferred, reading
// the shared credentials file at most once. An empty path defaults to
// ~/.aws/credentials; an empty profile defaults to AWS_PROFILE or
// "default".
func ConfigFile(path, profile string) provider.Factory {
	return provider.FactoryFunc(func(ctx *provider.Context) provider.Provider {
		inner := sharedcreds.New(ctx.Env, path, profile)
		return provider.NewDeferred(context.Background(), inner)
	})
}

// Empty produces the always-empty static credential, the default chain
// terminator: signing code detects it via Credential.IsEmpty and skips
// signing instead of erroring.
func Empty() provider.Factory {
	return provider.FactoryFunc(func(*provider.Context) provider.Provider {
		return provider.NewStaticEmpty()
	})
}

// Null produces a provider.Null, for callers who want the chain to fail
// loudly instead of terminating in an empty credential.
func Null() provider.Factory {
	return provider.FactoryFunc(func(*provider.Context) provider.Provider {
		return provider.Null{}
	})
}

// DefaultChain assembles the platform-appropriate default provider search
// order: environment, (ecs, ec2 on Linux-like systems), config file, empty.
func DefaultChain(ctx context.Context, providerCtx *provider.Context) *provider.Chain {
	return provider.NewChain(ctx, providerCtx, defaultFactories())
}

func defaultFactories() []provider.Factory {
	factories := []provider.Factory{Environment()}
	if runtime.GOOS == "linux" {
		factories = append(factories, ECS(), EC2())
	}
	factories = append(factories, ConfigFile("", ""), Empty())
	return factories
}
