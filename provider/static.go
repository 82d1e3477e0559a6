package provider

import (
	"context"

	"github.com/soto-project/aws-credential-core/credential"
)

// accessKeyEnvVar, secretKeyEnvVar name the environment variables
// StaticFromEnvironment reads.
const (
	accessKeyEnvVar = "AWS_ACCESS_KEY_ID"
	secretKeyEnvVar = "AWS_SECRET_ACCESS_KEY"
)

// Static always returns the same fixed credential.
type Static struct {
	cred credential.Credential
}

// NewStatic wraps a fixed credential as a Provider.
func NewStatic(cred credential.Credential) *Static {
	if cred.Source == "" {
		cred = cred.WithSource("static")
	}
	return &Static{cred: cred}
}

// NewStaticEmpty returns the always-empty static credential used as the
// default chain terminator: downstream signing code detects it via
// Credential.IsEmpty and skips signing rather than erroring.
func NewStaticEmpty() *Static {
	return &Static{cred: credential.Empty.WithSource("empty")}
}

// GetCredential implements Provider.
func (s *Static) GetCredential(context.Context) (credential.Credential, error) {
	return s.cred, nil
}

// StaticFromEnvironment reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, and
// optionally AWS_SESSION_TOKEN from ctx.Env. ok is false if either of the
// first two is absent, in which case the returned *Static is nil.
func StaticFromEnvironment(ctx *Context) (s *Static, ok bool) {
	accessKeyID, present := ctx.Env.Lookup(accessKeyEnvVar)
	if !present || accessKeyID == "" {
		return nil, false
	}
	secretAccessKey, present := ctx.Env.Lookup(secretKeyEnvVar)
	if !present || secretAccessKey == "" {
		return nil, false
	}
	cred := credential.New(ctx.Env, accessKeyID, secretAccessKey, "", nil)
	return NewStatic(cred.WithSource("environment")), true
}
