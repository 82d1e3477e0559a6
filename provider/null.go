package provider

import (
	"context"

	"github.com/soto-project/aws-credential-core/credential"
)

// Null always fails with ErrNoProvider. It stands in for a nil Provider so
// the chain and factory code never has to special-case "no provider
// configured" separately from "provider configured but failing".
type Null struct{}

// GetCredential implements Provider.
func (Null) GetCredential(context.Context) (credential.Credential, error) {
	return credential.Credential{}, ErrNoProvider
}
