// Package credential defines the value type every provider in this module
// ultimately produces: an AWS SigV4 credential, with an optional expiring
// capability used by the rotating provider to decide when to refresh.
package credential

import (
	"time"

	"github.com/soto-project/aws-credential-core/internal/environment"
)

// sessionTokenEnvVar is read by NewCredential when sessionToken is empty,
// mirroring how the AWS CLI/SDKs let a bare access key/secret pair pick up
// an ambient session token from the environment.
const sessionTokenEnvVar = "AWS_SESSION_TOKEN"

// Credential is an immutable AWS SigV4 credential. The zero value is the
// empty credential (see IsEmpty) and is a valid placeholder.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      *time.Time

	// Source names the provider that produced this credential, for logging
	// and tests; it does not participate in Equal.
	Source string
}

// New constructs a Credential. If sessionToken is empty, it is filled in
// from AWS_SESSION_TOKEN via env, so callers that only have a bare key pair
// still pick up an ambient token the way the AWS CLI does.
func New(env environment.Reader, accessKeyID, secretAccessKey, sessionToken string, expiration *time.Time) Credential {
	if sessionToken == "" && env != nil {
		if v, ok := env.Lookup(sessionTokenEnvVar); ok {
			sessionToken = v
		}
	}
	return Credential{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    sessionToken,
		Expiration:      expiration,
	}
}

// Empty is the always-empty credential returned by the chain's "empty"
// terminator.
var Empty = Credential{}

// IsEmpty reports whether either of the two key fields is unset. An empty
// credential must never be used for signing.
func (c Credential) IsEmpty() bool {
	return c.AccessKeyID == "" || c.SecretAccessKey == ""
}

// Equal compares the externally visible fields of two credentials. Source
// is excluded since it is diagnostic, not identity.
func (c Credential) Equal(other Credential) bool {
	if c.AccessKeyID != other.AccessKeyID ||
		c.SecretAccessKey != other.SecretAccessKey ||
		c.SessionToken != other.SessionToken {
		return false
	}
	switch {
	case c.Expiration == nil && other.Expiration == nil:
		return true
	case c.Expiration == nil || other.Expiration == nil:
		return false
	default:
		return c.Expiration.Equal(*other.Expiration)
	}
}

// IsExpiring reports whether this credential will be within `within` of its
// expiration. A credential without an expiration never expires.
func (c Credential) IsExpiring(now time.Time, within time.Duration) bool {
	if c.Expiration == nil {
		return false
	}
	return c.Expiration.Sub(now) < within
}

// IsExpired is IsExpiring(now, 0).
func (c Credential) IsExpired(now time.Time) bool {
	return c.IsExpiring(now, 0)
}

// WithSource returns a copy of c tagged with the given provider name.
func (c Credential) WithSource(source string) Credential {
	c.Source = source
	return c
}
