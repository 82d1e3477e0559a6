// Package sharedcreds implements the file-backed credential provider: it
// reads the AWS shared-credentials file (default ~/.aws/credentials),
// parses it as INI, and looks up a named profile's access key id, secret
// access key, and optional session token.
package sharedcreds

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/soto-project/aws-credential-core/credential"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/internal/ini"
)

// DefaultPath is the conventional location of the shared credentials file.
const DefaultPath = "~/.aws/credentials"

// DefaultProfile is used when no profile is given and AWS_PROFILE is unset.
const DefaultProfile = "default"

var (
	// ErrMissingAccessKeyID is returned when a profile has no
	// aws_access_key_id entry.
	ErrMissingAccessKeyID = errors.New("sharedcreds: profile is missing aws_access_key_id")

	// ErrMissingSecretAccessKey is returned when a profile has no
	// aws_secret_access_key entry.
	ErrMissingSecretAccessKey = errors.New("sharedcreds: profile is missing aws_secret_access_key")
)

// ErrMissingProfile is returned when the requested profile is not present
// in the parsed file.
type ErrMissingProfile struct {
	Name string
}

func (e *ErrMissingProfile) Error() string {
	return fmt.Sprintf("sharedcreds: profile %q not found", e.Name)
}

// Provider reads and parses the shared credentials file on first
// GetCredential. It performs blocking file I/O, so it is normally wrapped in
// a provider.Deferred by the factory so that blocking happens at most once,
// off the caller's own goroutine stack.
type Provider struct {
	path    string
	profile string
	env     environment.Reader
}

// New constructs a Provider. An empty path defaults to DefaultPath; an
// empty profile defaults to AWS_PROFILE, falling back to DefaultProfile.
func New(env environment.Reader, path, profile string) *Provider {
	if path == "" {
		path = DefaultPath
	}
	if profile == "" {
		if v, ok := env.Lookup("AWS_PROFILE"); ok && v != "" {
			profile = v
		} else {
			profile = DefaultProfile
		}
	}
	return &Provider{path: path, profile: profile, env: env}
}

// GetCredential implements provider.Provider.
func (p *Provider) GetCredential(context.Context) (credential.Credential, error) {
	expanded, err := ini.ExpandHome(p.path)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("sharedcreds: resolving home directory: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("sharedcreds: reading %s: %w", expanded, err)
	}

	profiles, err := ini.Parse(data)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("sharedcreds: parsing %s: %w", expanded, err)
	}

	fields, ok := profiles[p.profile]
	if !ok {
		return credential.Credential{}, &ErrMissingProfile{Name: p.profile}
	}

	accessKeyID := fields["aws_access_key_id"]
	if accessKeyID == "" {
		return credential.Credential{}, ErrMissingAccessKeyID
	}
	secretAccessKey := fields["aws_secret_access_key"]
	if secretAccessKey == "" {
		return credential.Credential{}, ErrMissingSecretAccessKey
	}

	cred := credential.New(p.env, accessKeyID, secretAccessKey, fields["aws_session_token"], nil)
	return cred.WithSource("config_file"), nil
}
