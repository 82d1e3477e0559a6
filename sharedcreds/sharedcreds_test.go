package sharedcreds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soto-project/aws-credential-core/internal/environment"
)

func writeTempCredentialsFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestProviderHappyPath(t *testing.T) {
	path := writeTempCredentialsFile(t, `[default]
aws_access_key_id = AWSACCESSKEYID
aws_secret_access_key = AWSSECRETACCESSKEY
`)
	p := New(environment.Map{}, path, "default")
	cred, err := p.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AWSACCESSKEYID", cred.AccessKeyID)
	require.Equal(t, "AWSSECRETACCESSKEY", cred.SecretAccessKey)
	require.Empty(t, cred.SessionToken)
}

func TestProviderMissingProfile(t *testing.T) {
	path := writeTempCredentialsFile(t, `[default]
aws_access_key_id = AWSACCESSKEYID
aws_secret_access_key = AWSSECRETACCESSKEY
`)
	p := New(environment.Map{}, path, "other")
	_, err := p.GetCredential(context.Background())
	var missing *ErrMissingProfile
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "other", missing.Name)
}

func TestProviderMissingAccessKeyID(t *testing.T) {
	path := writeTempCredentialsFile(t, `[default]
aws_secret_access_key = AWSSECRETACCESSKEY
`)
	p := New(environment.Map{}, path, "default")
	_, err := p.GetCredential(context.Background())
	require.ErrorIs(t, err, ErrMissingAccessKeyID)
}

func TestProviderDefaultsProfileFromEnvironment(t *testing.T) {
	path := writeTempCredentialsFile(t, `[custom]
aws_access_key_id = A
aws_secret_access_key = B
`)
	p := New(environment.Map{"AWS_PROFILE": "custom"}, path, "")
	cred, err := p.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", cred.AccessKeyID)
}

func TestProviderDefaultsProfileToDefault(t *testing.T) {
	path := writeTempCredentialsFile(t, `[default]
aws_access_key_id = A
aws_secret_access_key = B
`)
	p := New(environment.Map{}, path, "")
	cred, err := p.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", cred.AccessKeyID)
}

func TestProviderSessionToken(t *testing.T) {
	path := writeTempCredentialsFile(t, `[default]
aws_access_key_id = A
aws_secret_access_key = B
aws_session_token = TOK
`)
	p := New(environment.Map{}, path, "")
	cred, err := p.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "TOK", cred.SessionToken)
}
