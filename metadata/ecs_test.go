package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soto-project/aws-credential-core/httpclient"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/logging"
)

func TestECSClientNoEnvVar(t *testing.T) {
	c := NewECSClient(httpclient.New(nil), environment.Map{}, logging.NewNoOpLogger())
	_, err := c.GetCredential(context.Background())
	require.ErrorIs(t, err, ErrNoECSMetadataService)
}

func TestECSClientHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/creds/task-role", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"AccessKeyId":"abc123","SecretAccessKey":"123abc","Token":"xyz987","Expiration":"2030-01-01T00:00:00Z","RoleArn":"arn"}`))
	}))
	defer srv.Close()

	c := NewECSClient(httpclient.New(nil), environment.Map{ecsRelativePathEnvVar: "/creds/task-role"}, logging.NewNoOpLogger())
	c.host = srv.URL

	cred, err := c.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", cred.AccessKeyID)
	require.Equal(t, "123abc", cred.SecretAccessKey)
	require.Equal(t, "xyz987", cred.SessionToken)
	require.NotNil(t, cred.Expiration)
	require.True(t, cred.Expiration.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestECSClientEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewECSClient(httpclient.New(nil), environment.Map{ecsRelativePathEnvVar: "/x"}, logging.NewNoOpLogger())
	c.host = srv.URL

	_, err := c.GetCredential(context.Background())
	require.ErrorIs(t, err, ErrMissingMetadata)
}
