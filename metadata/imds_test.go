package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soto-project/aws-credential-core/httpclient"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/logging"
)

func credentialBody() string {
	return `{"Code":"Success","LastUpdated":"2020-01-01T00:00:00Z","Type":"AWS-HMAC","AccessKeyId":"abc123","SecretAccessKey":"123abc","Token":"xyz987","Expiration":"2030-01-01T00:00:00Z"}`
}

func TestIMDSClientV2HappyPath(t *testing.T) {
	var sawToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == imdsTokenPath:
			require.Equal(t, imdsTokenTTLSeconds, r.Header.Get(imdsTokenTTLHeader))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("AQAE-token"))
		case r.Method == http.MethodGet && r.URL.Path == imdsRolePath:
			sawToken = r.Header.Get(imdsTokenHeader)
			require.Equal(t, "AQAE-token", sawToken)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("my-role"))
		case r.Method == http.MethodGet && r.URL.Path == imdsRolePath+"my-role":
			require.Equal(t, "AQAE-token", r.Header.Get(imdsTokenHeader))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(credentialBody()))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewIMDSClient(httpclient.New(nil), environment.Map{}, logging.NewNoOpLogger())
	c.host = srv.URL

	cred, err := c.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", cred.AccessKeyID)
	require.Equal(t, "AQAE-token", sawToken)
}

func TestIMDSClientFallsBackToV1WhenTokenRequestFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == imdsTokenPath:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodGet && r.URL.Path == imdsRolePath:
			require.Empty(t, r.Header.Get(imdsTokenHeader))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("my-role"))
		case r.Method == http.MethodGet && r.URL.Path == imdsRolePath+"my-role":
			require.Empty(t, r.Header.Get(imdsTokenHeader))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(credentialBody()))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewIMDSClient(httpclient.New(nil), environment.Map{}, logging.NewNoOpLogger())
	c.host = srv.URL

	cred, err := c.GetCredential(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", cred.AccessKeyID)
}

func TestIMDSClientRoleLookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodGet && r.URL.Path == imdsRolePath:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewIMDSClient(httpclient.New(nil), environment.Map{}, logging.NewNoOpLogger())
	c.host = srv.URL

	_, err := c.GetCredential(context.Background())
	require.ErrorIs(t, err, ErrCouldNotGetInstanceRoleName)
}
