package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultExecuteGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok", r.Header.Get("X-Test-Token"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := New(nil)
	resp, err := c.Execute(context.Background(), &Request{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"X-Test-Token": "tok"},
	}, time.Second)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, "hello", string(resp.Body))
}

func TestDefaultExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(nil)
	_, err := c.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL}, time.Millisecond)
	require.Error(t, err)
}
