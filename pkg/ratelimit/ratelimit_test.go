package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotero-notion-sync/pkg/ratelimit"
)

func TestRegistryUnlimited(t *testing.T) {
	r := ratelimit.NewRegistry(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, r.Wait(ctx, "api.example.com"))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestRegistryCancelledContext(t *testing.T) {
	r := ratelimit.NewRegistry(0.01)
	ctx, cancel := context.WithCancel(context.Background())

	// first token is available immediately
	require.NoError(t, r.Wait(ctx, "host"))

	cancel()
	assert.Error(t, r.Wait(ctx, "host"))
}

func TestRegistryKeysAreIndependent(t *testing.T) {
	r := ratelimit.NewRegistry(0.01)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, r.Wait(ctx, "a"))
	require.NoError(t, r.Wait(ctx, "b"))
}

func TestTransport(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := &http.Client{Transport: ratelimit.NewRegistry(100).Transport(nil)}
	for i := 0; i < 3; i++ {
		resp, err := client.Get(ts.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
