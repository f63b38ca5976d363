package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/tasktrack/internal/config"
	"github.com/dreamware/tasktrack/internal/logging"
	"github.com/dreamware/tasktrack/internal/storage"
)

func TestNewHTTPServer(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = ":9999"
	cfg.IdentityHeader = "X-User"
	cfg.ReadHeaderTimeout = 3 * time.Second

	store := storage.NewMemoryStore()
	srv := newHTTPServer(cfg, store, logging.Discard())

	assert.Equal(t, ":9999", srv.Addr)
	assert.Equal(t, 3*time.Second, srv.ReadHeaderTimeout)
	require.NotNil(t, srv.Handler)

	// The configured identity header must reach the router.
	store.CreateUser("Ana", "ana")
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("X-User", "ana")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// freeAddr reserves and releases a local port.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunServesUntilCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logging.Discard()) }()

	url := fmt.Sprintf("http://%s", cfg.Addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(url+"/users", "application/json", strings.NewReader(`{"name":"Ana","username":"ana"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestRunReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := config.Default()
	cfg.Addr = l.Addr().String()

	err = run(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}
