package server

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "app-test"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "sqlite://" + filepath.Join(t.TempDir(), "app.db")
	return c
}

func TestNewApp_RejectsEmptySecret(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c, &syncBuffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestNewApp_RejectsBadLogLevel(t *testing.T) {
	c := testConfig(t)
	c.LogLevel = "loud"

	_, err := NewApp(context.Background(), c, &syncBuffer{})
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	out := &syncBuffer{}
	app, err := NewApp(context.Background(), testConfig(t), out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}

	logs := out.String()
	assert.Contains(t, logs, "Starting gRPC server")
	assert.Contains(t, logs, "Starting GraphQL server")
	assert.Contains(t, logs, "App stopped")
}
