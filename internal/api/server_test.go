package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/filevault/pkg/auth"
	"github.com/marmos91/filevault/pkg/content"
	"github.com/marmos91/filevault/pkg/files"
	"github.com/marmos91/filevault/pkg/session"
	"github.com/marmos91/filevault/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sessions := session.NewMemoryStore()
	gate := auth.NewGate(sessions, st)
	svc := files.NewService(st, content.NewFilesystemStore(t.TempDir()))

	return NewServer(Config{}, gate, svc, st, sessions)
}

func TestSetShutdownTimeout(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, DefaultShutdownTimeout, srv.shutdownTimeout)

	srv.SetShutdownTimeout(60 * time.Second)
	assert.Equal(t, 60*time.Second, srv.shutdownTimeout)

	// Zero and negative keep the last valid value
	srv.SetShutdownTimeout(0)
	assert.Equal(t, 60*time.Second, srv.shutdownTimeout)

	srv.SetShutdownTimeout(-time.Second)
	assert.Equal(t, 60*time.Second, srv.shutdownTimeout)
}
