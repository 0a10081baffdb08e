//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marmos91/filevault/pkg/models"
)

// setupPostgresStore starts a disposable PostgreSQL container and opens a
// GORMStore against it.
func setupPostgresStore(t *testing.T) *GORMStore {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("filevault_test"),
		postgres.WithUsername("filevault_test"),
		postgres.WithPassword("filevault_test"),
		testcontainers.WithWaitStrategyAndDeadline(5*time.Minute,
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	s, err := New(&Config{
		Type: DatabaseTypePostgres,
		Postgres: PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			Database: "filevault_test",
			User:     "filevault_test",
			Password: "filevault_test",
			SSLMode:  "disable",
		},
	})
	if err != nil {
		t.Fatalf("failed to create postgres store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	user := &models.User{Email: "pg@example.com", PasswordHash: "hash"}
	userID, err := s.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	file := &models.File{UserID: userID, Name: "doc.txt", Type: "file", LocalPath: "/tmp/x"}
	fileID, err := s.CreateFile(ctx, file)
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	got, err := s.GetUserFile(ctx, fileID, userID)
	if err != nil {
		t.Fatalf("GetUserFile failed: %v", err)
	}
	if got.Name != "doc.txt" || got.ParentID != models.RootParentID {
		t.Errorf("GetUserFile = %+v", got)
	}

	updated, err := s.SetFilePublic(ctx, fileID, userID, true)
	if err != nil {
		t.Fatalf("SetFilePublic failed: %v", err)
	}
	if !updated.IsPublic {
		t.Error("IsPublic = false after publish")
	}

	files, err := s.ListFiles(ctx, userID, nil, 0)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("ListFiles = %d files, want 1", len(files))
	}
}

func TestPostgresDuplicateEmail(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &models.User{Email: "dup@example.com", PasswordHash: "a"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := s.CreateUser(ctx, &models.User{Email: "dup@example.com", PasswordHash: "b"}); !errors.Is(err, models.ErrDuplicateUser) {
		t.Errorf("CreateUser duplicate = %v, want ErrDuplicateUser", err)
	}
}
