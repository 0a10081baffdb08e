package files

import (
	"context"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/filevault/pkg/content"
	"github.com/marmos91/filevault/pkg/models"
	"github.com/marmos91/filevault/pkg/store"
)

func setupService(t *testing.T) (*Service, *store.GORMStore, *content.FilesystemStore) {
	t.Helper()

	metaStore, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = metaStore.Close() })

	contentStore := content.NewFilesystemStore(t.TempDir())
	return NewService(metaStore, contentStore), metaStore, contentStore
}

func createUser(t *testing.T, s *store.GORMStore, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	_, err := s.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCreateFolder(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, user, CreateRequest{Name: "Photos", Type: "folder"})
	require.NoError(t, err)

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "folder", file.Type)
	assert.Equal(t, models.RootParentID, file.ParentID)
	assert.Empty(t, file.LocalPath)
	assert.False(t, file.IsPublic)
}

func TestCreateValidation(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"missing name", CreateRequest{Type: "folder"}, models.ErrMissingName},
		{"missing type", CreateRequest{Name: "a"}, models.ErrMissingType},
		{"invalid type", CreateRequest{Name: "a", Type: "link"}, models.ErrMissingType},
		{"missing data", CreateRequest{Name: "a.txt", Type: "file"}, models.ErrMissingData},
		{"invalid base64", CreateRequest{Name: "a.txt", Type: "file", Data: "!!!not-base64!!!"}, models.ErrMissingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, user, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateContentRoundTrip(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	folder, err := svc.Create(ctx, user, CreateRequest{Name: "Photos", Type: "folder"})
	require.NoError(t, err)

	file, err := svc.Create(ctx, user, CreateRequest{
		Name:     "hello.txt",
		Type:     "file",
		ParentID: folder.ID,
		Data:     b64("hello"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, file.LocalPath)
	assert.Equal(t, folder.ID, file.ParentID)

	shown, err := svc.Show(ctx, user, file.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, shown.LocalPath)

	data, mimeType, err := svc.ReadContent(ctx, user, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Contains(t, mimeType, "text/plain")
}

func TestCreateParentValidation(t *testing.T) {
	svc, metaStore, contentStore := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	other := createUser(t, metaStore, "bob@example.com")
	ctx := context.Background()

	notAFolder, err := svc.Create(ctx, user, CreateRequest{Name: "doc.txt", Type: "file", Data: b64("doc")})
	require.NoError(t, err)

	othersFolder, err := svc.Create(ctx, other, CreateRequest{Name: "Private", Type: "folder"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		parentID string
		wantErr  error
	}{
		{"parent missing", "11111111-1111-1111-1111-111111111111", models.ErrParentNotFound},
		{"parent not a folder", notAFolder.ID, models.ErrParentNotFolder},
		{"parent owned by someone else", othersFolder.ID, models.ErrParentNotFound},
	}

	countBefore, err := metaStore.CountFiles(ctx)
	require.NoError(t, err)
	entriesBefore, err := os.ReadDir(contentStore.Root())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, user, CreateRequest{
				Name:     "x.txt",
				Type:     "file",
				ParentID: tt.parentID,
				Data:     b64("x"),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Failed creates left neither metadata nor content behind
	countAfter, err := metaStore.CountFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, countBefore, countAfter)

	entriesAfter, err := os.ReadDir(contentStore.Root())
	require.NoError(t, err)
	assert.Len(t, entriesAfter, len(entriesBefore))
}

func TestShowOwnershipIsolation(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	owner := createUser(t, metaStore, "alice@example.com")
	stranger := createUser(t, metaStore, "bob@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, owner, CreateRequest{Name: "secret.txt", Type: "file", Data: b64("s")})
	require.NoError(t, err)

	tests := []struct {
		name string
		user *models.User
		id   string
	}{
		{"not the owner", stranger, file.ID},
		{"nonexistent id", owner, "22222222-2222-2222-2222-222222222222"},
		{"malformed id", owner, "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Show(ctx, tt.user, tt.id)
			assert.ErrorIs(t, err, models.ErrFileNotFound)
		})
	}
}

func TestListPagination(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, user, CreateRequest{Name: "folder", Type: "folder"})
		require.NoError(t, err)
	}

	page0, err := svc.List(ctx, user, nil, 0)
	require.NoError(t, err)
	require.Len(t, page0, store.PageSize)

	page1, err := svc.List(ctx, user, nil, 1)
	require.NoError(t, err)
	require.Len(t, page1, 5)

	// Pages are disjoint and stable
	seen := make(map[string]bool)
	for _, f := range page0 {
		seen[f.ID] = true
	}
	for _, f := range page1 {
		assert.False(t, seen[f.ID], "file %s appears on both pages", f.ID)
	}

	again, err := svc.List(ctx, user, nil, 0)
	require.NoError(t, err)
	for i := range page0 {
		assert.Equal(t, page0[i].ID, again[i].ID, "page 0 order changed between calls")
	}

	// Past the end: empty result, not an error
	page5, err := svc.List(ctx, user, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, page5)

	// Negative page is treated as page zero
	negative, err := svc.List(ctx, user, nil, -3)
	require.NoError(t, err)
	require.Len(t, negative, store.PageSize)
	assert.Equal(t, page0[0].ID, negative[0].ID)
}

func TestListParentFilter(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	folder, err := svc.Create(ctx, user, CreateRequest{Name: "Docs", Type: "folder"})
	require.NoError(t, err)

	child, err := svc.Create(ctx, user, CreateRequest{Name: "in.txt", Type: "file", ParentID: folder.ID, Data: b64("a")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, user, CreateRequest{Name: "out.txt", Type: "file", Data: b64("b")})
	require.NoError(t, err)

	children, err := svc.List(ctx, user, &folder.ID, 0)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	rootID := models.RootParentID
	rootFiles, err := svc.List(ctx, user, &rootID, 0)
	require.NoError(t, err)
	assert.Len(t, rootFiles, 2) // the folder and out.txt

	all, err := svc.List(ctx, user, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSetVisibilityIdempotent(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, user, CreateRequest{Name: "pic.png", Type: "image", Data: b64("png")})
	require.NoError(t, err)
	require.False(t, file.IsPublic)

	first, err := svc.SetVisibility(ctx, user, file.ID, true)
	require.NoError(t, err)
	assert.True(t, first.IsPublic)

	second, err := svc.SetVisibility(ctx, user, file.ID, true)
	require.NoError(t, err)
	assert.True(t, second.IsPublic)
	assert.Equal(t, first.ID, second.ID)

	back, err := svc.SetVisibility(ctx, user, file.ID, false)
	require.NoError(t, err)
	assert.False(t, back.IsPublic)
}

func TestSetVisibilityOwnership(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	owner := createUser(t, metaStore, "alice@example.com")
	stranger := createUser(t, metaStore, "bob@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, owner, CreateRequest{Name: "a.txt", Type: "file", Data: b64("a")})
	require.NoError(t, err)

	_, err = svc.SetVisibility(ctx, stranger, file.ID, true)
	assert.ErrorIs(t, err, models.ErrFileNotFound)

	// Unchanged for the owner
	shown, err := svc.Show(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.False(t, shown.IsPublic)
}

func TestReadContentVisibility(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	owner := createUser(t, metaStore, "alice@example.com")
	stranger := createUser(t, metaStore, "bob@example.com")
	ctx := context.Background()

	private, err := svc.Create(ctx, owner, CreateRequest{Name: "private.txt", Type: "file", Data: b64("secret")})
	require.NoError(t, err)

	// Private: owner only
	data, _, err := svc.ReadContent(ctx, owner, private.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))

	_, _, err = svc.ReadContent(ctx, stranger, private.ID)
	assert.ErrorIs(t, err, models.ErrFileNotFound)

	_, _, err = svc.ReadContent(ctx, nil, private.ID)
	assert.ErrorIs(t, err, models.ErrFileNotFound)

	// Published: anyone, including anonymous
	_, err = svc.SetVisibility(ctx, owner, private.ID, true)
	require.NoError(t, err)

	data, mimeType, err := svc.ReadContent(ctx, nil, private.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))
	assert.Contains(t, mimeType, "text/plain")
}

func TestReadContentFolder(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	folder, err := svc.Create(ctx, user, CreateRequest{Name: "Docs", Type: "folder"})
	require.NoError(t, err)

	_, _, err = svc.ReadContent(ctx, user, folder.ID)
	assert.ErrorIs(t, err, models.ErrFolderHasNoContent)
}

func TestReadContentMissingOnDisk(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, user, CreateRequest{Name: "gone.txt", Type: "file", Data: b64("x")})
	require.NoError(t, err)

	shown, err := metaStore.GetFile(ctx, file.ID)
	require.NoError(t, err)
	require.NoError(t, os.Remove(shown.LocalPath))

	_, _, err = svc.ReadContent(ctx, user, file.ID)
	assert.ErrorIs(t, err, models.ErrFileNotFound)
}

func TestReadContentUnknownExtension(t *testing.T) {
	svc, metaStore, _ := setupService(t)
	user := createUser(t, metaStore, "alice@example.com")
	ctx := context.Background()

	file, err := svc.Create(ctx, user, CreateRequest{Name: "no-extension", Type: "file", Data: b64("x")})
	require.NoError(t, err)

	_, _, err = svc.ReadContent(ctx, user, file.ID)
	assert.ErrorIs(t, err, models.ErrMimeUnresolved)
}
