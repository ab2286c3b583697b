package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"spotguide/internal/storage"
	filestorage "spotguide/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T, maxSize int64) *filestorage.LocalFileStorage {
	t.Helper()

	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "http://test.local/uploads/", maxSize)
	require.NoError(t, err)

	return fs
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("successful upload", func(t *testing.T) {
		fs := setupFileStorage(t, 0)
		file := createTestFile(t, "sunset.jpg", "test content")

		size, err := fs.Upload(ctx, "spots/sunset.jpg", file)
		require.NoError(t, err)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(fs.GetFullPath("spots/sunset.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("existing key is not overwritten", func(t *testing.T) {
		fs := setupFileStorage(t, 0)

		_, err := fs.Upload(ctx, "sunset.jpg", createTestFile(t, "a.jpg", "first"))
		require.NoError(t, err)

		_, err = fs.Upload(ctx, "sunset.jpg", createTestFile(t, "b.jpg", "second"))
		assert.ErrorIs(t, err, storage.ErrObjectExists)

		data, err := os.ReadFile(fs.GetFullPath("sunset.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("keys escaping the root are rejected", func(t *testing.T) {
		fs := setupFileStorage(t, 0)
		file := createTestFile(t, "x.jpg", "x")

		for _, key := range []string{"", "../x.jpg", "/etc/passwd", "a/../../x.jpg"} {
			_, err := fs.Upload(ctx, key, file)
			assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		fs := setupFileStorage(t, 4)

		_, err := fs.Upload(ctx, "big.jpg", createTestFile(t, "big.jpg", "too large"))
		assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := setupFileStorage(t, 0)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fs.Upload(ctx, "x.jpg", createTestFile(t, "x.jpg", "x"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid file header", func(t *testing.T) {
		fs := setupFileStorage(t, 0)

		_, err := fs.Upload(ctx, "bad.txt", &multipart.FileHeader{Filename: "bad.txt"})
		assert.Error(t, err)

		exists, err := fs.Exists(ctx, "bad.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestLocalFileStorage_ConcurrentUploadSameKey(t *testing.T) {
	fs := setupFileStorage(t, 0)
	ctx := context.Background()
	file := createTestFile(t, "race.jpg", "data")

	var wg sync.WaitGroup
	var ok int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fs.Upload(ctx, "race.jpg", file); err == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t, 0)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		_, err := fs.Upload(ctx, "to_delete.jpg", createTestFile(t, "to_delete.jpg", "content"))
		require.NoError(t, err)

		require.NoError(t, fs.Delete(ctx, "to_delete.jpg"))

		_, err = os.Stat(fs.GetFullPath("to_delete.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		err := fs.Delete(ctx, "nonexistent.jpg")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})
}

func TestLocalFileStorage_PublicURL(t *testing.T) {
	fs := setupFileStorage(t, 0)

	assert.Equal(t, "http://test.local/uploads", fs.BaseURL())
	assert.Equal(t, "http://test.local/uploads/sunset.jpg", fs.PublicURL("sunset.jpg"))
	assert.Equal(t, "http://test.local/uploads/spots/old%20town.jpg", fs.PublicURL("/spots/old town.jpg"))
	// deterministic
	assert.Equal(t, fs.PublicURL("a/b.jpg"), fs.PublicURL("a/b.jpg"))
}

func TestLocalFileStorage_GetFullPath(t *testing.T) {
	fs := setupFileStorage(t, 0)

	assert.Equal(t, filepath.Join(fs.GetBaseDir(), "test", "file.jpg"), fs.GetFullPath("test/file.jpg"))
}

func TestNewLocalFileStorage(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "http://test.local", 0)
		require.NoError(t, err)
		assert.NotNil(t, fs)
	})

	t.Run("invalid directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := filestorage.NewLocalFileStorage(filepath.Join(file, "sub"), "http://test.local", 0)
		assert.Error(t, err)
	})
}
