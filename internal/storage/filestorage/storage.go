package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"spotguide/internal/storage"
)

// FileStorage is the object store photos are uploaded to. Keys are slash
// separated paths relative to the storage root.
type FileStorage interface {
	Upload(ctx context.Context, key string, file *multipart.FileHeader) (size int64, err error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

// LocalFileStorage keeps objects on the local disk and hands out URLs under baseURL.
type LocalFileStorage struct {
	baseDir string // e.g. "./uploads"
	baseURL string // e.g. "http://localhost:8080/uploads"
	maxSize int64  // 0 disables the limit
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Upload writes file under key. It never overwrites: if the key is already
// taken the call fails with storage.ErrObjectExists and the existing object is
// left untouched.
func (s *LocalFileStorage) Upload(ctx context.Context, key string, file *multipart.FileHeader) (int64, error) {
	const op = "filestorage.LocalFileStorage.Upload"

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fullPath, err := s.resolve(key)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, fmt.Errorf("%s: %s: %w", op, key, storage.ErrObjectExists)
		}
		return 0, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return 0, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return 0, ctx.Err()
	}

	return size, nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, key string) error {
	const op = "filestorage.LocalFileStorage.Delete"

	fullPath, err := s.resolve(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %s: %w", op, key, storage.ErrObjectNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LocalFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return err == nil, err
}

// PublicURL builds the URL an object is served from. It does no I/O and does
// not check that the object exists.
func (s *LocalFileStorage) PublicURL(key string) string {
	parts := strings.Split(strings.Trim(filepath.ToSlash(key), "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}

	return s.baseURL + "/" + strings.Join(parts, "/")
}

// GetFullPath returns the on-disk location of key.
func (s *LocalFileStorage) GetFullPath(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

// resolve maps key onto the storage root, rejecting keys that escape it.
func (s *LocalFileStorage) resolve(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", storage.ErrInvalidKey
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", storage.ErrInvalidKey, key)
	}

	return filepath.Join(s.baseDir, clean), nil
}
