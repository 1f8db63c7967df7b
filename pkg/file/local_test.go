package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/file/filetest"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("creates base directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "uploads")
		_, err := file.NewLocalStorage(dir, "/files")
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty base directory", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("", "/files/")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestLocalStorage_Save(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	storage, err := file.NewLocalStorage(dir, "/files/")
	require.NoError(t, err)

	t.Run("saves under key", func(t *testing.T) {
		t.Parallel()
		content := filetest.Sized(filetest.PNG, 1024)
		fh := filetest.FileHeader(t, "front.png", content)

		f, err := storage.Save(context.Background(), fh, "users/u1/document1.png")
		require.NoError(t, err)

		assert.Equal(t, "users/u1/document1.png", f.Key)
		assert.Equal(t, "front.png", f.Filename)
		assert.Equal(t, int64(len(content)), f.Size)
		assert.Equal(t, "image/png", f.MediaType)
		assert.FileExists(t, filepath.Join(dir, f.Key))
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()
		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(context.Background(), fh, "../../../etc/passwd")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()
		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(context.Background(), fh, "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		_, err := storage.Save(context.Background(), nil, "a.png")
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(ctx, fh, "canceled.png")
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(dir, "canceled.png"))
	})
}

func TestLocalStorage_UploadTimeout(t *testing.T) {
	t.Parallel()
	storage, err := file.NewLocalStorage(t.TempDir(), "/files/", file.WithLocalUploadTimeout(time.Minute))
	require.NoError(t, err)

	fh := filetest.FileHeader(t, "x.jpg", filetest.JPEG)
	f, err := storage.Save(context.Background(), fh, "x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", f.MediaType)
}

func TestLocalStorage_Delete(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	storage, err := file.NewLocalStorage(dir, "/files/")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("removes file", func(t *testing.T) {
		t.Parallel()
		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(ctx, fh, "del/x.png")
		require.NoError(t, err)

		require.NoError(t, storage.Delete(ctx, "del/x.png"))
		assert.NoFileExists(t, filepath.Join(dir, "del", "x.png"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		err := storage.Delete(ctx, "missing.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("refuses directory", func(t *testing.T) {
		t.Parallel()
		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(ctx, fh, "dir/inner/x.png")
		require.NoError(t, err)

		err = storage.Delete(ctx, "dir/inner")
		assert.ErrorIs(t, err, file.ErrIsDirectory)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		err := storage.Delete(ctx, "../outside.png")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()
	storage, err := file.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	assert.Equal(t, "/files/users/u1/document1.png", storage.URL("users/u1/document1.png"))
	assert.Equal(t, "/absolute.png", storage.URL("/absolute.png"))
}

func TestNewStorage(t *testing.T) {
	t.Parallel()

	t.Run("local driver", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewStorage(context.Background(), file.Config{Driver: file.DriverLocal, LocalDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &file.LocalStorage{}, s)
	})

	t.Run("s3 driver", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewStorage(context.Background(), file.Config{
			Driver: file.DriverS3,
			S3:     file.S3Config{Bucket: "docs", Region: "ap-northeast-1"},
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.IsType(t, &file.S3Storage{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewStorage(context.Background(), file.Config{Driver: "ftp"})
		assert.ErrorIs(t, err, file.ErrUnknownDriver)
	})
}
