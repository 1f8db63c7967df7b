package file_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/file/filetest"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3Storage(t *testing.T, client *MockS3Client) *file.S3Storage {
	t.Helper()
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "documents",
		Region: "ap-northeast-1",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "ap-northeast-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("default base url", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client))
		assert.Equal(t, "https://documents.s3.ap-northeast-1.amazonaws.com/users/u1/document1.png", storage.URL("/users/u1/document1.png"))
	})

	t.Run("custom endpoint base url", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "documents",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000/",
			ForcePathStyle: true,
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/documents/a.png", storage.URL("a.png"))
	})

	t.Run("explicit base url", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:  "documents",
			Region:  "us-east-1",
			BaseURL: "https://cdn.example.com",
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", storage.URL("a.png"))
	})
}

func TestS3Storage_Save(t *testing.T) {
	t.Parallel()

	t.Run("uploads with detected content type", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "documents" &&
				*in.Key == "users/u1/document1.jpg" &&
				*in.ContentType == "image/jpeg"
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		fh := filetest.FileHeader(t, "front.png", filetest.JPEG)
		f, err := storage.Save(context.Background(), fh, "/users/u1/document1.jpg")
		require.NoError(t, err)
		assert.Equal(t, "users/u1/document1.jpg", f.Key)
		assert.Equal(t, "image/jpeg", f.MediaType)
		client.AssertExpectations(t)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}).Once()

		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(context.Background(), fh, "x.png")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("classifies deadline", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).Once()

		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(context.Background(), fh, "x.png")
		assert.ErrorIs(t, err, file.ErrOperationTimeout)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client))
		fh := filetest.FileHeader(t, "x.png", filetest.PNG)
		_, err := storage.Save(context.Background(), fh, "a/../../b.png")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("HeadObject", mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil).Once()
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return *in.Key == "users/u1/document1.png"
		})).Return(&s3.DeleteObjectOutput{}, nil).Once()

		require.NoError(t, storage.Delete(context.Background(), "users/u1/document1.png"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NotFound{}).Once()

		err := storage.Delete(context.Background(), "missing.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3Storage(t, client)

		client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchBucket{}).Once()

		err := storage.Delete(context.Background(), "x.png")
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})
}
