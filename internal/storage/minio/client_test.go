package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/eventhub-server/internal/model"
)

// fakeObjects implements objectAPI in memory.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	objects     map[string][]byte
	contentType map[string]string
	putErr      error
	removeErr   error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{bucketExists: true, objects: map[string][]byte{}, contentType: map[string]string{}}
}

var errNoSuchKey = minioLib.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.objects[key] = data
	f.contentType[key] = opts.ContentType
	return minioLib.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, _, key string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errNoSuchKey
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjects) RemoveObject(_ context.Context, _, key string, _ minioLib.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.objects[key]; !ok {
		return errNoSuchKey
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjects) StatObject(_ context.Context, _, key string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	data, ok := f.objects[key]
	if !ok {
		return minioLib.ObjectInfo{}, errNoSuchKey
	}
	return minioLib.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: f.contentType[key]}, nil
}

func TestNewClient_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		api := newFakeObjects()
		c, err := newClient(ctx, api, "avatars")
		require.NoError(t, err)
		assert.Equal(t, "avatars", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExists = false
		_, err := newClient(ctx, api, "avatars")
		require.NoError(t, err)
		assert.Equal(t, "avatars", api.madeBucket)
	})

	t.Run("stat error", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExistsErr = errors.New("boom")
		c, err := newClient(ctx, api, "avatars")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to check bucket existence")
	})

	t.Run("create error", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExists = false
		api.makeBucketErr = errors.New("fail")
		c, err := newClient(ctx, api, "avatars")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}

func TestClient_UploadDownload(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjects()
	c := &Client{api: api, bucket: "avatars"}

	require.NoError(t, c.Upload(ctx, "avatars/u1", bytes.NewReader([]byte("png-bytes")), 9, "image/png"))
	assert.Equal(t, "image/png", api.contentType["avatars/u1"])

	ok, err := c.Exists(ctx, "avatars/u1")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := c.Download(ctx, "avatars/u1")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestClient_Upload_Error(t *testing.T) {
	api := newFakeObjects()
	api.putErr = errors.New("put-fail")
	c := &Client{api: api, bucket: "avatars"}

	err := c.Upload(context.Background(), "k", bytes.NewReader([]byte("x")), 1, "image/png")
	assert.ErrorContains(t, err, "failed to upload object")
}

func TestClient_MissingKey(t *testing.T) {
	ctx := context.Background()
	c := &Client{api: newFakeObjects(), bucket: "avatars"}

	ok, err := c.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Download(ctx, "nope")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, c.Delete(ctx, "nope"))
}

func TestClient_Delete_Error(t *testing.T) {
	api := newFakeObjects()
	api.removeErr = errors.New("remove-fail")
	c := &Client{api: api, bucket: "avatars"}

	err := c.Delete(context.Background(), "k")
	assert.ErrorContains(t, err, "failed to delete object")
}
