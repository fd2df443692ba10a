package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFixtureSource_PutAndOpen(t *testing.T) {
	src := NewLocalFixtureSource(t.TempDir())
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, "2025/fixture.json", strings.NewReader(`{"hosts":["SWE"]}`)))

	rc, err := src.Open(ctx, "2025/fixture.json")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"hosts":["SWE"]}`, string(body))

	// overwrite
	require.NoError(t, src.Put(ctx, "2025/fixture.json", strings.NewReader(`{}`)))
	rc2, err := src.Open(ctx, "2025/fixture.json")
	require.NoError(t, err)
	defer rc2.Close()
	body, _ = io.ReadAll(rc2)
	assert.Equal(t, `{}`, string(body))
}

func TestLocalFixtureSource_NotFound(t *testing.T) {
	src := NewLocalFixtureSource(t.TempDir())
	_, err := src.Open(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestLocalFixtureSource_RejectsEscapingKeys(t *testing.T) {
	src := NewLocalFixtureSource(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "../secret.json", "/etc/passwd", "a/../../b.json"} {
		_, err := src.Open(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidFixtureKey, "open %q", key)
		err = src.Put(ctx, key, strings.NewReader("{}"))
		assert.ErrorIs(t, err, ErrInvalidFixtureKey, "put %q", key)
	}
}

type fakeObjectAPI struct {
	objects map[string]string
	getErr  error
	putErr  error
	lastPut *s3.PutObjectInput
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = string(body)
	f.lastPut = params
	return &s3.PutObjectOutput{}, nil
}

func TestR2FixtureSource(t *testing.T) {
	api := &fakeObjectAPI{objects: map[string]string{}}
	src := newR2FixtureSource(api, "fixtures")
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, "t/1.json", strings.NewReader(`{"schedule":[]}`)))
	assert.Equal(t, "fixtures", *api.lastPut.Bucket)
	assert.Equal(t, "application/json", *api.lastPut.ContentType)

	rc, err := src.Open(ctx, "t/1.json")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, `{"schedule":[]}`, string(body))

	_, err = src.Open(ctx, "t/2.json")
	assert.ErrorIs(t, err, ErrFixtureNotFound)

	api.getErr = errors.New("connection reset")
	_, err = src.Open(ctx, "t/1.json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFixtureNotFound)

	api.putErr = errors.New("denied")
	assert.Error(t, src.Put(ctx, "t/3.json", strings.NewReader("{}")))
}

func TestNewCloudflareR2FixtureSource_RequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2FixtureSource(context.Background(), CloudflareR2Config{AccountID: "acc"})
	assert.Error(t, err)
}
