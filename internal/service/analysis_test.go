package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/watch"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	reads   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) PresignPutURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://storage.test/" + key, nil
}

func (f *fakeStorage) GetURL(key string) string { return "http://storage.test/" + key }

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

type fakeDescriber struct {
	mu          sync.Mutex
	calls       int
	description string
	err         error
}

func (f *fakeDescriber) DescribeImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.description, f.err
}

func (f *fakeDescriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newAnalysisTestRepo(t *testing.T) *repository.PhotoRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return repository.NewPhotoRepository(db)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestAnalysisService(
	photos *repository.PhotoRepository,
	objects *fakeStorage,
	vlm ImageDescriber,
) *AnalysisService {
	return NewAnalysisService(photos, objects, vlm, nil, logger.NewDefault())
}

func TestAnalysisService_Success(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "A sepia photo of a temple."}
	svc := newTestAnalysisService(photos, objects, vlm)
	ctx := context.Background()

	require.NoError(t, objects.Upload(ctx, "key-1", bytes.NewReader(pngBytes(t)), 0, "image/png"))
	id, err := photos.Create(ctx, domain.SessionScope("session_test00001"), "key-1")
	require.NoError(t, err)

	svc.DescribePhoto(ctx, id)

	photo, err := photos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhotoStatusDone, photo.Status)
	assert.Equal(t, "A sepia photo of a temple.", photo.Description)
	assert.Empty(t, photo.Error)
	assert.Equal(t, 1, vlm.callCount())
}

func TestAnalysisService_MissingRecord(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "unused"}
	svc := newTestAnalysisService(photos, objects, vlm)

	svc.DescribePhoto(context.Background(), "no-such-photo")

	// No record exists to write to; neither storage nor the model is touched.
	assert.Equal(t, 0, objects.reads)
	assert.Equal(t, 0, vlm.callCount())
}

func TestAnalysisService_MissingObject(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "unused"}
	svc := newTestAnalysisService(photos, objects, vlm)
	ctx := context.Background()

	id, err := photos.Create(ctx, domain.SessionScope("session_test00002"), "dangling-key")
	require.NoError(t, err)

	svc.DescribePhoto(ctx, id)

	photo, err := photos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhotoStatusError, photo.Status)
	assert.Equal(t, ErrMsgDownloadFailed, photo.Error)
	assert.Equal(t, 0, vlm.callCount(), "model must not be called when the download fails")
}

func TestAnalysisService_EmptyObject(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "unused"}
	svc := newTestAnalysisService(photos, objects, vlm)
	ctx := context.Background()

	require.NoError(t, objects.Upload(ctx, "empty-key", bytes.NewReader(nil), 0, "image/png"))
	id, err := photos.Create(ctx, domain.SessionScope("session_test00003"), "empty-key")
	require.NoError(t, err)

	svc.DescribePhoto(ctx, id)

	photo, err := photos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ErrMsgDownloadFailed, photo.Error)
	assert.Equal(t, 0, vlm.callCount())
}

func TestAnalysisService_ModelFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "rate limited",
			err:     &APIError{StatusCode: 429, Code: "rate_limit_exceeded", Message: "Rate limit reached"},
			wantMsg: ErrMsgRateLimited,
		},
		{
			name:    "quota exhausted",
			err:     &APIError{StatusCode: 403, Code: "insufficient_quota", Message: "You exceeded your current quota"},
			wantMsg: ErrMsgQuotaExceeded,
		},
		{
			name:    "provider message passthrough",
			err:     &APIError{StatusCode: 400, Message: "Invalid image payload"},
			wantMsg: "Invalid image payload",
		},
		{
			name:    "provider error without message",
			err:     &APIError{StatusCode: 500},
			wantMsg: ErrMsgGeneric,
		},
		{
			name:    "deadline exceeded",
			err:     context.DeadlineExceeded,
			wantMsg: ErrMsgTimeout,
		},
		{
			name:    "opaque transport failure",
			err:     errors.New("connection reset by peer"),
			wantMsg: ErrMsgGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photos := newAnalysisTestRepo(t)
			objects := newFakeStorage()
			vlm := &fakeDescriber{err: tt.err}
			svc := newTestAnalysisService(photos, objects, vlm)
			ctx := context.Background()

			require.NoError(t, objects.Upload(ctx, "key", bytes.NewReader(pngBytes(t)), 0, "image/png"))
			id, err := photos.Create(ctx, domain.SessionScope("session_test00004"), "key")
			require.NoError(t, err)

			svc.DescribePhoto(ctx, id)

			photo, err := photos.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, domain.PhotoStatusError, photo.Status)
			assert.Equal(t, tt.wantMsg, photo.Error)
			assert.Empty(t, photo.Description)
		})
	}
}

func TestAnalysisService_DuplicateDeliveryDiscarded(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "first result"}
	svc := newTestAnalysisService(photos, objects, vlm)
	ctx := context.Background()

	require.NoError(t, objects.Upload(ctx, "key", bytes.NewReader(pngBytes(t)), 0, "image/png"))
	id, err := photos.Create(ctx, domain.SessionScope("session_test00005"), "key")
	require.NoError(t, err)

	svc.DescribePhoto(ctx, id)

	// Second delivery of the same job produces a different result, which
	// must lose against the already stored one.
	vlm.mu.Lock()
	vlm.description = "second result"
	vlm.mu.Unlock()
	svc.DescribePhoto(ctx, id)

	photo, err := photos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhotoStatusDone, photo.Status)
	assert.Equal(t, "first result", photo.Description)
}

func TestAnalysisService_PublishesTerminalEvent(t *testing.T) {
	photos := newAnalysisTestRepo(t)
	objects := newFakeStorage()
	vlm := &fakeDescriber{description: "published result"}

	published := make(chan watch.Event, 1)
	svc := NewAnalysisService(photos, objects, vlm, publishFunc(func(ctx context.Context, event watch.Event) error {
		published <- event
		return nil
	}), logger.NewDefault())
	ctx := context.Background()

	require.NoError(t, objects.Upload(ctx, "key", bytes.NewReader(pngBytes(t)), 0, "image/png"))
	id, err := photos.Create(ctx, domain.SessionScope("session_test00006"), "key")
	require.NoError(t, err)

	svc.DescribePhoto(ctx, id)

	select {
	case event := <-published:
		assert.Equal(t, id, event.PhotoID)
		assert.Equal(t, domain.PhotoStatusDone, event.Status)
		assert.Equal(t, "published result", event.Description)
	default:
		t.Fatal("no status event was published")
	}
}

type publishFunc func(ctx context.Context, event watch.Event) error

func (f publishFunc) Publish(ctx context.Context, event watch.Event) error {
	return f(ctx, event)
}

func TestClassifyModelError(t *testing.T) {
	assert.Equal(t, ErrMsgRateLimited, classifyModelError(&APIError{StatusCode: 429}))
	assert.Equal(t, ErrMsgQuotaExceeded, classifyModelError(&APIError{Code: "insufficient_quota"}))
	assert.Equal(t, "custom upstream message", classifyModelError(&APIError{Message: "custom upstream message"}))
	assert.Equal(t, ErrMsgGeneric, classifyModelError(&APIError{}))
	assert.Equal(t, ErrMsgTimeout, classifyModelError(context.DeadlineExceeded))
	assert.Equal(t, ErrMsgGeneric, classifyModelError(errors.New("boom")))
}

func TestSniffMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", sniffMIMEType(pngBytes(t)))
	assert.Equal(t, "image/jpeg", sniffMIMEType([]byte("not an image")))
}
