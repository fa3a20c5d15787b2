package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannerdj/wokelens/internal/api/middleware"
	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/scheduler"
	"github.com/tannerdj/wokelens/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubStorage struct {
	presignErr error
}

func (s *stubStorage) EnsureBucket(ctx context.Context) error { return nil }

func (s *stubStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return nil
}

func (s *stubStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStorage) PresignPutURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "http://storage.test/upload/" + key, nil
}

func (s *stubStorage) GetURL(key string) string { return "http://storage.test/" + key }

func (s *stubStorage) Delete(ctx context.Context, key string) error { return nil }

func (s *stubStorage) Exists(ctx context.Context, key string) (bool, error) { return true, nil }

type stubTrigger struct {
	scheduled []scheduler.Job
	delay     time.Duration
	err       error
}

func (s *stubTrigger) Schedule(ctx context.Context, photoID string, delay time.Duration) (scheduler.Job, error) {
	if s.err != nil {
		return scheduler.Job{}, s.err
	}
	job := scheduler.Job{ID: "job-" + photoID, PhotoID: photoID}
	s.scheduled = append(s.scheduled, job)
	s.delay = delay
	return job, nil
}

func newHandlerTestRepo(t *testing.T) *repository.PhotoRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return repository.NewPhotoRepository(db)
}

func newTestRouter(photos *repository.PhotoRepository, objects *stubStorage, trigger *stubTrigger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Scope("test-secret"))

	h := NewPhotoHandler(photos, objects, trigger, nil, 2*time.Second, 15*time.Minute)
	v1 := r.Group("/api/v1")
	v1.POST("/session", h.CreateSession)
	v1.POST("/uploads", h.CreateUpload)
	v1.POST("/photos", h.SavePhoto)
	v1.GET("/photos", h.ListPhotos)
	v1.GET("/photos/:id", h.GetPhoto)
	return r
}

func doJSON(r *gin.Engine, method, path, body, sessionID string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPhotoHandler_CreateSession(t *testing.T) {
	r := newTestRouter(newHandlerTestRepo(t), &stubStorage{}, &stubTrigger{})

	w := doJSON(r, http.MethodPost, "/api/v1/session", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, session.Valid(resp.SessionID))
}

func TestPhotoHandler_CreateUpload(t *testing.T) {
	r := newTestRouter(newHandlerTestRepo(t), &stubStorage{}, &stubTrigger{})

	w := doJSON(r, http.MethodPost, "/api/v1/uploads", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UploadURL  string `json:"upload_url"`
		StorageKey string `json:"storage_key"`
		ExpiresIn  int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.UploadURL, resp.StorageKey)
	assert.True(t, strings.HasPrefix(resp.StorageKey, "photos/"))
	assert.Equal(t, int((15 * time.Minute).Seconds()), resp.ExpiresIn)
}

func TestPhotoHandler_CreateUpload_StorageFailure(t *testing.T) {
	r := newTestRouter(newHandlerTestRepo(t), &stubStorage{presignErr: errors.New("bucket gone")}, &stubTrigger{})

	w := doJSON(r, http.MethodPost, "/api/v1/uploads", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPhotoHandler_SavePhoto(t *testing.T) {
	photos := newHandlerTestRepo(t)
	trigger := &stubTrigger{}
	r := newTestRouter(photos, &stubStorage{}, trigger)
	sessionID := session.NewID()

	w := doJSON(r, http.MethodPost, "/api/v1/photos",
		`{"storage_key":"photos/2026/09/01/key-1"}`, sessionID)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Status)

	photo, err := photos.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, domain.SessionScope(sessionID), photo.Scope())
	assert.Equal(t, "photos/2026/09/01/key-1", photo.StorageKey)

	require.Len(t, trigger.scheduled, 1)
	assert.Equal(t, resp.ID, trigger.scheduled[0].PhotoID)
	assert.Equal(t, 2*time.Second, trigger.delay)
}

func TestPhotoHandler_SavePhoto_MissingKey(t *testing.T) {
	r := newTestRouter(newHandlerTestRepo(t), &stubStorage{}, &stubTrigger{})

	w := doJSON(r, http.MethodPost, "/api/v1/photos", `{}`, session.NewID())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhotoHandler_SavePhoto_ScheduleFailure(t *testing.T) {
	photos := newHandlerTestRepo(t)
	r := newTestRouter(photos, &stubStorage{}, &stubTrigger{err: errors.New("redis down")})
	sessionID := session.NewID()

	w := doJSON(r, http.MethodPost, "/api/v1/photos", `{"storage_key":"key"}`, sessionID)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The record must not be left pending forever.
	list, err := photos.ListByScope(context.Background(), domain.SessionScope(sessionID))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.PhotoStatusError, list[0].Status)
}

func TestPhotoHandler_GetPhoto_Scoping(t *testing.T) {
	photos := newHandlerTestRepo(t)
	r := newTestRouter(photos, &stubStorage{}, &stubTrigger{})
	owner := session.NewID()

	id, err := photos.Create(context.Background(), domain.SessionScope(owner), "key")
	require.NoError(t, err)

	t.Run("owner reads the record", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/photos/"+id, "", owner)
		require.Equal(t, http.StatusOK, w.Code)

		var photo domain.Photo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &photo))
		assert.Equal(t, id, photo.ID)
	})

	t.Run("another session gets 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/photos/"+id, "", session.NewID())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous caller gets 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/photos/"+id, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPhotoHandler_ListPhotos(t *testing.T) {
	photos := newHandlerTestRepo(t)
	r := newTestRouter(photos, &stubStorage{}, &stubTrigger{})
	owner := session.NewID()

	_, err := photos.Create(context.Background(), domain.SessionScope(owner), "key-1")
	require.NoError(t, err)
	_, err = photos.Create(context.Background(), domain.SessionScope(session.NewID()), "key-2")
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/v1/photos", "", owner)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Photos []domain.Photo `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Photos, 1)
}

func TestPhotoHandler_ListPhotos_RequiresScope(t *testing.T) {
	r := newTestRouter(newHandlerTestRepo(t), &stubStorage{}, &stubTrigger{})

	w := doJSON(r, http.MethodGet, "/api/v1/photos", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
