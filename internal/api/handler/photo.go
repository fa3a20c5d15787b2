package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tannerdj/wokelens/internal/api/middleware"
	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/scheduler"
	"github.com/tannerdj/wokelens/internal/session"
	"github.com/tannerdj/wokelens/internal/storage"
	"github.com/tannerdj/wokelens/internal/watch"
)

// PhotoHandler handles session, upload and photo record endpoints.
type PhotoHandler struct {
	photos        *repository.PhotoRepository
	storage       storage.ObjectStorage
	trigger       scheduler.Trigger
	hub           *watch.Hub
	analysisDelay time.Duration
	uploadExpiry  time.Duration
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(
	photos *repository.PhotoRepository,
	objectStorage storage.ObjectStorage,
	trigger scheduler.Trigger,
	hub *watch.Hub,
	analysisDelay time.Duration,
	uploadExpiry time.Duration,
) *PhotoHandler {
	return &PhotoHandler{
		photos:        photos,
		storage:       objectStorage,
		trigger:       trigger,
		hub:           hub,
		analysisDelay: analysisDelay,
		uploadExpiry:  uploadExpiry,
	}
}

// CreateSession handles POST /api/v1/session. The id is generated server-side
// but carries no server state; the client holds it and presents it on every
// subsequent call.
func (h *PhotoHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.NewID(),
	})
}

// CreateUpload handles POST /api/v1/uploads. It returns a short-lived
// presigned PUT URL; the client uploads bytes directly to object storage and
// then saves the returned storage key with SavePhoto.
func (h *PhotoHandler) CreateUpload(c *gin.Context) {
	key := storage.NewStorageKey()
	url, err := h.storage.PresignPutURL(c.Request.Context(), key, h.uploadExpiry)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("upload_url_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create upload URL",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url":  url,
		"storage_key": key,
		"expires_in":  int(h.uploadExpiry.Seconds()),
	})
}

type savePhotoRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// SavePhoto handles POST /api/v1/photos. It inserts the pending record under
// the caller's scope and schedules the analysis job. The client learns the
// outcome by polling GetPhoto or streaming WatchPhoto; nothing here waits on
// the model.
func (h *PhotoHandler) SavePhoto(c *gin.Context) {
	var req savePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "storage_key is required",
		})
		return
	}

	ctx := c.Request.Context()
	scope := middleware.ScopeFrom(c)

	id, err := h.photos.Create(ctx, scope, req.StorageKey)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("photo_save_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save photo",
		})
		return
	}

	log := middleware.GetLogger(c).WithField(logger.FieldPhotoID, id)
	log.Info("photo_upload_completed")

	// A scheduling failure leaves the record pending forever, which the
	// client has no way to distinguish from a slow model. Fail the request
	// so the client can retry the save.
	if _, err := h.trigger.Schedule(ctx, id, h.analysisDelay); err != nil {
		log.WithError(err).Error("photo_analysis_schedule_failed")
		h.abandonRecord(c, id)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to schedule analysis",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"status": domain.PhotoStatusPending,
	})
}

// abandonRecord marks a record whose job could not be scheduled so it never
// sits in pending.
func (h *PhotoHandler) abandonRecord(c *gin.Context, id string) {
	if err := h.photos.SetError(c.Request.Context(), id, "Failed to schedule analysis"); err != nil {
		middleware.GetLogger(c).WithError(err).
			WithField(logger.FieldPhotoID, id).Error("photo_abandon_failed")
	}
}

// GetPhoto handles GET /api/v1/photos/:id. Records outside the caller's
// scope are indistinguishable from absent ones.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	photo, err := h.photos.GetScoped(c.Request.Context(), c.Param("id"), middleware.ScopeFrom(c))
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("photo_get_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load photo",
		})
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Photo not found",
		})
		return
	}

	c.JSON(http.StatusOK, photo)
}

// ListPhotos handles GET /api/v1/photos. Anonymous callers have no scope and
// therefore no list.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	scope := middleware.ScopeFrom(c)
	if scope.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A session id or bearer token is required",
		})
		return
	}

	photos, err := h.photos.ListByScope(c.Request.Context(), scope)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("photo_list_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list photos",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos": photos,
	})
}

// WatchPhoto handles GET /api/v1/photos/:id/watch as a server-sent event
// stream. It emits one status event per transition and closes after the
// terminal one. Subscription happens before the initial read so a transition
// landing between the two is not lost.
func (h *PhotoHandler) WatchPhoto(c *gin.Context) {
	id := c.Param("id")
	scope := middleware.ScopeFrom(c)
	ctx := c.Request.Context()

	events, stop := h.hub.Subscribe(ctx, id)
	defer stop()

	photo, err := h.photos.GetScoped(ctx, id, scope)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("photo_watch_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load photo",
		})
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Photo not found",
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("status", watch.Event{
		PhotoID:     photo.ID,
		Status:      photo.Status,
		Description: photo.Description,
		Error:       photo.Error,
	})
	c.Writer.Flush()
	if photo.Status.IsTerminal() {
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("status", event)
			return !event.Status.IsTerminal()
		}
	})
}
