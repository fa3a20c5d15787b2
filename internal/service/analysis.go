package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"time"

	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/storage"
	"github.com/tannerdj/wokelens/internal/watch"
	_ "golang.org/x/image/webp"
)

// User-facing failure messages stored on the photo record. All failures are
// terminal; the only recovery path is uploading a new photo.
const (
	ErrMsgPhotoNotFound  = "Photo not found"
	ErrMsgDownloadFailed = "Failed to download image"
	ErrMsgTimeout        = "Request timed out. Please try again."
	ErrMsgRateLimited    = "Too many requests. Please try again later."
	ErrMsgQuotaExceeded  = "API quota exceeded. Please try again later."
	ErrMsgGeneric        = "Failed to generate description with OpenAI."
)

// ImageDescriber produces a text description for raw image bytes.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, imageData []byte, mimeType string) (string, error)
}

// StatusPublisher notifies live watchers of a photo's status transition.
type StatusPublisher interface {
	Publish(ctx context.Context, event watch.Event) error
}

// AnalysisService runs the photo analysis pipeline: fetch record, download
// image, call the vision model, write the terminal result.
type AnalysisService struct {
	photos  *repository.PhotoRepository
	storage storage.ObjectStorage
	vlm     ImageDescriber
	events  StatusPublisher
	logger  *logger.Logger
}

// NewAnalysisService creates a new analysis service. events may be nil when no
// live watchers need notifying, e.g. in tests.
func NewAnalysisService(
	photos *repository.PhotoRepository,
	objectStorage storage.ObjectStorage,
	vlm ImageDescriber,
	events StatusPublisher,
	log *logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		photos:  photos,
		storage: objectStorage,
		vlm:     vlm,
		events:  events,
		logger:  log,
	}
}

// log returns a logger from context if available, otherwise returns the service logger
func (s *AnalysisService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// DescribePhoto runs the full analysis for one photo. Every failure is caught
// here and converted into a stored error message; nothing propagates to a
// caller because no caller is waiting.
func (s *AnalysisService) DescribePhoto(ctx context.Context, photoID string) {
	start := time.Now()
	log := s.log(ctx).WithField(logger.FieldPhotoID, photoID)

	log.Info("photo_analysis_started")

	// Stage: fetching-record. The worker runs with internal privilege, so no
	// scope check here.
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		// Store unavailable; nothing can be written either, so abandon.
		log.WithError(err).WithField(logger.FieldStage, "fetch").
			Error("photo_analysis_abandoned")
		return
	}
	if photo == nil {
		log.WithField(logger.FieldStage, "fetch").Warn("photo_analysis_error: record absent")
		s.writeError(ctx, photoID, ErrMsgPhotoNotFound)
		return
	}

	// Stage: downloading-image.
	imageData, err := s.downloadImage(ctx, photo.StorageKey)
	if err != nil {
		log.WithError(err).WithField(logger.FieldStage, "download").
			Error("photo_analysis_error")
		s.writeError(ctx, photoID, ErrMsgDownloadFailed)
		return
	}
	log.WithField(logger.FieldSize, len(imageData)).Info("photo_download_completed")

	// Stage: calling-model.
	description, err := s.vlm.DescribeImage(ctx, imageData, sniffMIMEType(imageData))
	if err != nil {
		log.WithError(err).WithField(logger.FieldStage, "model").
			Error("photo_analysis_error")
		s.writeError(ctx, photoID, classifyModelError(err))
		return
	}

	// Stage: writing-result.
	if err := s.photos.SetDescription(ctx, photoID, description); err != nil {
		s.logTerminalWriteFailure(ctx, photoID, err)
		return
	}
	s.notify(ctx, watch.Event{
		PhotoID:     photoID,
		Status:      domain.PhotoStatusDone,
		Description: description,
	})

	logger.With(logger.Fields{
		logger.FieldPhotoID:    photoID,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldStatus:     "done",
	}).Info(ctx, "photo_analysis_completed")
}

// downloadImage fetches the full object; an empty object counts as a failure.
func (s *AnalysisService) downloadImage(ctx context.Context, storageKey string) ([]byte, error) {
	reader, err := s.storage.Download(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("image object is empty")
	}
	return data, nil
}

// writeError records a terminal failure. A record that is already terminal or
// missing makes the job fatal; the worker just abandons it.
func (s *AnalysisService) writeError(ctx context.Context, photoID, message string) {
	if err := s.photos.SetError(ctx, photoID, message); err != nil {
		s.logTerminalWriteFailure(ctx, photoID, err)
		return
	}
	s.notify(ctx, watch.Event{
		PhotoID: photoID,
		Status:  domain.PhotoStatusError,
		Error:   message,
	})
	logger.With(logger.Fields{
		logger.FieldPhotoID: photoID,
		logger.FieldStatus:  "error",
	}).Info(ctx, "photo_analysis_error_saved: %s", message)
}

// notify is best-effort; a watcher that misses the event still sees the
// terminal state on its next poll.
func (s *AnalysisService) notify(ctx context.Context, event watch.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldPhotoID, event.PhotoID).
			Warn("photo_status_publish_failed")
	}
}

func (s *AnalysisService) logTerminalWriteFailure(ctx context.Context, photoID string, err error) {
	log := s.log(ctx).WithField(logger.FieldPhotoID, photoID)
	switch {
	case errors.Is(err, repository.ErrAlreadyTerminal):
		// Redelivered job lost the race against an earlier terminal write.
		log.Warn("photo_analysis_duplicate_delivery: result discarded")
	case errors.Is(err, repository.ErrPhotoNotFound):
		log.Warn("photo_analysis_abandoned: record missing")
	default:
		log.WithError(err).Error("photo_analysis_write_failed")
	}
}

// classifyModelError maps an upstream failure onto one of the fixed
// user-facing messages.
func classifyModelError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return ErrMsgRateLimited
		case apiErr.Code == "insufficient_quota":
			return ErrMsgQuotaExceeded
		case apiErr.Message != "":
			return apiErr.Message
		default:
			return ErrMsgGeneric
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrMsgTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrMsgTimeout
	}

	return ErrMsgGeneric
}

// sniffMIMEType detects the image format from the bytes. Undecodable content
// falls back to JPEG, which the model provider also treats as the default.
func sniffMIMEType(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "image/jpeg"
	}
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
