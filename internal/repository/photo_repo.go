package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tannerdj/wokelens/internal/domain"
	"gorm.io/gorm"
)

// ErrAlreadyTerminal is returned by SetDescription and SetError when the
// record has already reached done or error. The first terminal write wins;
// a redelivered job observing this must abandon its result.
var ErrAlreadyTerminal = errors.New("photo already in a terminal state")

// ErrPhotoNotFound is returned when a terminal write targets a record that
// does not exist.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoRepository handles photo record operations.
type PhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *PhotoRepository: repository instance bound to db.
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create inserts a new photo record with status pending and returns its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - scope: owning session or user scope.
//   - storageKey: key of the uploaded object; immutable after insert.
//
// Returns:
//   - string: generated photo ID.
//   - error: non-nil if the insert fails.
func (r *PhotoRepository) Create(ctx context.Context, scope domain.Scope, storageKey string) (string, error) {
	photo := &domain.Photo{
		ID:         uuid.New().String(),
		ScopeKind:  scope.Kind,
		ScopeID:    scope.ID,
		StorageKey: storageKey,
		Status:     domain.PhotoStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return "", err
	}
	return photo.ID, nil
}

// GetByID retrieves a photo by its ID without any scope check.
// Nonexistent IDs yield (nil, nil) rather than an error.
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var photo domain.Photo
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// GetScoped retrieves a photo by ID for the given caller scope. Returns nil
// when the record is absent or the scope does not match; legacy records with
// no stored scope are always returned.
func (r *PhotoRepository) GetScoped(ctx context.Context, id string, scope domain.Scope) (*domain.Photo, error) {
	photo, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil || !photo.ReadableBy(scope) {
		return nil, nil
	}
	return photo, nil
}

// ListByScope retrieves all photos owned by the scope, newest first.
func (r *PhotoRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Photo, error) {
	var photos []domain.Photo
	if err := r.db.WithContext(ctx).
		Where("scope_kind = ? AND scope_id = ?", scope.Kind, scope.ID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// SetDescription transitions a pending photo to done with the given text.
// The write is conditional on the record still being pending, so a
// redelivered job cannot overwrite an earlier terminal result.
func (r *PhotoRepository) SetDescription(ctx context.Context, id, description string) error {
	return r.terminalWrite(ctx, id, map[string]interface{}{
		"status":      domain.PhotoStatusDone,
		"description": description,
		"error":       "",
	})
}

// SetError transitions a pending photo to error with the given message.
func (r *PhotoRepository) SetError(ctx context.Context, id, message string) error {
	return r.terminalWrite(ctx, id, map[string]interface{}{
		"status":      domain.PhotoStatusError,
		"error":       message,
		"description": "",
	})
}

func (r *PhotoRepository) terminalWrite(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Where("id = ? AND status = ?", id, domain.PhotoStatusPending).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		photo, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if photo == nil {
			return ErrPhotoNotFound
		}
		return ErrAlreadyTerminal
	}
	return nil
}
