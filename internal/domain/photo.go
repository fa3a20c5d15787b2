package domain

import "time"

// PhotoStatus represents the analysis status of a photo record.
// Values include PhotoStatusPending, PhotoStatusDone, and PhotoStatusError.
type PhotoStatus string

const (
	PhotoStatusPending PhotoStatus = "pending"
	PhotoStatusDone    PhotoStatus = "done"
	PhotoStatusError   PhotoStatus = "error"
)

// IsTerminal reports whether the status permits no further transitions.
func (s PhotoStatus) IsTerminal() bool {
	return s == PhotoStatusDone || s == PhotoStatusError
}

// ScopeKind identifies which identity boundary owns a photo record.
type ScopeKind string

const (
	ScopeKindSession ScopeKind = "session"
	ScopeKindUser    ScopeKind = "user"
)

// Scope is the identity boundary used to authorize reads of a photo record.
// Exactly one kind applies to a record; records written before scoping was
// introduced carry an empty scope and stay readable by anyone.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// SessionScope returns a session-owned scope.
func SessionScope(sessionID string) Scope {
	return Scope{Kind: ScopeKindSession, ID: sessionID}
}

// UserScope returns a user-owned scope.
func UserScope(userID string) Scope {
	return Scope{Kind: ScopeKindUser, ID: userID}
}

// IsZero reports whether the scope is unset (legacy record).
func (s Scope) IsZero() bool {
	return s.Kind == "" && s.ID == ""
}

// Photo represents an uploaded photo and the result of its analysis.
// Fields include the owning scope, the storage key of the uploaded bytes,
// and exactly one of Description/Error once Status is terminal.
type Photo struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	ScopeKind   ScopeKind   `gorm:"type:text;index:idx_photos_scope" json:"scope_kind,omitempty"`
	ScopeID     string      `gorm:"type:text;index:idx_photos_scope" json:"scope_id,omitempty"`
	StorageKey  string      `gorm:"type:text;not null" json:"storage_key"`
	Status      PhotoStatus `gorm:"type:text;index:idx_photos_status;default:pending" json:"status"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Error       string      `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Photo.
func (Photo) TableName() string {
	return "photos"
}

// Scope returns the record's owning scope.
func (p *Photo) Scope() Scope {
	return Scope{Kind: p.ScopeKind, ID: p.ScopeID}
}

// ReadableBy reports whether a caller holding the given scope may read the
// record. Legacy records without a stored scope are readable unconditionally.
func (p *Photo) ReadableBy(scope Scope) bool {
	if p.Scope().IsZero() {
		return true
	}
	return p.ScopeKind == scope.Kind && p.ScopeID == scope.ID
}
