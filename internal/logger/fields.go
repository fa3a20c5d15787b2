package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldPhotoID is the photo record ID
	FieldPhotoID = "photo_id"

	// FieldJobID is the scheduled analysis job ID
	FieldJobID = "job_id"

	// FieldSessionID is the anonymous session scope ID
	FieldSessionID = "session_id"

	// FieldUserID is the authenticated user scope ID
	FieldUserID = "user_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldStage is the worker stage that produced the event
	FieldStage = "stage"
)
