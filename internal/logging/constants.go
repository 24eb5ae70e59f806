package logging

// Standardized field names for structured logging.
const (
	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatusCode = "status_code"
	FieldRequestID  = "request_id"
	FieldCategoryID = "category_id"
	FieldPage       = "page"
	FieldLimit      = "limit"
	FieldNameFilter = "name_filter"
	FieldErrorType  = "error_type"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)
