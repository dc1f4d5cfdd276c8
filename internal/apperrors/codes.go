package apperrors

// Error codes used across the register service.
const (
	ErrInternal           = "INTERNAL"
	ErrNotFound           = "NOT_FOUND"
	ErrInvalidInput       = "INVALID_INPUT"
	ErrStorageUnavailable = "STORAGE_UNAVAILABLE"
)
