package apperrors

import "net/http"

var codeMapping = map[string]int{
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidInput:       http.StatusBadRequest,
	ErrStorageUnavailable: http.StatusServiceUnavailable,
}

// ToHTTPStatus maps an error to the HTTP status its code corresponds to.
// Plain errors map to 500.
func ToHTTPStatus(err error) int {
	if status, ok := codeMapping[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
