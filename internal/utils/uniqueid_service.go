package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UniqueIDService provides ID generation functionality
type UniqueIDService struct{}

// NewUniqueIDService creates a new UniqueIDService
func NewUniqueIDService() *UniqueIDService {
	return &UniqueIDService{}
}

// GenerateID creates an ID with the following pattern:
//   - First two characters are the provided prefix (e.g., "IN" for inward)
//   - Followed by 2 random digits [0-9]
//   - Followed by 8 random alphanumeric [0-9a-z]
//
// Example output with prefix "IN": IN12ABC345XY
func (s *UniqueIDService) GenerateID(prefix string) (string, error) {
	digits := "0123456789"
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	twoDigits, err := gonanoid.Generate(digits, 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate digit part: %w", err)
	}

	eightAlnum, err := gonanoid.Generate(alnum, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + eightAlnum), nil
}

// Global instance of UniqueIDService
var UniqueIDSvc = NewUniqueIDService()

// GenerateUniqueID delegates to the global UniqueIDService.
func GenerateUniqueID(prefix string) (string, error) {
	return UniqueIDSvc.GenerateID(prefix)
}
