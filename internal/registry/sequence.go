package registry

import (
	"fmt"

	"register-server/internal/apperrors"
	"register-server/internal/models"

	"gorm.io/gorm"
)

// Kind selects which register a reference number belongs to.
type Kind string

const (
	KindInward  Kind = "INW"
	KindOutward Kind = "OTW"
)

// SequenceService hands out the year-scoped, human-readable reference numbers
// (INW/2025/001, OTW/2025/014, ...). The counter lives in the ref_sequences
// table and is only ever bumped inside the caller's transaction, so the bump
// commits or rolls back together with the entry it numbers.
type SequenceService struct{}

// NewSequenceService creates a new SequenceService.
func NewSequenceService() *SequenceService {
	return &SequenceService{}
}

// Next reserves the next reference number for the given kind and year within
// tx. Numbers are monotonic per kind per year with no gap-filling; deleted
// records never free their number.
func (s *SequenceService) Next(tx *gorm.DB, kind Kind, year int) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		res := tx.Model(&models.RefSequence{}).
			Where("kind = ? AND year = ?", string(kind), year).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return "", apperrors.NewAppError(apperrors.ErrStorageUnavailable, "failed to advance reference sequence", res.Error)
		}

		if res.RowsAffected == 0 {
			// First entry of the year for this kind. A concurrent request may
			// win the insert; the unique key makes that visible and the loop
			// falls back to the UPDATE path.
			seq := models.RefSequence{Kind: string(kind), Year: year, Value: 1}
			if err := tx.Create(&seq).Error; err != nil {
				continue
			}
			return Format(kind, year, 1), nil
		}

		var seq models.RefSequence
		if err := tx.Where("kind = ? AND year = ?", string(kind), year).First(&seq).Error; err != nil {
			return "", apperrors.NewAppError(apperrors.ErrStorageUnavailable, "failed to read reference sequence", err)
		}
		return Format(kind, year, seq.Value), nil
	}

	return "", apperrors.New(apperrors.ErrStorageUnavailable, "reference sequence contention not resolved")
}

// Format renders a reference number, zero-padding the sequence to 3 digits.
func Format(kind Kind, year int, seq int64) string {
	return fmt.Sprintf("%s/%d/%03d", string(kind), year, seq)
}
