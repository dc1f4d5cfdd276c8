package models

// RefSequence is the per-kind, per-year running counter behind the
// human-readable reference numbers (INW/2025/001, OTW/2025/014, ...).
// The value is only ever bumped inside the transaction that inserts the
// entry it numbers, so numbers cannot collide or leak.
type RefSequence struct {
	Kind  string `gorm:"type:char(3);primaryKey"`
	Year  int    `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (RefSequence) TableName() string {
	return "ref_sequences"
}
