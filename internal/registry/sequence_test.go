package registry

import (
	"fmt"
	"testing"

	"register-server/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefSequence{}))
	return db
}

func TestNextIsSequentialWithoutGaps(t *testing.T) {
	db := newTestDB(t)
	svc := &SequenceService{}

	for i := 1; i <= 5; i++ {
		ref, err := svc.Next(db, KindInward, 2026)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INW/2026/%03d", i), ref)
	}
}

func TestNextScopedByKindAndYear(t *testing.T) {
	db := newTestDB(t)
	svc := &SequenceService{}

	ref, err := svc.Next(db, KindInward, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INW/2026/001", ref)

	ref, err = svc.Next(db, KindOutward, 2026)
	require.NoError(t, err)
	assert.Equal(t, "OTW/2026/001", ref)

	ref, err = svc.Next(db, KindInward, 2027)
	require.NoError(t, err)
	assert.Equal(t, "INW/2027/001", ref)

	// The original counters keep advancing independently.
	ref, err = svc.Next(db, KindInward, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INW/2026/002", ref)
}

func TestNextInsideTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := &SequenceService{}

	err := db.Transaction(func(tx *gorm.DB) error {
		ref, err := svc.Next(tx, KindInward, 2026)
		if err != nil {
			return err
		}
		assert.Equal(t, "INW/2026/001", ref)
		return nil
	})
	require.NoError(t, err)

	ref, err := svc.Next(db, KindInward, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INW/2026/002", ref)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INW/2024/007", Format(KindInward, 2024, 7))
	assert.Equal(t, "OTW/2025/042", Format(KindOutward, 2025, 42))
	// Counters past 999 widen rather than wrap.
	assert.Equal(t, "INW/2024/1234", Format(KindInward, 2024, 1234))
}
