package logics

import (
	"fmt"
	"sync"
	"testing"

	"register-server/internal/notifier"
	"register-server/internal/registry"
	"register-server/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testTeams = []string{"UG", "PG/PRO", "PhD"}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// stubSender collects delivered tasks instead of talking to SMTP.
type stubSender struct {
	mu    sync.Mutex
	tasks []notifier.Task
	err   error
}

func (s *stubSender) Send(task notifier.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return s.err
}

func (s *stubSender) sent() []notifier.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notifier.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func newInwardService(t *testing.T, db *gorm.DB, dispatcher *notifier.Dispatcher) *InwardService {
	t.Helper()
	return NewInwardService(db, registry.NewSequenceService(), dispatcher, zap.NewNop(), testTeams)
}

func newOutwardService(t *testing.T, db *gorm.DB) *OutwardService {
	t.Helper()
	return NewOutwardService(db, registry.NewSequenceService(), zap.NewNop())
}
