package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"register-server/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NotificationLog{}))
	return db
}

type fakeSender struct {
	mu    sync.Mutex
	tasks []Task
	err   error
}

func (f *fakeSender) Send(task Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func TestDispatcherDeliversAndLogs(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(sender, db, zap.NewNop(), 16)
	d.Start(1)

	d.Enqueue(Task{
		RecipientEmail: "handler@example.edu",
		Subject:        "Transcript request",
		InwardNo:       "INW/2026/001",
		Payload:        map[string]interface{}{"assigned_team": "UG"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.Equal(t, 1, sender.count())

	var logs []models.NotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.NotificationSent, logs[0].Status)
	assert.Equal(t, "handler@example.edu", logs[0].RecipientEmail)
	assert.Equal(t, "INW/2026/001", logs[0].InwardNo)
	assert.Empty(t, logs[0].Error)
	assert.Contains(t, string(logs[0].Payload), "UG")
}

func TestDispatcherRecordsFailures(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{err: errors.New("smtp unreachable")}
	d := NewDispatcher(sender, db, zap.NewNop(), 16)
	d.Start(1)

	d.Enqueue(Task{RecipientEmail: "handler@example.edu", InwardNo: "INW/2026/002"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	var logs []models.NotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.NotificationFailed, logs[0].Status)
	assert.Equal(t, "smtp unreachable", logs[0].Error)
}

func TestEnqueueNeverBlocks(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	// Workers never started; the queue fills and the overflow is dropped.
	d := NewDispatcher(sender, db, zap.NewNop(), 1)

	done := make(chan struct{})
	go func() {
		d.Enqueue(Task{InwardNo: "INW/2026/001"})
		d.Enqueue(Task{InwardNo: "INW/2026/002"})
		d.Enqueue(Task{InwardNo: "INW/2026/003"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestShutdownDrainsQueue(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(sender, db, zap.NewNop(), 16)

	for i := 0; i < 5; i++ {
		d.Enqueue(Task{InwardNo: "INW/2026/001"})
	}
	d.Start(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.Equal(t, 5, sender.count())
}
