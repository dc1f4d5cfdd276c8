package notifier

import (
	"context"
	"encoding/json"
	"sync"

	"register-server/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	deliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "register_notification_failures_total",
		Help: "Assignment notification emails that could not be delivered.",
	})
	queueDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "register_notification_drops_total",
		Help: "Assignment notifications dropped because the queue was full.",
	})
)

// Task is one assignment notification to deliver.
type Task struct {
	RecipientEmail string
	Subject        string
	InwardNo       string
	Payload        map[string]interface{}
}

// Sender delivers a rendered notification. Implemented by EmailSender in
// production and by stubs in tests.
type Sender interface {
	Send(task Task) error
}

// Dispatcher runs assignment notifications outside the request path: Enqueue
// never blocks the caller, delivery failures are logged and counted but never
// propagated, and every attempt is recorded in notification_logs.
type Dispatcher struct {
	tasks  chan Task
	sender Sender
	db     *gorm.DB
	logger *zap.Logger
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher creates a Dispatcher with the given queue capacity.
func NewDispatcher(sender Sender, db *gorm.DB, logger *zap.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		tasks:  make(chan Task, queueSize),
		sender: sender,
		db:     db,
		logger: logger,
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(workers int) {
	if workers <= 0 {
		workers = 2
	}
	d.startOnce.Do(func() {
		for i := 0; i < workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
	})
}

// Enqueue hands a notification to the workers. If the queue is full the task
// is dropped and counted; the caller is never blocked either way.
func (d *Dispatcher) Enqueue(task Task) {
	select {
	case d.tasks <- task:
	default:
		queueDrops.Inc()
		d.logger.Warn("Notification queue full, dropping task",
			zap.String("recipient", task.RecipientEmail),
			zap.String("inward_no", task.InwardNo),
		)
	}
}

// Shutdown stops accepting tasks and waits for in-flight deliveries, up to
// the context deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.stopOnce.Do(func() {
		close(d.tasks)
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		d.deliver(task)
	}
}

func (d *Dispatcher) deliver(task Task) {
	err := d.sender.Send(task)

	status := models.NotificationSent
	errMsg := ""
	if err != nil {
		status = models.NotificationFailed
		errMsg = err.Error()
		deliveryFailures.Inc()
		d.logger.Error("Failed to send assignment notification",
			zap.String("recipient", task.RecipientEmail),
			zap.String("inward_no", task.InwardNo),
			zap.Error(err),
		)
	} else {
		d.logger.Info("Assignment notification sent",
			zap.String("recipient", task.RecipientEmail),
			zap.String("inward_no", task.InwardNo),
		)
	}

	payload, marshalErr := json.Marshal(task.Payload)
	if marshalErr != nil {
		payload = []byte("{}")
	}

	log := models.NotificationLog{
		RecipientEmail: task.RecipientEmail,
		Subject:        task.Subject,
		InwardNo:       task.InwardNo,
		Status:         status,
		Error:          errMsg,
		Payload:        datatypes.JSON(payload),
	}
	if err := d.db.Create(&log).Error; err != nil {
		d.logger.Error("Failed to record notification log", zap.Error(err))
	}
}
