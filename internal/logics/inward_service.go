package logics

import (
	"context"
	"time"

	"register-server/internal/apperrors"
	"register-server/internal/middlewares"
	"register-server/internal/models"
	"register-server/internal/notifier"
	"register-server/internal/registry"
	"register-server/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InwardService owns the inward register: creation with reference numbering,
// the assignment state machine, and the notification side effect.
type InwardService struct {
	db         *gorm.DB
	seq        *registry.SequenceService
	dispatcher *notifier.Dispatcher
	logger     *zap.Logger
	teams      map[string]bool
}

// NewInwardService returns a new instance of InwardService. teams is the
// closed set of assignable team identifiers.
func NewInwardService(db *gorm.DB, seq *registry.SequenceService, dispatcher *notifier.Dispatcher, logger *zap.Logger, teams []string) *InwardService {
	teamSet := make(map[string]bool, len(teams))
	for _, t := range teams {
		teamSet[t] = true
	}
	return &InwardService{
		db:         db,
		seq:        seq,
		dispatcher: dispatcher,
		logger:     logger,
		teams:      teamSet,
	}
}

// CreateInwardInput carries the caller-supplied fields of a new inward entry.
type CreateInwardInput struct {
	Subject                string     `json:"subject"`
	MeansOfReceipt         string     `json:"means_of_receipt"`
	FromWhom               string     `json:"from_whom"`
	ReceivedAt             time.Time  `json:"received_at"`
	FileReference          string     `json:"file_reference"`
	AssignedTeam           string     `json:"assigned_team"`
	AssignedToEmail        string     `json:"assigned_to_email"`
	AssignmentInstructions string     `json:"assignment_instructions"`
	DueDate                *time.Time `json:"due_date"`
}

// AssignInput carries the fields of an assignment or re-assignment.
type AssignInput struct {
	AssignedTeam           string     `json:"assigned_team"`
	AssignedToEmail        string     `json:"assigned_to_email"`
	AssignmentInstructions string     `json:"assignment_instructions"`
	DueDate                *time.Time `json:"due_date"`
}

func (is *InwardService) validateAssignment(team, email string) error {
	if team == "" && email == "" {
		return nil
	}
	if team == "" {
		return apperrors.New(apperrors.ErrInvalidInput, "assigned_to_email requires assigned_team")
	}
	if !is.teams[team] {
		return apperrors.New(apperrors.ErrInvalidInput, "unknown assigned_team: "+team)
	}
	if email == "" {
		return apperrors.New(apperrors.ErrInvalidInput, "assigned_to_email is required when assigned_team is set")
	}
	return nil
}

// Create validates and persists a new inward entry. The reference number is
// reserved in the same transaction as the insert. When the entry arrives
// pre-assigned, the assignment notification is dispatched after commit,
// outside the request's critical path.
func (is *InwardService) Create(ctx context.Context, input CreateInwardInput) (*models.Inward, error) {
	if input.Subject == "" || input.MeansOfReceipt == "" || input.FromWhom == "" || input.ReceivedAt.IsZero() {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "subject, means_of_receipt, from_whom and received_at are required")
	}
	if err := is.validateAssignment(input.AssignedTeam, input.AssignedToEmail); err != nil {
		return nil, err
	}

	id, err := utils.GenerateUniqueID("IN")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate inward ID")
	}

	now := time.Now()
	entry := models.Inward{
		ID:               id,
		Subject:          input.Subject,
		MeansOfReceipt:   input.MeansOfReceipt,
		FromWhom:         input.FromWhom,
		ReceivedAt:       input.ReceivedAt,
		FileReference:    input.FileReference,
		AssignmentStatus: models.StatusUnassigned,
		DueDate:          input.DueDate,
	}
	if input.AssignedTeam != "" {
		entry.AssignedTeam = input.AssignedTeam
		entry.AssignedToEmail = input.AssignedToEmail
		entry.AssignmentInstructions = input.AssignmentInstructions
		entry.AssignmentStatus = models.StatusPending
		entry.AssignmentDate = &now
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	err = middlewares.WithTransaction(ctx, is.db, func(tx *gorm.DB) error {
		inwardNo, err := is.seq.Next(tx, registry.KindInward, now.Year())
		if err != nil {
			return err
		}
		entry.InwardNo = inwardNo
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, storageErr(err, "failed to create inward entry")
	}

	if entry.AssignedTeam != "" {
		is.notifyAssignment(&entry)
	}

	return &entry, nil
}

// List returns all inward entries, most recently created first.
func (is *InwardService) List(ctx context.Context) ([]models.Inward, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entries []models.Inward
	if err := is.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, storageErr(err, "failed to list inward entries")
	}
	return entries, nil
}

// Get returns a single inward entry with its attachments.
func (is *InwardService) Get(ctx context.Context, id string) (*models.Inward, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entry models.Inward
	if err := is.db.WithContext(ctx).Preload("Attachments").First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "inward entry not found")
	}
	return &entry, nil
}

// Assign routes an inward entry to a team. Assignment is overwrite-capable:
// re-assigning replaces the team, contact, instructions and due date, and
// re-stamps assignment_date every time. The entry always lands in Pending.
func (is *InwardService) Assign(ctx context.Context, id string, input AssignInput) (*models.Inward, error) {
	if input.AssignedTeam == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "assigned_team is required")
	}
	if err := is.validateAssignment(input.AssignedTeam, input.AssignedToEmail); err != nil {
		return nil, err
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entry models.Inward
	if err := is.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "inward entry not found")
	}
	if entry.AssignmentStatus == models.StatusCompleted {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "completed entries cannot be re-assigned")
	}

	now := time.Now()
	err := middlewares.WithTransaction(ctx, is.db, func(tx *gorm.DB) error {
		return tx.Model(&entry).Updates(map[string]interface{}{
			"assigned_team":           input.AssignedTeam,
			"assigned_to_email":       input.AssignedToEmail,
			"assignment_instructions": input.AssignmentInstructions,
			"assignment_date":         now,
			"assignment_status":       models.StatusPending,
			"due_date":                input.DueDate,
		}).Error
	})
	if err != nil {
		return nil, storageErr(err, "failed to assign inward entry")
	}

	if err := is.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "failed to load assigned entry")
	}

	is.notifyAssignment(&entry)

	return &entry, nil
}

// UpdateStatus applies a caller-initiated status change. Completed is
// stamped with a completion date in the same transactional unit; Completed
// entries only accept a repeated Completed (which re-stamps), never a step
// back to Pending or In Progress. There is no path back to Unassigned.
func (is *InwardService) UpdateStatus(ctx context.Context, id string, statusValue string) (*models.Inward, error) {
	status := models.Status(statusValue)
	if !status.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "unknown assignment_status: "+statusValue)
	}
	if status == models.StatusUnassigned {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "entries cannot return to Unassigned")
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entry models.Inward
	if err := is.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "inward entry not found")
	}
	if entry.AssignmentStatus == models.StatusCompleted && status != models.StatusCompleted {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "completed entries are terminal")
	}

	updates := map[string]interface{}{
		"assignment_status": status,
	}
	if status == models.StatusCompleted {
		updates["completion_date"] = time.Now()
	}

	err := middlewares.WithTransaction(ctx, is.db, func(tx *gorm.DB) error {
		return tx.Model(&entry).Updates(updates).Error
	})
	if err != nil {
		return nil, storageErr(err, "failed to update assignment status")
	}

	if err := is.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "failed to load updated entry")
	}
	return &entry, nil
}

func (is *InwardService) notifyAssignment(entry *models.Inward) {
	if is.dispatcher == nil || entry.AssignedToEmail == "" {
		return
	}
	is.dispatcher.Enqueue(notifier.Task{
		RecipientEmail: entry.AssignedToEmail,
		Subject:        entry.Subject,
		InwardNo:       entry.InwardNo,
		Payload: map[string]interface{}{
			"id":                      entry.ID,
			"inward_no":               entry.InwardNo,
			"subject":                 entry.Subject,
			"from_whom":               entry.FromWhom,
			"assigned_team":           entry.AssignedTeam,
			"assignment_instructions": entry.AssignmentInstructions,
			"due_date":                entry.DueDate,
		},
	})
}
