package logics

import (
	"context"
	"time"

	"register-server/internal/apperrors"
	"register-server/internal/middlewares"
	"register-server/internal/models"
	"register-server/internal/registry"
	"register-server/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var linkageDanglingTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "register_linkage_dangling_total",
	Help: "Outward entries created with a linked_inward_id that matched no inward entry.",
})

// OutwardService owns the outward register: dispatch logging, case closure
// and the linkage back to the inward register.
type OutwardService struct {
	db     *gorm.DB
	seq    *registry.SequenceService
	logger *zap.Logger
}

// NewOutwardService returns a new instance of OutwardService.
func NewOutwardService(db *gorm.DB, seq *registry.SequenceService, logger *zap.Logger) *OutwardService {
	return &OutwardService{db: db, seq: seq, logger: logger}
}

// CreateOutwardInput carries the caller-supplied fields of a new outward entry.
type CreateOutwardInput struct {
	Subject         string          `json:"subject"`
	MeansOfDispatch string          `json:"means_of_dispatch"`
	ToWhom          string          `json:"to_whom"`
	SentBy          string          `json:"sent_by"`
	SentAt          time.Time       `json:"sent_at"`
	FileReference   string          `json:"file_reference"`
	PostalTariff    decimal.Decimal `json:"postal_tariff"`
	LinkedInwardID  string          `json:"linked_inward_id"`
	CreatedByTeam   string          `json:"created_by_team"`
	TeamMemberEmail string          `json:"team_member_email"`
}

// ListOutwardFilter narrows List results. The zero value matches everything.
type ListOutwardFilter struct {
	Team      string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create validates and persists a new outward entry. When the entry links an
// inward entry, the linked entry is force-completed in the same transaction.
// A linked_inward_id that matches nothing is tolerated: the outward entry is
// still created and the miss is logged and counted rather than surfaced.
func (os *OutwardService) Create(ctx context.Context, input CreateOutwardInput) (*models.Outward, error) {
	if input.Subject == "" || input.MeansOfDispatch == "" || input.ToWhom == "" || input.SentBy == "" || input.SentAt.IsZero() {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "subject, means_of_dispatch, to_whom, sent_by and sent_at are required")
	}
	if input.CreatedByTeam == "" || input.TeamMemberEmail == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "created_by_team and team_member_email are required")
	}
	if input.PostalTariff.IsNegative() {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "postal_tariff cannot be negative")
	}

	id, err := utils.GenerateUniqueID("OT")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate outward ID")
	}

	now := time.Now()
	entry := models.Outward{
		ID:              id,
		Subject:         input.Subject,
		MeansOfDispatch: input.MeansOfDispatch,
		ToWhom:          input.ToWhom,
		SentBy:          input.SentBy,
		SentAt:          input.SentAt,
		FileReference:   input.FileReference,
		PostalTariff:    input.PostalTariff,
		CreatedByTeam:   input.CreatedByTeam,
		TeamMemberEmail: input.TeamMemberEmail,
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	err = middlewares.WithTransaction(ctx, os.db, func(tx *gorm.DB) error {
		outwardNo, err := os.seq.Next(tx, registry.KindOutward, now.Year())
		if err != nil {
			return err
		}
		entry.OutwardNo = outwardNo

		if input.LinkedInwardID != "" {
			res := tx.Model(&models.Inward{}).
				Where("id = ?", input.LinkedInwardID).
				Updates(map[string]interface{}{
					"assignment_status": models.StatusCompleted,
					"completion_date":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				os.logger.Warn("linked inward entry not found, creating outward entry without linkage",
					zap.String("linked_inward_id", input.LinkedInwardID))
				linkageDanglingTotal.Inc()
			} else {
				linked := input.LinkedInwardID
				entry.LinkedInwardID = &linked
			}
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, storageErr(err, "failed to create outward entry")
	}

	return &entry, nil
}

// List returns outward entries matching the filter, most recently created
// first. EndDate is inclusive of the whole day it names.
func (os *OutwardService) List(ctx context.Context, filter ListOutwardFilter) ([]models.Outward, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	query := os.db.WithContext(ctx).Model(&models.Outward{}).Preload("Inward")
	if filter.Team != "" {
		query = query.Where("created_by_team = ?", filter.Team)
	}
	if filter.StartDate != nil {
		query = query.Where("sent_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		end := time.Date(filter.EndDate.Year(), filter.EndDate.Month(), filter.EndDate.Day(),
			23, 59, 59, int(time.Second-time.Nanosecond), filter.EndDate.Location())
		query = query.Where("sent_at <= ?", end)
	}

	var entries []models.Outward
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, storageErr(err, "failed to list outward entries")
	}
	return entries, nil
}

// Get returns a single outward entry with its linked inward entry preloaded.
func (os *OutwardService) Get(ctx context.Context, id string) (*models.Outward, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entry models.Outward
	if err := os.db.WithContext(ctx).Preload("Inward").First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "outward entry not found")
	}
	return &entry, nil
}

// CloseCase marks an outward entry's case as closed. Closing an already
// closed case is a no-op.
func (os *OutwardService) CloseCase(ctx context.Context, id string) (*models.Outward, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var entry models.Outward
	if err := os.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, storageErr(err, "outward entry not found")
	}
	if entry.CaseClosed {
		return &entry, nil
	}

	if err := os.db.WithContext(ctx).Model(&entry).Update("case_closed", true).Error; err != nil {
		return nil, storageErr(err, "failed to close case")
	}
	entry.CaseClosed = true
	return &entry, nil
}
