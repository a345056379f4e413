package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ataliba/contratos-service/internal/model"
)

type AgreementRepository struct {
	db *gorm.DB
}

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

const agreementColumns = `
	id,
	number,
	category,
	department,
	start_date,
	end_date,
	manual_status,
	is_emergency,
	manager_name,
	manager_user_id,
	technical_name,
	technical_user_id,
	administrative_name,
	administrative_user_id,
	requires_administrative,
	created_at
`

func (r *AgreementRepository) GetAgreement(ctx context.Context, id uuid.UUID) (*model.Agreement, error) {
	var agreement model.Agreement
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+agreementColumns+`
		FROM agreements
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&agreement).Error; err != nil {
		return nil, err
	}
	if agreement.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &agreement, nil
}

func (r *AgreementRepository) ListAgreements(ctx context.Context) ([]model.Agreement, error) {
	var agreements []model.Agreement
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+agreementColumns+`
		FROM agreements
		ORDER BY end_date ASC, number ASC
	`).Scan(&agreements).Error; err != nil {
		return nil, err
	}
	return agreements, nil
}

type amendmentRow struct {
	ID                 uuid.UUID
	AgreementID        uuid.UUID
	Kind               model.AmendmentKind
	Duration           int
	DurationUnit       model.DurationUnit
	EntryDate          time.Time
	StatusLabel        string
	TermDrafted        bool
	LegalReview        bool
	BudgetCommitment   bool
	ManagementApproval bool
	PartiesNotified    bool
	GazettePublished   bool
	CounterpartSigned  bool
	WitnessSigned      bool
	CreatedAt          time.Time
}

// ListAmendments returns the agreement's amendments in entry-date order,
// the order the chain resolver folds them in.
func (r *AgreementRepository) ListAmendments(ctx context.Context, agreementID uuid.UUID) ([]model.Amendment, error) {
	var rows []amendmentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			agreement_id,
			kind,
			duration,
			duration_unit,
			entry_date,
			status_label,
			term_drafted,
			legal_review,
			budget_commitment,
			management_approval,
			parties_notified,
			gazette_published,
			counterpart_signed,
			witness_signed,
			created_at
		FROM amendments
		WHERE agreement_id = ?
		ORDER BY entry_date ASC, created_at ASC
	`, agreementID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	amendments := make([]model.Amendment, 0, len(rows))
	for _, row := range rows {
		amendments = append(amendments, model.Amendment{
			ID:          row.ID,
			AgreementID: row.AgreementID,
			Kind:        row.Kind,
			Duration:    row.Duration,
			Unit:        row.DurationUnit,
			EntryDate:   row.EntryDate,
			StatusLabel: row.StatusLabel,
			Checklist: model.AmendmentChecklist{
				TermDrafted:        row.TermDrafted,
				LegalReview:        row.LegalReview,
				BudgetCommitment:   row.BudgetCommitment,
				ManagementApproval: row.ManagementApproval,
				PartiesNotified:    row.PartiesNotified,
				GazettePublished:   row.GazettePublished,
				CounterpartSigned:  row.CounterpartSigned,
				WitnessSigned:      row.WitnessSigned,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return amendments, nil
}

// DeleteAmendment removes one amendment; siblings are never renumbered.
func (r *AgreementRepository) DeleteAmendment(ctx context.Context, agreementID, amendmentID uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM amendments
		WHERE id = ? AND agreement_id = ?
	`, amendmentID, agreementID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
