package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ataliba/contratos-service/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportRow struct {
	ID                     uuid.UUID
	AgreementID            uuid.UUID
	RefMonth               string
	Template               string
	Status                 model.ReportStatus
	AdminRequired          bool
	Content                []byte
	TechnicalUserID        *uuid.UUID
	TechnicalName          string
	TechnicalSignedAt      *time.Time
	AdministrativeUserID   *uuid.UUID
	AdministrativeName     string
	AdministrativeSignedAt *time.Time
	ManagerUserID          *uuid.UUID
	ManagerName            string
	ManagerSignedAt        *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

const reportColumns = `
	id,
	agreement_id,
	ref_month,
	template,
	status,
	admin_required,
	content,
	technical_user_id,
	technical_name,
	technical_signed_at,
	administrative_user_id,
	administrative_name,
	administrative_signed_at,
	manager_user_id,
	manager_name,
	manager_signed_at,
	created_at,
	updated_at
`

func (row reportRow) toModel() (*model.FiscalizationReport, error) {
	var content model.ReportContent
	if len(row.Content) > 0 {
		if err := json.Unmarshal(row.Content, &content); err != nil {
			return nil, fmt.Errorf("decode report content: %w", err)
		}
	}
	return &model.FiscalizationReport{
		ID:            row.ID,
		AgreementID:   row.AgreementID,
		RefMonth:      row.RefMonth,
		Template:      row.Template,
		Status:        row.Status,
		AdminRequired: row.AdminRequired,
		Content:       content,
		Technical: model.ReportSignature{
			UserID:   row.TechnicalUserID,
			Name:     row.TechnicalName,
			SignedAt: row.TechnicalSignedAt,
		},
		Administrative: model.ReportSignature{
			UserID:   row.AdministrativeUserID,
			Name:     row.AdministrativeName,
			SignedAt: row.AdministrativeSignedAt,
		},
		Manager: model.ReportSignature{
			UserID:   row.ManagerUserID,
			Name:     row.ManagerName,
			SignedAt: row.ManagerSignedAt,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// GetReport fetches the report for (agreement, reference month). The
// unique index on that pair guarantees at most one row.
func (r *ReportRepository) GetReport(ctx context.Context, agreementID uuid.UUID, refMonth string) (*model.FiscalizationReport, error) {
	var row reportRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+reportColumns+`
		FROM fiscalization_reports
		WHERE agreement_id = ? AND ref_month = ?
		LIMIT 1
	`, agreementID, refMonth).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return row.toModel()
}

// CreateReport inserts a new report. The signer-name snapshot fields are
// persisted exactly as supplied; nothing is recomputed. A concurrent
// insert for the same month loses on the unique index and surfaces the
// constraint error.
func (r *ReportRepository) CreateReport(ctx context.Context, report model.FiscalizationReport) (*model.FiscalizationReport, error) {
	content, err := json.Marshal(report.Content)
	if err != nil {
		return nil, fmt.Errorf("encode report content: %w", err)
	}

	var row reportRow
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO fiscalization_reports (
			agreement_id,
			ref_month,
			template,
			status,
			admin_required,
			content,
			administrative_user_id,
			administrative_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+reportColumns+`
	`,
		report.AgreementID,
		report.RefMonth,
		report.Template,
		report.Status,
		report.AdminRequired,
		string(content),
		report.Administrative.UserID,
		report.Administrative.Name,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	return row.toModel()
}

// UpdateContent replaces the editable payload. The guard on status keeps
// a stale editor from writing into a report that already advanced.
func (r *ReportRepository) UpdateContent(ctx context.Context, reportID uuid.UUID, content model.ReportContent) error {
	encoded, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode report content: %w", err)
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE fiscalization_reports
		SET content = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`, string(encoded), reportID, model.ReportStatusPendingTechnical)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var signatureColumns = map[model.SignerRole]string{
	model.RoleTechnical:      "technical",
	model.RoleAdministrative: "administrative",
	model.RoleManager:        "manager",
}

// CommitSignature applies one sign transition with an optimistic
// check-and-set on the stored status. It returns false when the stored
// status no longer matches from, which means another transition won the
// race and this one must be rejected.
func (r *ReportRepository) CommitSignature(
	ctx context.Context,
	reportID uuid.UUID,
	from, to model.ReportStatus,
	role model.SignerRole,
	signature model.ReportSignature,
) (bool, error) {
	column, ok := signatureColumns[role]
	if !ok {
		return false, fmt.Errorf("unknown signer role %q", role)
	}

	query := fmt.Sprintf(`
		UPDATE fiscalization_reports
		SET
			status = ?,
			%s_user_id = ?,
			%s_name = ?,
			%s_signed_at = ?,
			updated_at = NOW()
		WHERE id = ? AND status = ?
	`, column, column, column)

	result := r.db.WithContext(ctx).Exec(query,
		to,
		signature.UserID,
		signature.Name,
		signature.SignedAt,
		reportID,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
