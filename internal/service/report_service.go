package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ataliba/contratos-service/internal/fiscalization"
	"github.com/ataliba/contratos-service/internal/model"
)

// AgreementGetter is the slice of agreement storage the report workflow
// needs.
type AgreementGetter interface {
	GetAgreement(ctx context.Context, id uuid.UUID) (*model.Agreement, error)
}

// ReportStore is the report persistence contract. CommitSignature must
// be an optimistic check-and-set on the stored status so that at most
// one in-flight sign transition per report can commit.
type ReportStore interface {
	GetReport(ctx context.Context, agreementID uuid.UUID, refMonth string) (*model.FiscalizationReport, error)
	CreateReport(ctx context.Context, report model.FiscalizationReport) (*model.FiscalizationReport, error)
	UpdateContent(ctx context.Context, reportID uuid.UUID, content model.ReportContent) error
	CommitSignature(ctx context.Context, reportID uuid.UUID, from, to model.ReportStatus, role model.SignerRole, signature model.ReportSignature) (bool, error)
}

type ViewBuilder interface {
	BuildView(ctx context.Context, id uuid.UUID) (*model.AgreementView, error)
}

type PDFGenerator interface {
	Generate(doc model.ReportDocument) ([]byte, error)
}

type ReportService struct {
	agreements AgreementGetter
	store      ReportStore
	views      ViewBuilder
	pdf        PDFGenerator
	verifier   fiscalization.CredentialVerifier
	now        func() time.Time
}

func NewReportService(
	agreements AgreementGetter,
	store ReportStore,
	views ViewBuilder,
	pdf PDFGenerator,
	verifier fiscalization.CredentialVerifier,
) *ReportService {
	return &ReportService{
		agreements: agreements,
		store:      store,
		views:      views,
		pdf:        pdf,
		verifier:   verifier,
		now:        time.Now,
	}
}

// ValidRefMonth accepts only zero-padded "YYYY-MM", which makes the
// stored values lexicographically comparable.
func ValidRefMonth(refMonth string) bool {
	parsed, err := time.Parse("2006-01", refMonth)
	if err != nil {
		return false
	}
	return parsed.Format("2006-01") == refMonth
}

// SaveReport creates or updates the report for (agreement, month). The
// first save selects the template from the agreement's category and
// freezes the administrative-overseer snapshot and the skip decision;
// later changes to the agreement's overseer never reach an in-flight
// report. Content edits are only accepted from the assigned technical
// overseer while the report still awaits the technical signature.
func (s *ReportService) SaveReport(
	ctx context.Context,
	agreementID uuid.UUID,
	refMonth string,
	content model.ReportContent,
	principal model.Principal,
) (*model.FiscalizationReport, error) {
	if !ValidRefMonth(refMonth) {
		return nil, fmt.Errorf("%w: ref_month must be YYYY-MM", ErrInvalidInput)
	}

	agreement, err := s.agreements.GetAgreement(ctx, agreementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if agreement.TechnicalUserID == nil || *agreement.TechnicalUserID != principal.UserID {
		return nil, fmt.Errorf("%w: apenas o fiscal técnico designado edita o relatório", ErrPermissionDenied)
	}

	existing, err := s.store.GetReport(ctx, agreementID, refMonth)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.createReport(ctx, *agreement, refMonth, content)
		}
		return nil, err
	}

	if existing.Status != model.ReportStatusPendingTechnical {
		return nil, ErrReportLocked
	}
	if len(content) == 0 {
		return existing, nil
	}
	if err := s.store.UpdateContent(ctx, existing.ID, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The report advanced between the read and the write.
			return nil, ErrReportLocked
		}
		return nil, err
	}
	existing.Content = content
	return existing, nil
}

func (s *ReportService) createReport(
	ctx context.Context,
	agreement model.Agreement,
	refMonth string,
	content model.ReportContent,
) (*model.FiscalizationReport, error) {
	template := fiscalization.SelectTemplate(agreement.Category)
	workflow := fiscalization.ForAgreement(agreement.AdministrativeName, agreement.RequiresAdministrative)

	if len(content) == 0 {
		content = fiscalization.BuildContent(template)
	}

	report := model.FiscalizationReport{
		AgreementID:   agreement.ID,
		RefMonth:      refMonth,
		Template:      template,
		Status:        workflow.Status(),
		AdminRequired: workflow.HasAdministrativeStep(),
		Content:       content,
	}
	if report.AdminRequired {
		report.Administrative = model.ReportSignature{
			UserID: agreement.AdministrativeUserID,
			Name:   agreement.AdministrativeName,
		}
	}
	return s.store.CreateReport(ctx, report)
}

func (s *ReportService) GetReport(ctx context.Context, agreementID uuid.UUID, refMonth string) (*model.FiscalizationReport, error) {
	if !ValidRefMonth(refMonth) {
		return nil, fmt.Errorf("%w: ref_month must be YYYY-MM", ErrInvalidInput)
	}
	report, err := s.store.GetReport(ctx, agreementID, refMonth)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// Sign runs one workflow transition and commits it with a check-and-set
// on the stored status. A lost race is reported exactly like an
// out-of-turn attempt against the status that actually won.
func (s *ReportService) Sign(
	ctx context.Context,
	agreementID uuid.UUID,
	refMonth string,
	role model.SignerRole,
	credential string,
	principal model.Principal,
) (*model.FiscalizationReport, error) {
	report, err := s.GetReport(ctx, agreementID, refMonth)
	if err != nil {
		return nil, err
	}

	from := report.Status
	if err := fiscalization.Sign(ctx, report, role, credential, principal, s.verifier, s.now()); err != nil {
		return nil, err
	}

	signature := signatureFor(report, role)
	committed, err := s.store.CommitSignature(ctx, report.ID, from, report.Status, role, signature)
	if err != nil {
		return nil, err
	}
	if !committed {
		current, err := s.store.GetReport(ctx, agreementID, refMonth)
		if err != nil {
			return nil, err
		}
		awaited, pending := fiscalization.Resume(*current).AwaitedRole()
		if !pending {
			return nil, fiscalization.ErrReportCompleted
		}
		return nil, &fiscalization.OutOfTurnError{Attempted: role, Awaited: awaited}
	}
	return report, nil
}

func signatureFor(report *model.FiscalizationReport, role model.SignerRole) model.ReportSignature {
	switch role {
	case model.RoleTechnical:
		return report.Technical
	case model.RoleAdministrative:
		return report.Administrative
	default:
		return report.Manager
	}
}

// ExportPDF renders the report document for printing and archiving.
func (s *ReportService) ExportPDF(ctx context.Context, agreementID uuid.UUID, refMonth string) (*ExportResult, error) {
	report, err := s.GetReport(ctx, agreementID, refMonth)
	if err != nil {
		return nil, err
	}
	view, err := s.views.BuildView(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.ReportDocument{
		View:   *view,
		Report: *report,
	})
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(view.Agreement.Number)
	if name == "" {
		name = view.Agreement.ID.String()
	}
	fileName := fmt.Sprintf("fiscalizacao-%s-%s.pdf", name, refMonth)
	return &ExportResult{FileName: fileName, Content: content}, nil
}
