package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ataliba/contratos-service/internal/dateutil"
	"github.com/ataliba/contratos-service/internal/lifecycle"
	"github.com/ataliba/contratos-service/internal/model"
	"github.com/ataliba/contratos-service/internal/repository"
)

type ExcelGenerator interface {
	Generate(register model.AgreementRegister) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// AgreementService assembles the derived read model. It is the single
// source of truth for status, days remaining, end dates and the renewal
// advisory; the presentation layer never re-derives any of them.
type AgreementService struct {
	repo  *repository.AgreementRepository
	excel ExcelGenerator
	now   func() time.Time
}

func NewAgreementService(repo *repository.AgreementRepository, excel ExcelGenerator) *AgreementService {
	return &AgreementService{repo: repo, excel: excel, now: time.Now}
}

func (s *AgreementService) BuildView(ctx context.Context, id uuid.UUID) (*model.AgreementView, error) {
	agreement, err := s.repo.GetAgreement(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	amendments, err := s.repo.ListAmendments(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.derive(*agreement, amendments)
	return &view, nil
}

func (s *AgreementService) ListViews(ctx context.Context) ([]model.AgreementView, error) {
	agreements, err := s.repo.ListAgreements(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.AgreementView, 0, len(agreements))
	for _, agreement := range agreements {
		amendments, err := s.repo.ListAmendments(ctx, agreement.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, s.derive(agreement, amendments))
	}
	return views, nil
}

func (s *AgreementService) derive(agreement model.Agreement, amendments []model.Amendment) model.AgreementView {
	today := dateutil.DateOnly(s.now())
	chain := lifecycle.ResolveChain(agreement.EndDate, amendments)
	status := lifecycle.DeriveStatus(chain.ConfirmedEnd, agreement.ManualStatus, today)

	return model.AgreementView{
		Agreement:        agreement,
		Status:           status,
		DaysRemaining:    lifecycle.DaysRemaining(status, chain.ConfirmedEnd, today),
		ConfirmedEnd:     chain.ConfirmedEnd,
		ProjectedEnd:     chain.ProjectedEnd,
		ExtensionPending: chain.ExtensionPending(),
		Renewal:          lifecycle.Renewal(agreement.StartDate, chain.ProjectedEnd, agreement.IsEmergency),
		Amendments:       amendments,
	}
}

// DeleteAmendment removes a single amendment. Sibling amendments keep
// their entry dates; the chain is simply recomputed on the next read.
func (s *AgreementService) DeleteAmendment(ctx context.Context, agreementID, amendmentID uuid.UUID) error {
	if err := s.repo.DeleteAmendment(ctx, agreementID, amendmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ExportRegister renders the agreements register spreadsheet with all
// derived columns.
func (s *AgreementService) ExportRegister(ctx context.Context) (*ExportResult, error) {
	views, err := s.ListViews(ctx)
	if err != nil {
		return nil, err
	}

	register := model.AgreementRegister{
		GeneratedAt: s.now(),
		Entries:     views,
	}
	content, err := s.excel.Generate(register)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("contratos-registro-%s.xlsx", register.GeneratedAt.Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
