package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ataliba/contratos-service/internal/fiscalization"
	"github.com/ataliba/contratos-service/internal/model"
)

type fakeStore struct {
	agreement   *model.Agreement
	reports     map[string]*model.FiscalizationReport
	failCommits int
}

func newFakeStore(agreement *model.Agreement) *fakeStore {
	return &fakeStore{
		agreement: agreement,
		reports:   map[string]*model.FiscalizationReport{},
	}
}

func (f *fakeStore) key(agreementID uuid.UUID, refMonth string) string {
	return agreementID.String() + "/" + refMonth
}

func (f *fakeStore) GetAgreement(ctx context.Context, id uuid.UUID) (*model.Agreement, error) {
	if f.agreement == nil || f.agreement.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.agreement
	return &copied, nil
}

func (f *fakeStore) GetReport(ctx context.Context, agreementID uuid.UUID, refMonth string) (*model.FiscalizationReport, error) {
	report, ok := f.reports[f.key(agreementID, refMonth)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeStore) CreateReport(ctx context.Context, report model.FiscalizationReport) (*model.FiscalizationReport, error) {
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	stored := report
	f.reports[f.key(report.AgreementID, report.RefMonth)] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeStore) UpdateContent(ctx context.Context, reportID uuid.UUID, content model.ReportContent) error {
	for _, report := range f.reports {
		if report.ID == reportID {
			if report.Status != model.ReportStatusPendingTechnical {
				return gorm.ErrRecordNotFound
			}
			report.Content = content
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) CommitSignature(ctx context.Context, reportID uuid.UUID, from, to model.ReportStatus, role model.SignerRole, signature model.ReportSignature) (bool, error) {
	if f.failCommits > 0 {
		f.failCommits--
		return false, nil
	}
	for _, report := range f.reports {
		if report.ID != reportID {
			continue
		}
		if report.Status != from {
			return false, nil
		}
		report.Status = to
		switch role {
		case model.RoleTechnical:
			report.Technical = signature
		case model.RoleAdministrative:
			report.Administrative = signature
		case model.RoleManager:
			report.Manager = signature
		}
		return true, nil
	}
	return false, nil
}

type okVerifier struct{}

func (okVerifier) Verify(ctx context.Context, email, credential string) error { return nil }

type stubViews struct{ view *model.AgreementView }

func (s stubViews) BuildView(ctx context.Context, id uuid.UUID) (*model.AgreementView, error) {
	return s.view, nil
}

type stubPDF struct{}

func (stubPDF) Generate(doc model.ReportDocument) ([]byte, error) { return []byte("%PDF"), nil }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func testAgreement(technicalID uuid.UUID) *model.Agreement {
	return &model.Agreement{
		ID:                     uuid.New(),
		Number:                 "045/2024",
		Category:               "Serviços continuados de limpeza",
		Department:             "Secretaria de Educação",
		StartDate:              time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		ManualStatus:           model.ManualStatusAutomatic,
		TechnicalName:          "Carlos Lima",
		TechnicalUserID:        uuidPtr(technicalID),
		AdministrativeName:     "Maria Souza",
		AdministrativeUserID:   uuidPtr(uuid.New()),
		RequiresAdministrative: true,
	}
}

func newService(store *fakeStore) *ReportService {
	return NewReportService(store, store, stubViews{}, stubPDF{}, okVerifier{})
}

func TestSaveReportCreatesWithFrozenSnapshot(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	store := newFakeStore(agreement)
	svc := newService(store)
	principal := model.Principal{UserID: technicalID, Email: "carlos@prefeitura.gov.br", Name: "Carlos Lima"}

	report, err := svc.SaveReport(context.Background(), agreement.ID, "2024-06", nil, principal)
	require.NoError(t, err)

	assert.Equal(t, fiscalization.TemplateContinuousService, report.Template)
	assert.Equal(t, model.ReportStatusPendingTechnical, report.Status)
	assert.True(t, report.AdminRequired)
	assert.Equal(t, "Maria Souza", report.Administrative.Name)
	assert.NotEmpty(t, report.Content)
}

func TestSaveReportRejectsOtherUsers(t *testing.T) {
	agreement := testAgreement(uuid.New())
	store := newFakeStore(agreement)
	svc := newService(store)
	stranger := model.Principal{UserID: uuid.New(), Email: "outro@prefeitura.gov.br"}

	_, err := svc.SaveReport(context.Background(), agreement.ID, "2024-06", nil, stranger)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSaveReportRejectsBadMonth(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	svc := newService(newFakeStore(agreement))
	principal := model.Principal{UserID: technicalID}

	for _, month := range []string{"2024-6", "junho", "2024-13", ""} {
		_, err := svc.SaveReport(context.Background(), agreement.ID, month, nil, principal)
		assert.ErrorIs(t, err, ErrInvalidInput, "month %q", month)
	}
}

func TestOverseerChangeDoesNotReachInFlightReport(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	store := newFakeStore(agreement)
	svc := newService(store)
	principal := model.Principal{UserID: technicalID, Email: "carlos@prefeitura.gov.br", Name: "Carlos Lima"}

	_, err := svc.SaveReport(context.Background(), agreement.ID, "2024-06", nil, principal)
	require.NoError(t, err)

	// Removing the overseer after creation must not change the in-flight
	// workflow: the skip decision was frozen.
	store.agreement.AdministrativeName = ""
	store.agreement.RequiresAdministrative = false

	report, err := svc.Sign(context.Background(), agreement.ID, "2024-06", model.RoleTechnical, "cred", principal)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusPendingAdministrative, report.Status)
	assert.Equal(t, "Maria Souza", report.Administrative.Name)
}

func TestSaveReportLockedAfterTechnicalSignature(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	store := newFakeStore(agreement)
	svc := newService(store)
	principal := model.Principal{UserID: technicalID, Email: "carlos@prefeitura.gov.br", Name: "Carlos Lima"}

	_, err := svc.SaveReport(context.Background(), agreement.ID, "2024-06", nil, principal)
	require.NoError(t, err)
	_, err = svc.Sign(context.Background(), agreement.ID, "2024-06", model.RoleTechnical, "cred", principal)
	require.NoError(t, err)

	edited := model.ReportContent{{Key: "x", Title: "X"}}
	_, err = svc.SaveReport(context.Background(), agreement.ID, "2024-06", edited, principal)
	assert.ErrorIs(t, err, ErrReportLocked)
}

func TestSignLostRaceReportsOutOfTurn(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	store := newFakeStore(agreement)
	svc := newService(store)
	principal := model.Principal{UserID: technicalID, Email: "carlos@prefeitura.gov.br", Name: "Carlos Lima"}

	_, err := svc.SaveReport(context.Background(), agreement.ID, "2024-06", nil, principal)
	require.NoError(t, err)

	store.failCommits = 1
	_, err = svc.Sign(context.Background(), agreement.ID, "2024-06", model.RoleTechnical, "cred", principal)
	var outOfTurn *fiscalization.OutOfTurnError
	assert.ErrorAs(t, err, &outOfTurn)
}

func TestSignUnknownReport(t *testing.T) {
	technicalID := uuid.New()
	agreement := testAgreement(technicalID)
	svc := newService(newFakeStore(agreement))
	principal := model.Principal{UserID: technicalID}

	_, err := svc.Sign(context.Background(), agreement.ID, "2024-06", model.RoleTechnical, "cred", principal)
	assert.ErrorIs(t, err, ErrNotFound)
}
