// Package fiscalization implements the sequential sign-off workflow over
// monthly compliance reports and the report template catalogue.
package fiscalization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ataliba/contratos-service/internal/model"
)

// ErrReportCompleted is returned for any sign attempt on a report that
// already reached its terminal state.
var ErrReportCompleted = errors.New("relatório já concluído; nenhuma assinatura adicional é permitida")

// OutOfTurnError reports a signature attempted while the workflow awaits
// a different role.
type OutOfTurnError struct {
	Attempted model.SignerRole
	Awaited   model.SignerRole
}

func (e *OutOfTurnError) Error() string {
	return fmt.Sprintf("assinatura fora de ordem: o relatório aguarda %s", e.Awaited.Label())
}

// CredentialVerifier re-authenticates the acting user at the moment of
// signing. A stale session is never enough; every signature requires a
// fresh credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, credential string) error
}

// Workflow is the per-report state machine. The administrative step is a
// variant fixed at construction, never a flag re-checked per transition:
// reports created without an administrative overseer route straight from
// the technical signature to the manager.
type Workflow struct {
	status    model.ReportStatus
	adminStep bool
}

// WithAdministrativeStep builds the three-signature variant.
func WithAdministrativeStep() Workflow {
	return Workflow{status: model.ReportStatusPendingTechnical, adminStep: true}
}

// WithoutAdministrativeStep builds the two-signature variant.
func WithoutAdministrativeStep() Workflow {
	return Workflow{status: model.ReportStatusPendingTechnical, adminStep: false}
}

// ForAgreement chooses the variant for a new report. The decision is
// taken once, from the agreement's administrative-overseer assignment as
// it stands at report creation.
func ForAgreement(adminOverseerName string, requiresAdmin bool) Workflow {
	if requiresAdmin && adminOverseerName != "" {
		return WithAdministrativeStep()
	}
	return WithoutAdministrativeStep()
}

// Resume rebuilds the machine from persisted report fields.
func Resume(report model.FiscalizationReport) Workflow {
	return Workflow{status: report.Status, adminStep: report.AdminRequired}
}

func (w Workflow) Status() model.ReportStatus { return w.status }

func (w Workflow) HasAdministrativeStep() bool { return w.adminStep }

// AwaitedRole returns the role whose signature the workflow is waiting
// for, or false once completed.
func (w Workflow) AwaitedRole() (model.SignerRole, bool) {
	switch w.status {
	case model.ReportStatusPendingTechnical:
		return model.RoleTechnical, true
	case model.ReportStatusPendingAdministrative:
		return model.RoleAdministrative, true
	case model.ReportStatusPendingManager:
		return model.RoleManager, true
	default:
		return "", false
	}
}

// ExpectedStatus is the status a role may sign from.
func ExpectedStatus(role model.SignerRole) model.ReportStatus {
	switch role {
	case model.RoleTechnical:
		return model.ReportStatusPendingTechnical
	case model.RoleAdministrative:
		return model.ReportStatusPendingAdministrative
	default:
		return model.ReportStatusPendingManager
	}
}

// Advance validates that role is the one currently awaited and returns
// the machine in its next state. The receiver is untouched on error.
func (w Workflow) Advance(role model.SignerRole) (Workflow, error) {
	awaited, ok := w.AwaitedRole()
	if !ok {
		return w, ErrReportCompleted
	}
	if role != awaited {
		return w, &OutOfTurnError{Attempted: role, Awaited: awaited}
	}

	next := w
	switch w.status {
	case model.ReportStatusPendingTechnical:
		if w.adminStep {
			next.status = model.ReportStatusPendingAdministrative
		} else {
			next.status = model.ReportStatusPendingManager
		}
	case model.ReportStatusPendingAdministrative:
		next.status = model.ReportStatusPendingManager
	case model.ReportStatusPendingManager:
		next.status = model.ReportStatusCompleted
	}
	return next, nil
}

// Sign performs one transition on the report: state precondition, fresh
// re-authentication, then the role's signature stamp and the status
// advance. On any error the report is left untouched; no other role's
// fields are ever written.
func Sign(
	ctx context.Context,
	report *model.FiscalizationReport,
	role model.SignerRole,
	credential string,
	actor model.Principal,
	verifier CredentialVerifier,
	now time.Time,
) error {
	next, err := Resume(*report).Advance(role)
	if err != nil {
		return err
	}

	if err := verifier.Verify(ctx, actor.Email, credential); err != nil {
		return err
	}

	signedAt := now
	userID := actor.UserID
	signature := model.ReportSignature{
		UserID:   &userID,
		Name:     actor.Name,
		SignedAt: &signedAt,
	}

	switch role {
	case model.RoleTechnical:
		report.Technical = signature
	case model.RoleAdministrative:
		// Keep the name snapshotted at creation when present.
		if report.Administrative.Name != "" {
			signature.Name = report.Administrative.Name
		}
		report.Administrative = signature
	case model.RoleManager:
		report.Manager = signature
	}
	report.Status = next.Status()
	return nil
}
