package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPendingTechnical      ReportStatus = "pending_technical"
	ReportStatusPendingAdministrative ReportStatus = "pending_administrative"
	ReportStatusPendingManager        ReportStatus = "pending_manager"
	ReportStatusCompleted             ReportStatus = "completed"
)

func (s ReportStatus) Label() string {
	switch s {
	case ReportStatusPendingTechnical:
		return "Aguardando fiscal técnico"
	case ReportStatusPendingAdministrative:
		return "Aguardando fiscal administrativo"
	case ReportStatusPendingManager:
		return "Aguardando gestor"
	case ReportStatusCompleted:
		return "Concluído"
	default:
		return string(s)
	}
}

func (s ReportStatus) Color() string {
	switch s {
	case ReportStatusCompleted:
		return "green"
	default:
		return "orange"
	}
}

type SignerRole string

const (
	RoleTechnical      SignerRole = "technical"
	RoleAdministrative SignerRole = "administrative"
	RoleManager        SignerRole = "manager"
)

func (r SignerRole) Label() string {
	switch r {
	case RoleTechnical:
		return "Fiscal técnico"
	case RoleAdministrative:
		return "Fiscal administrativo"
	case RoleManager:
		return "Gestor do contrato"
	default:
		return string(r)
	}
}

type ReportSignature struct {
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Name     string     `json:"name,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
}

func (s ReportSignature) Signed() bool {
	return s.SignedAt != nil
}

type FieldKind string

const (
	FieldBoolean   FieldKind = "boolean"
	FieldNarrative FieldKind = "narrative"
)

type ReportField struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Checked *bool     `json:"checked,omitempty"`
	Text    string    `json:"text,omitempty"`
}

type ReportSection struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Fields []ReportField `json:"fields"`
}

type ReportContent []ReportSection

// FiscalizationReport is the monthly compliance attestation for one
// agreement. At most one exists per (AgreementID, RefMonth), RefMonth in
// "YYYY-MM" form. The administrative signer name and the AdminRequired
// flag are snapshotted at creation and never re-derived.
type FiscalizationReport struct {
	ID             uuid.UUID
	AgreementID    uuid.UUID
	RefMonth       string
	Template       string
	Status         ReportStatus
	AdminRequired  bool
	Content        ReportContent
	Technical      ReportSignature
	Administrative ReportSignature
	Manager        ReportSignature
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReportDocument bundles everything the PDF rendering needs.
type ReportDocument struct {
	View   AgreementView
	Report FiscalizationReport
}
