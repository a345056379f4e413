package model

import (
	"time"

	"github.com/google/uuid"
)

type AgreementStatus string

const (
	AgreementStatusActive    AgreementStatus = "active"
	AgreementStatusWarning   AgreementStatus = "warning"
	AgreementStatusExpired   AgreementStatus = "expired"
	AgreementStatusExecuted  AgreementStatus = "executed"
	AgreementStatusRescinded AgreementStatus = "rescinded"
)

// Terminal reports whether the status ends date-based tracking: days
// remaining is meaningless once an agreement is in a terminal status.
func (s AgreementStatus) Terminal() bool {
	switch s {
	case AgreementStatusExpired, AgreementStatusExecuted, AgreementStatusRescinded:
		return true
	}
	return false
}

func (s AgreementStatus) Label() string {
	switch s {
	case AgreementStatusActive:
		return "Vigente"
	case AgreementStatusWarning:
		return "Vencendo"
	case AgreementStatusExpired:
		return "Vencido"
	case AgreementStatusExecuted:
		return "Executado"
	case AgreementStatusRescinded:
		return "Rescindido"
	default:
		return string(s)
	}
}

func (s AgreementStatus) Color() string {
	switch s {
	case AgreementStatusActive:
		return "green"
	case AgreementStatusWarning:
		return "orange"
	case AgreementStatusExpired:
		return "red"
	case AgreementStatusExecuted:
		return "blue"
	case AgreementStatusRescinded:
		return "gray"
	default:
		return "gray"
	}
}

type ManualStatus string

const (
	ManualStatusAutomatic ManualStatus = "automatic"
	ManualStatusExecuted  ManualStatus = "executed"
	ManualStatusRescinded ManualStatus = "rescinded"
)

type Agreement struct {
	ID                     uuid.UUID
	Number                 string
	Category               string
	Department             string
	StartDate              time.Time
	EndDate                time.Time // original end date, before amendments
	ManualStatus           ManualStatus
	IsEmergency            bool
	ManagerName            string
	ManagerUserID          *uuid.UUID
	TechnicalName          string
	TechnicalUserID        *uuid.UUID
	AdministrativeName     string
	AdministrativeUserID   *uuid.UUID
	RequiresAdministrative bool
	CreatedAt              time.Time
}

type RenewalAdvisory struct {
	ElapsedMonths   int
	LimitMonths     int
	RemainingMonths int
	Message         string
}

// AgreementView is the fully derived read model consumed by the
// presentation layer and the register export. Derived fields are never
// persisted; they are recomputed on every read.
type AgreementView struct {
	Agreement        Agreement
	Status           AgreementStatus
	DaysRemaining    *int // nil once the status is terminal
	ConfirmedEnd     time.Time
	ProjectedEnd     time.Time
	ExtensionPending bool // projected differs from confirmed
	Renewal          RenewalAdvisory
	Amendments       []Amendment
}

type AgreementRegister struct {
	GeneratedAt time.Time
	Entries     []AgreementView
}
