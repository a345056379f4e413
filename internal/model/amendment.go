package model

import (
	"time"

	"github.com/google/uuid"
)

type AmendmentKind string

const (
	AmendmentKindTermExtension AmendmentKind = "term-extension"
	AmendmentKindValueChange   AmendmentKind = "value-change"
)

type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitMonths DurationUnit = "months"
	UnitYears  DurationUnit = "years"
)

// AmendmentChecklist mirrors the eight processing steps of an amendment.
// WitnessSigned is the final step; it alone decides conclusion.
type AmendmentChecklist struct {
	TermDrafted        bool
	LegalReview        bool
	BudgetCommitment   bool
	ManagementApproval bool
	PartiesNotified    bool
	GazettePublished   bool
	CounterpartSigned  bool
	WitnessSigned      bool
}

type Amendment struct {
	ID          uuid.UUID
	AgreementID uuid.UUID
	Kind        AmendmentKind
	Duration    int
	Unit        DurationUnit
	EntryDate   time.Time
	StatusLabel string
	Checklist   AmendmentChecklist
	CreatedAt   time.Time
}

// Concluded reports whether the amendment counts for the confirmed
// end-date chain.
func (a Amendment) Concluded() bool {
	return a.Checklist.WitnessSigned
}
