// Package lifecycle derives an agreement's status, renewal eligibility
// and amendment-adjusted end dates. Everything here is a pure transform
// over its inputs; persistence never stores the results.
package lifecycle

import (
	"time"

	"github.com/ataliba/contratos-service/internal/dateutil"
	"github.com/ataliba/contratos-service/internal/model"
)

// WarningWindowDays is how close to the effective end date an agreement
// is flagged as expiring.
const WarningWindowDays = 30

// DeriveStatus computes the lifecycle status from the effective
// (confirmed) end date. A manual executed/rescinded override wins
// unconditionally; no date logic applies after it.
func DeriveStatus(effectiveEnd time.Time, manual model.ManualStatus, today time.Time) model.AgreementStatus {
	switch manual {
	case model.ManualStatusExecuted:
		return model.AgreementStatusExecuted
	case model.ManualStatusRescinded:
		return model.AgreementStatusRescinded
	}

	remaining := dateutil.DaysBetween(today, effectiveEnd)
	switch {
	case remaining < 0:
		return model.AgreementStatusExpired
	case remaining <= WarningWindowDays:
		return model.AgreementStatusWarning
	default:
		return model.AgreementStatusActive
	}
}

// DaysRemaining returns the whole days until the effective end date, or
// nil when the status is terminal and the figure is meaningless.
func DaysRemaining(status model.AgreementStatus, effectiveEnd, today time.Time) *int {
	if status.Terminal() {
		return nil
	}
	days := dateutil.DaysBetween(today, effectiveEnd)
	return &days
}
