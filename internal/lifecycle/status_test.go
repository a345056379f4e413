package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ataliba/contratos-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatusDateWindows(t *testing.T) {
	today := date(2024, time.June, 15)

	assert.Equal(t, model.AgreementStatusExpired,
		DeriveStatus(today.AddDate(0, 0, -1), model.ManualStatusAutomatic, today))
	assert.Equal(t, model.AgreementStatusWarning,
		DeriveStatus(today, model.ManualStatusAutomatic, today))
	assert.Equal(t, model.AgreementStatusWarning,
		DeriveStatus(today.AddDate(0, 0, 30), model.ManualStatusAutomatic, today))
	assert.Equal(t, model.AgreementStatusActive,
		DeriveStatus(today.AddDate(0, 0, 31), model.ManualStatusAutomatic, today))
}

func TestDeriveStatusManualOverrideWins(t *testing.T) {
	today := date(2024, time.June, 15)
	farFuture := date(2030, time.January, 1)
	past := date(2020, time.January, 1)

	for _, end := range []time.Time{farFuture, past} {
		assert.Equal(t, model.AgreementStatusExecuted,
			DeriveStatus(end, model.ManualStatusExecuted, today))
		assert.Equal(t, model.AgreementStatusRescinded,
			DeriveStatus(end, model.ManualStatusRescinded, today))
	}
}

func TestDaysRemaining(t *testing.T) {
	today := date(2024, time.June, 15)
	end := date(2024, time.July, 5)

	days := DaysRemaining(model.AgreementStatusActive, end, today)
	if assert.NotNil(t, days) {
		assert.Equal(t, 20, *days)
	}

	assert.Nil(t, DaysRemaining(model.AgreementStatusExpired, end, today))
	assert.Nil(t, DaysRemaining(model.AgreementStatusExecuted, end, today))
	assert.Nil(t, DaysRemaining(model.AgreementStatusRescinded, end, today))
}
