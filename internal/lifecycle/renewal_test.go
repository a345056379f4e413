package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenewalOrdinaryBelowShortLimit(t *testing.T) {
	start := date(2019, time.July, 1)
	end := start.AddDate(0, 59, 0)

	advisory := Renewal(start, end, false)
	assert.Equal(t, 59, advisory.ElapsedMonths)
	assert.Equal(t, 60, advisory.LimitMonths)
	assert.Equal(t, 1, advisory.RemainingMonths)
	assert.Contains(t, advisory.Message, "mais 1 meses")
}

func TestRenewalOrdinaryFlipsToLongLimit(t *testing.T) {
	start := date(2019, time.July, 1)
	end := start.AddDate(0, 60, 0)

	advisory := Renewal(start, end, false)
	assert.Equal(t, 60, advisory.ElapsedMonths)
	assert.Equal(t, 120, advisory.LimitMonths)
	assert.Equal(t, 60, advisory.RemainingMonths)
}

func TestRenewalEmergencyExceeded(t *testing.T) {
	start := date(2023, time.March, 1)
	end := start.AddDate(0, 13, 0)

	advisory := Renewal(start, end, true)
	assert.Equal(t, 13, advisory.ElapsedMonths)
	assert.Equal(t, 12, advisory.LimitMonths)
	assert.Equal(t, -1, advisory.RemainingMonths)
	assert.Contains(t, advisory.Message, "excede o limite legal de 12 meses")
}

func TestRenewalLimitReached(t *testing.T) {
	start := date(2023, time.March, 1)
	end := start.AddDate(0, 12, 0)

	advisory := Renewal(start, end, true)
	assert.Equal(t, 0, advisory.RemainingMonths)
	assert.Contains(t, advisory.Message, "não há prazo restante")
}

func TestRenewalAnniversaryDayRule(t *testing.T) {
	start := date(2023, time.March, 10)
	end := date(2024, time.March, 9)

	advisory := Renewal(start, end, true)
	assert.Equal(t, 11, advisory.ElapsedMonths)
	assert.Equal(t, 1, advisory.RemainingMonths)
}
