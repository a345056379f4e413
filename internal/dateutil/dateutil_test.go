package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ataliba/contratos-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddDurationClampsToEndOfMonth(t *testing.T) {
	assert.Equal(t, date(2023, time.February, 28), AddDuration(date(2023, time.January, 31), 1, model.UnitMonths))
	assert.Equal(t, date(2024, time.February, 29), AddDuration(date(2024, time.January, 31), 1, model.UnitMonths))
	assert.Equal(t, date(2024, time.April, 30), AddDuration(date(2024, time.March, 31), 1, model.UnitMonths))
}

func TestAddDurationKeepsDayWhenPossible(t *testing.T) {
	assert.Equal(t, date(2024, time.July, 15), AddDuration(date(2024, time.March, 15), 4, model.UnitMonths))
	assert.Equal(t, date(2027, time.March, 15), AddDuration(date(2024, time.March, 15), 3, model.UnitYears))
	assert.Equal(t, date(2024, time.March, 2), AddDuration(date(2024, time.February, 21), 10, model.UnitDays))
}

func TestAddDurationYearRollover(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 10), AddDuration(date(2024, time.November, 10), 3, model.UnitMonths))
	// Feb 29 of a leap year clamps to Feb 28 one year later.
	assert.Equal(t, date(2025, time.February, 28), AddDuration(date(2024, time.February, 29), 1, model.UnitYears))
}

func TestAddDurationMalformedInputIsNoOp(t *testing.T) {
	d := date(2024, time.May, 20)
	assert.Equal(t, d, AddDuration(d, 3, model.DurationUnit("fortnights")))
	assert.Equal(t, d, AddDuration(d, 0, model.UnitMonths))
}

func TestAddDurationRoundTrip(t *testing.T) {
	starts := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.January, 15),
		date(2023, time.December, 31),
		date(2024, time.February, 29),
	}
	for _, start := range starts {
		for n := 1; n <= 14; n++ {
			forward := AddDuration(start, n, model.UnitMonths)
			back := AddDuration(forward, -n, model.UnitMonths)
			// Round trip lands on the original day or its
			// end-of-month clamp.
			assert.Equal(t, start.Year(), back.Year(), "start %s n %d", start, n)
			assert.Equal(t, start.Month(), back.Month(), "start %s n %d", start, n)
			assert.LessOrEqual(t, back.Day(), start.Day(), "start %s n %d", start, n)
		}
	}
}

func TestElapsedMonths(t *testing.T) {
	assert.Equal(t, 12, ElapsedMonths(date(2023, time.March, 10), date(2024, time.March, 10)))
	// Anniversary day not yet reached.
	assert.Equal(t, 11, ElapsedMonths(date(2023, time.March, 10), date(2024, time.March, 9)))
	assert.Equal(t, 0, ElapsedMonths(date(2024, time.March, 10), date(2024, time.March, 25)))
	// End before start clamps to zero.
	assert.Equal(t, 0, ElapsedMonths(date(2024, time.March, 10), date(2024, time.February, 1)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 30, DaysBetween(date(2024, time.June, 1), date(2024, time.July, 1)))
	assert.Equal(t, -1, DaysBetween(date(2024, time.June, 2), date(2024, time.June, 1)))
	assert.Equal(t, 0, DaysBetween(date(2024, time.June, 1), date(2024, time.June, 1)))
}
