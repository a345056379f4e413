package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ataliba/contratos-service/internal/model"
)

func extension(duration int, unit model.DurationUnit, concluded bool, entry time.Time) model.Amendment {
	return model.Amendment{
		Kind:      model.AmendmentKindTermExtension,
		Duration:  duration,
		Unit:      unit,
		EntryDate: entry,
		Checklist: model.AmendmentChecklist{WitnessSigned: concluded},
	}
}

func TestResolveChainUnconcludedOnlyMovesProjected(t *testing.T) {
	originalEnd := date(2024, time.January, 31)
	amendments := []model.Amendment{
		extension(1, model.UnitMonths, false, date(2023, time.December, 1)),
	}

	chain := ResolveChain(originalEnd, amendments)
	assert.Equal(t, date(2024, time.January, 31), chain.ConfirmedEnd)
	assert.Equal(t, date(2024, time.February, 29), chain.ProjectedEnd)
	assert.True(t, chain.ExtensionPending())
}

func TestResolveChainSkipsUnconcludedInPlace(t *testing.T) {
	originalEnd := date(2024, time.January, 31)
	amendments := []model.Amendment{
		extension(6, model.UnitMonths, false, date(2023, time.October, 1)),
		extension(1, model.UnitYears, true, date(2023, time.December, 1)),
	}

	chain := ResolveChain(originalEnd, amendments)
	// The concluded second amendment chains from the original end even
	// though the first is still open.
	assert.Equal(t, date(2025, time.January, 31), chain.ConfirmedEnd)
	assert.Equal(t, date(2025, time.July, 31), chain.ProjectedEnd)
}

func TestResolveChainIgnoresValueChanges(t *testing.T) {
	originalEnd := date(2024, time.March, 15)
	amendments := []model.Amendment{
		{
			Kind:      model.AmendmentKindValueChange,
			Duration:  12,
			Unit:      model.UnitMonths,
			Checklist: model.AmendmentChecklist{WitnessSigned: true},
		},
		extension(45, model.UnitDays, true, date(2024, time.January, 5)),
	}

	chain := ResolveChain(originalEnd, amendments)
	assert.Equal(t, date(2024, time.April, 29), chain.ConfirmedEnd)
	assert.Equal(t, chain.ConfirmedEnd, chain.ProjectedEnd)
	assert.False(t, chain.ExtensionPending())
}

func TestResolveChainNoAmendments(t *testing.T) {
	originalEnd := date(2024, time.March, 15)
	chain := ResolveChain(originalEnd, nil)
	assert.Equal(t, originalEnd, chain.ConfirmedEnd)
	assert.Equal(t, originalEnd, chain.ProjectedEnd)
}
