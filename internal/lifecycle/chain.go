package lifecycle

import (
	"time"

	"github.com/ataliba/contratos-service/internal/dateutil"
	"github.com/ataliba/contratos-service/internal/model"
)

// ChainResult carries the two amendment-adjusted end dates. Confirmed
// counts only concluded term extensions and is the effective end date
// for status and days-remaining. Projected counts every term extension
// and is shown to the user as pending when the two differ.
type ChainResult struct {
	ConfirmedEnd time.Time
	ProjectedEnd time.Time
}

func (c ChainResult) ExtensionPending() bool {
	return !c.ConfirmedEnd.Equal(c.ProjectedEnd)
}

// ResolveChain folds the term-extension amendments over the original end
// date, in entry-date order. The confirmed fold skips unconcluded
// amendments in place and keeps chaining through later concluded ones;
// a concluded amendment therefore applies even when an earlier one is
// still open. Changing that skip policy changes legally effective dates,
// so it stays as is.
func ResolveChain(originalEnd time.Time, amendments []model.Amendment) ChainResult {
	confirmed := dateutil.DateOnly(originalEnd)
	projected := confirmed

	for _, amendment := range amendments {
		if amendment.Kind != model.AmendmentKindTermExtension {
			continue
		}
		projected = dateutil.AddDuration(projected, amendment.Duration, amendment.Unit)
		if amendment.Concluded() {
			confirmed = dateutil.AddDuration(confirmed, amendment.Duration, amendment.Unit)
		}
	}

	return ChainResult{ConfirmedEnd: confirmed, ProjectedEnd: projected}
}
