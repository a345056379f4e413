package lifecycle

import (
	"fmt"
	"time"

	"github.com/ataliba/contratos-service/internal/dateutil"
	"github.com/ataliba/contratos-service/internal/model"
)

const (
	emergencyLimitMonths = 12
	ordinaryLimitMonths  = 60
	extendedLimitMonths  = 120
)

// Renewal computes how many months of renewal remain under the statutory
// vigency limits. Emergency agreements are capped at 12 months flat.
// Ordinary agreements are capped at 60 months, but once the term already
// ran past 60 the 120-month ceiling applies instead. Elapsed months are
// measured from the start date to the projected end date, so amendments
// still under review already count against the limit. The advisory is
// informational only; it never blocks anything.
func Renewal(start, projectedEnd time.Time, emergency bool) model.RenewalAdvisory {
	elapsed := dateutil.ElapsedMonths(start, projectedEnd)

	limit := ordinaryLimitMonths
	if emergency {
		limit = emergencyLimitMonths
	} else if elapsed >= ordinaryLimitMonths {
		limit = extendedLimitMonths
	}

	remaining := limit - elapsed
	advisory := model.RenewalAdvisory{
		ElapsedMonths:   elapsed,
		LimitMonths:     limit,
		RemainingMonths: remaining,
	}

	switch {
	case remaining > 0:
		advisory.Message = fmt.Sprintf(
			"Vigência de %d meses; prorrogação possível por mais %d meses (limite de %d meses).",
			elapsed, remaining, limit)
	case remaining == 0:
		advisory.Message = fmt.Sprintf(
			"Limite de vigência de %d meses atingido; não há prazo restante para prorrogação.",
			limit)
	default:
		advisory.Message = fmt.Sprintf(
			"Vigência atual de %d meses excede o limite legal de %d meses.",
			elapsed, limit)
	}
	return advisory
}
