package cancellation

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

const hoursPerDay = 24

// DaysUntil число календарных дней между датой asOf в часовом поясе loc и датой вылета.
// Вылет сегодня дает 0, прошедший вылет дает отрицательное число
func DaysUntil(flightDate, asOf time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := asOf.In(loc)

	flight := time.Date(flightDate.Year(), flightDate.Month(), flightDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	return int(flight.Sub(today).Hours()) / hoursPerDay
}

// ResolveFeePercentage процент комиссии для daysUntil.
// Активные уровни сортируются по DaysBefore по возрастанию, выигрывает первый с daysUntil <= DaysBefore.
// Если подходящего уровня нет или политика пуста, комиссия 0
func ResolveFeePercentage(tiers []domain.CancellationPolicyTier, daysUntil int) int {
	active := make([]domain.CancellationPolicyTier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsActive {
			active = append(active, t)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DaysBefore < active[j].DaysBefore
	})

	for _, t := range active {
		if daysUntil <= t.DaysBefore {
			return clampPercentage(t.FeePercentage)
		}
	}

	return 0
}

// ComputeQuote расчет комиссии и суммы возврата.
// Комиссия округляется вниз, fee + refund == totalPrice
func ComputeQuote(totalPrice int64, tiers []domain.CancellationPolicyTier, flightDate, asOf time.Time, loc *time.Location) domain.CancellationQuote {
	daysUntil := DaysUntil(flightDate, asOf, loc)
	pct := ResolveFeePercentage(tiers, daysUntil)
	fee := totalPrice * int64(pct) / 100

	return domain.CancellationQuote{
		TotalPrice:      totalPrice,
		FeePercentage:   pct,
		CancellationFee: fee,
		RefundAmount:    totalPrice - fee,
		DaysUntil:       daysUntil,
		CanCancel:       daysUntil >= 0,
	}
}

func clampPercentage(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
