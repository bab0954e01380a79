package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusBreakdown keeps each bonus separate. TotalBonus is their sum and FinalFee is
// what the customer is charged for delivery.
type BonusBreakdown struct {
	BaseFee      decimal.Decimal `json:"base_fee"`
	LongDistance decimal.Decimal `json:"long_distance"`
	PeakHour     decimal.Decimal `json:"peak_hour"`
	Weekend      decimal.Decimal `json:"weekend"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TotalBonus   decimal.Decimal `json:"total_bonus"`
	FinalFee     decimal.Decimal `json:"final_fee"`
}

// ComputeBonuses applies the long-distance, peak-hour and weekend rules in that order.
// The weekend bonus is a percentage of the running subtotal, not of the base fee.
// Hour and weekday are read in the configured business timezone.
func ComputeBonuses(baseFee decimal.Decimal, distanceKm float64, at time.Time, cfg BusinessConfig) BonusBreakdown {
	b := BonusBreakdown{
		BaseFee:      baseFee,
		LongDistance: decimal.Zero,
		PeakHour:     decimal.Zero,
		Weekend:      decimal.Zero,
	}

	if distanceKm > cfg.LongDistanceThresholdKm {
		b.LongDistance = cfg.LongDistanceAmount
	}

	local := at.In(cfg.location())
	if IsPeakHour(local.Hour(), cfg) {
		b.PeakHour = cfg.PeakHourAmount
	}

	b.Subtotal = baseFee.Add(b.LongDistance).Add(b.PeakHour)

	if IsWeekend(local.Weekday()) {
		b.Weekend = RoundUnit(percentOf(b.Subtotal, cfg.WeekendPercent))
	}

	b.TotalBonus = b.LongDistance.Add(b.PeakHour).Add(b.Weekend)
	b.FinalFee = baseFee.Add(b.TotalBonus)
	return b
}

// IsPeakHour reports whether hour falls in any peak window. Windows never overlap,
// so at most one peak bonus applies.
func IsPeakHour(hour int, cfg BusinessConfig) bool {
	for _, w := range cfg.peakWindows() {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}

func IsWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
