package earnings

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const DefaultTimezone = "Africa/Abidjan"

// HourWindow is a half-open range of local hours, [Start, End).
type HourWindow struct {
	Start int
	End   int
}

func (w HourWindow) Contains(hour int) bool {
	return hour >= w.Start && hour < w.End
}

// DefaultPeakWindows are the lunch and dinner rushes.
var DefaultPeakWindows = []HourWindow{
	{Start: 12, End: 14},
	{Start: 19, End: 21},
}

// BusinessConfig holds the process-wide tariff settings. It is loaded once at start
// and passed by value into every calculation.
type BusinessConfig struct {
	DeliveryPersonPercentage decimal.Decimal `env:"DELIVERY_PERSON_PERCENTAGE" envDefault:"70"`
	LongDistanceThresholdKm  float64         `env:"DELIVERY_BONUS_LONG_DISTANCE_THRESHOLD" envDefault:"5"`
	LongDistanceAmount       decimal.Decimal `env:"DELIVERY_BONUS_LONG_DISTANCE_AMOUNT" envDefault:"200"`
	PeakHourAmount           decimal.Decimal `env:"DELIVERY_BONUS_PEAK_HOUR_AMOUNT" envDefault:"100"`
	WeekendPercent           decimal.Decimal `env:"DELIVERY_BONUS_WEEKEND_PERCENT" envDefault:"10"`
	DefaultCommissionRate    decimal.Decimal `env:"DEFAULT_COMMISSION_RATE" envDefault:"15"`
	Timezone                 string          `env:"BUSINESS_TIMEZONE" envDefault:"Africa/Abidjan"`

	Location    *time.Location
	PeakWindows []HourWindow
}

func DefaultBusinessConfig() BusinessConfig {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return BusinessConfig{
		DeliveryPersonPercentage: decimal.NewFromInt(70),
		LongDistanceThresholdKm:  5,
		LongDistanceAmount:       decimal.NewFromInt(200),
		PeakHourAmount:           decimal.NewFromInt(100),
		WeekendPercent:           decimal.NewFromInt(10),
		DefaultCommissionRate:    decimal.NewFromInt(15),
		Timezone:                 DefaultTimezone,
		Location:                 loc,
		PeakWindows:              DefaultPeakWindows,
	}
}

// LoadLocation resolves Timezone into Location and fills the default peak windows.
func (c *BusinessConfig) LoadLocation() error {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("unknown business timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc
	if len(c.PeakWindows) == 0 {
		c.PeakWindows = DefaultPeakWindows
	}
	return nil
}

func (c BusinessConfig) Validate() error {
	if err := ValidateRate("delivery_person_percentage", c.DeliveryPersonPercentage); err != nil {
		return err
	}
	if err := ValidateRate("delivery_bonus_weekend_percent", c.WeekendPercent); err != nil {
		return err
	}
	if err := ValidateRate("default_commission_rate", c.DefaultCommissionRate); err != nil {
		return err
	}
	if err := ValidateAmount("delivery_bonus_long_distance_amount", c.LongDistanceAmount); err != nil {
		return err
	}
	if err := ValidateAmount("delivery_bonus_peak_hour_amount", c.PeakHourAmount); err != nil {
		return err
	}
	if c.LongDistanceThresholdKm < 0 {
		return &InvalidRateError{
			Field:  "delivery_bonus_long_distance_threshold",
			Value:  decimal.NewFromFloat(c.LongDistanceThresholdKm),
			Reason: "must not be negative",
		}
	}
	for _, w := range c.PeakWindows {
		if w.Start < 0 || w.End > 24 || w.Start >= w.End {
			return fmt.Errorf("invalid peak window [%d,%d)", w.Start, w.End)
		}
	}
	return nil
}

func (c BusinessConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c BusinessConfig) peakWindows() []HourWindow {
	if c.PeakWindows == nil {
		return DefaultPeakWindows
	}
	return c.PeakWindows
}
