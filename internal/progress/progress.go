// Package progress computes how far through the calendar year an instant is,
// measured on the wall clock of an IANA timezone.
package progress

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidTimezone is returned when a timezone identifier cannot be resolved.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Presentation layouts. These strings are drawn into the wallpaper verbatim.
const (
	DateLayout        = "Monday, 2 January"
	TimeLayout        = "3:04 PM"
	GeneratedAtLayout = "15:04 on 02 Jan"
)

// Facts holds the year-progress statistics for one instant in one timezone.
type Facts struct {
	Year          int    `json:"year"`
	DayOfYear     int    `json:"dayOfYear"`
	DaysRemaining int    `json:"daysRemaining"`
	TotalDays     int    `json:"totalDays"`
	Percentage    string `json:"percentage"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	GeneratedAt   string `json:"generatedAt"`
}

// Fraction returns the completed share of the year as parsed from Percentage,
// so geometry drawn from it agrees with the printed figure.
func (f Facts) Fraction() float64 {
	pct, err := strconv.ParseFloat(f.Percentage, 64)
	if err != nil {
		return 0
	}
	return pct / 100
}

// LoadLocation resolves an IANA zone identifier.
// Unlike time.LoadLocation it rejects the empty string instead of treating it as UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidTimezone, timezone, err)
	}
	return loc, nil
}

// Compute returns the progress facts for now as observed in timezone.
func Compute(now time.Time, timezone string) (Facts, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Facts{}, err
	}
	return ComputeIn(now, loc), nil
}

// ComputeIn is Compute with an already resolved location.
func ComputeIn(now time.Time, loc *time.Location) Facts {
	zoned := now.In(loc)
	year := zoned.Year()
	total := DaysInYear(year)
	day := zoned.YearDay()

	return Facts{
		Year:          year,
		DayOfYear:     day,
		DaysRemaining: total - day,
		TotalDays:     total,
		Percentage:    Percentage(day, total),
		Date:          zoned.Format(DateLayout),
		Time:          zoned.Format(TimeLayout),
		GeneratedAt:   zoned.Format(GeneratedAtLayout),
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// Percentage formats day/total*100 with one fractional digit, rounding half up.
// The arithmetic is done on integers so the result never depends on float rounding.
func Percentage(day, total int) string {
	if total <= 0 {
		return "0.0"
	}
	// tenths = round(day * 1000 / total), half up.
	tenths := (day*2000 + total) / (2 * total)
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// Calculator samples a clock exactly once per call.
type Calculator struct {
	now func() time.Time
}

// NewCalculator creates a Calculator. A nil clock defaults to time.Now.
func NewCalculator(clock func() time.Time) *Calculator {
	if clock == nil {
		clock = time.Now
	}
	return &Calculator{now: clock}
}

// Now returns the current instant according to the calculator's clock.
func (c *Calculator) Now() time.Time {
	return c.now()
}

// Compute returns the facts for the current instant in timezone.
func (c *Calculator) Compute(timezone string) (Facts, error) {
	return Compute(c.now(), timezone)
}
