package progress

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"
)

func TestComputeScenarios(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		timezone      string
		wantYear      int
		wantDay       int
		wantRemaining int
		wantTotal     int
		wantPct       string
	}{
		{
			name:          "leap year first of march",
			now:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			timezone:      "UTC",
			wantYear:      2024,
			wantDay:       61,
			wantRemaining: 305,
			wantTotal:     366,
			wantPct:       "16.7",
		},
		{
			name:          "kiritimati rolls into the new year",
			now:           time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			timezone:      "Pacific/Kiritimati",
			wantYear:      2024,
			wantDay:       1,
			wantRemaining: 365,
			wantTotal:     366,
			wantPct:       "0.3",
		},
		{
			name:          "last day of common year",
			now:           time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
			timezone:      "UTC",
			wantYear:      2023,
			wantDay:       365,
			wantRemaining: 0,
			wantTotal:     365,
			wantPct:       "100.0",
		},
		{
			name:          "negative offset stays in previous year",
			now:           time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC),
			timezone:      "America/New_York",
			wantYear:      2024,
			wantDay:       366,
			wantRemaining: 0,
			wantTotal:     366,
			wantPct:       "100.0",
		},
		{
			name:          "first day of common year",
			now:           time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			timezone:      "UTC",
			wantYear:      2025,
			wantDay:       1,
			wantRemaining: 364,
			wantTotal:     365,
			wantPct:       "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.now, tt.timezone)
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", got.Year, tt.wantYear)
			}
			if got.DayOfYear != tt.wantDay {
				t.Errorf("DayOfYear = %d, want %d", got.DayOfYear, tt.wantDay)
			}
			if got.DaysRemaining != tt.wantRemaining {
				t.Errorf("DaysRemaining = %d, want %d", got.DaysRemaining, tt.wantRemaining)
			}
			if got.TotalDays != tt.wantTotal {
				t.Errorf("TotalDays = %d, want %d", got.TotalDays, tt.wantTotal)
			}
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %s, want %s", got.Percentage, tt.wantPct)
			}
		})
	}
}

func TestComputeFormats(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)

	got, err := Compute(now, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	// 14:05 UTC is 19:35 IST.
	if got.Date != "Friday, 1 March" {
		t.Errorf("Date = %q, want %q", got.Date, "Friday, 1 March")
	}
	if got.Time != "7:35 PM" {
		t.Errorf("Time = %q, want %q", got.Time, "7:35 PM")
	}
	if got.GeneratedAt != "19:35 on 01 Mar" {
		t.Errorf("GeneratedAt = %q, want %q", got.GeneratedAt, "19:35 on 01 Mar")
	}
}

func TestComputeInvalidTimezone(t *testing.T) {
	for _, tz := range []string{"", "Not/AZone", "Mars/Olympus_Mons"} {
		t.Run(tz, func(t *testing.T) {
			_, err := Compute(time.Now(), tz)
			if err == nil {
				t.Fatalf("Compute(%q) expected error", tz)
			}
			if !errors.Is(err, ErrInvalidTimezone) {
				t.Errorf("Compute(%q) error = %v, want ErrInvalidTimezone", tz, err)
			}
		})
	}
}

func TestDayArithmeticInvariant(t *testing.T) {
	zones := []string{"UTC", "Pacific/Kiritimati", "Pacific/Pago_Pago", "Asia/Kolkata", "Europe/London"}
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)

	for _, tz := range zones {
		// Walk a span covering a common-to-leap year boundary in 7 hour steps.
		for ts := start; ts.Before(start.AddDate(0, 0, 20)); ts = ts.Add(7 * time.Hour) {
			f, err := Compute(ts, tz)
			if err != nil {
				t.Fatalf("Compute(%s, %s) unexpected error: %v", ts, tz, err)
			}
			if f.DayOfYear+f.DaysRemaining != f.TotalDays {
				t.Fatalf("%s in %s: %d + %d != %d", ts, tz, f.DayOfYear, f.DaysRemaining, f.TotalDays)
			}
			if f.TotalDays != DaysInYear(f.Year) {
				t.Fatalf("%s in %s: TotalDays %d for year %d", ts, tz, f.TotalDays, f.Year)
			}
		}
	}
}

func TestPercentageMonotonic(t *testing.T) {
	prev := -1.0
	for ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); ts.Year() == 2025; ts = ts.Add(13 * time.Hour) {
		f, err := Compute(ts, "UTC")
		if err != nil {
			t.Fatalf("Compute() unexpected error: %v", err)
		}
		pct, err := strconv.ParseFloat(f.Percentage, 64)
		if err != nil {
			t.Fatalf("Percentage %q not numeric: %v", f.Percentage, err)
		}
		if pct < prev {
			t.Fatalf("percentage decreased at %s: %v < %v", ts, pct, prev)
		}
		prev = pct
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		day, total int
		want       string
	}{
		{61, 366, "16.7"},
		{1, 365, "0.3"},
		{365, 365, "100.0"},
		{183, 366, "50.0"},
		// 73/365 = 20.0 exactly.
		{73, 365, "20.0"},
		// 1/8*100 = 12.5 -> 12.5; 1/16*100 = 6.25 -> half up to 6.3.
		{1, 16, "6.3"},
		{0, 0, "0.0"},
	}

	for _, tt := range tests {
		if got := Percentage(tt.day, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %s, want %s", tt.day, tt.total, got, tt.want)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := map[int]bool{
		1900: false,
		2000: true,
		2023: false,
		2024: true,
		2100: false,
		2400: true,
	}
	for year, want := range tests {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestCalculatorSamplesClockOnce(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	}

	f, err := NewCalculator(clock).Compute("UTC")
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("clock sampled %d times, want 1", calls)
	}
	if f.DayOfYear != 61 {
		t.Errorf("DayOfYear = %d, want 61", f.DayOfYear)
	}
}

func TestFraction(t *testing.T) {
	f := Facts{Percentage: "16.7"}
	if got := f.Fraction(); math.Abs(got-0.167) > 1e-9 {
		t.Errorf("Fraction() = %v, want 0.167", got)
	}
	if got := (Facts{Percentage: "bogus"}).Fraction(); got != 0 {
		t.Errorf("Fraction() of malformed percentage = %v, want 0", got)
	}
}
