package scores

import (
	"testing"
	"time"
)

func TestNormalized(t *testing.T) {
	cases := []struct {
		name  string
		score int
		max   int
		want  float64
	}{
		{
			name:  "zero_max_guards_division",
			score: 50,
			max:   0,
			want:  0,
		},
		{
			name:  "negative_max_guards_division",
			score: 50,
			max:   -10,
			want:  0,
		},
		{
			name:  "small_day_uses_ten_scale",
			score: 30,
			max:   60,
			want:  5,
		},
		{
			name:  "small_day_rounds_one_decimal",
			score: 10,
			max:   30,
			want:  3.3,
		},
		{
			name:  "large_day_uses_percent_scale",
			score: 150,
			max:   200,
			want:  75,
		},
		{
			name:  "boundary_max_of_100_is_percent",
			score: 33,
			max:   100,
			want:  33,
		},
		{
			name:  "boundary_max_of_99_is_ten_scale",
			score: 99,
			max:   99,
			want:  10,
		},
		{
			name:  "full_small_day_hits_ten",
			score: 60,
			max:   60,
			want:  10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalized(tc.score, tc.max)
			if got != tc.want {
				t.Fatalf("Normalized(%d, %d)=%v, want %v", tc.score, tc.max, got, tc.want)
			}
		})
	}
}

func TestPercentageZeroMax(t *testing.T) {
	if got := Percentage(10, 0); got != 0 {
		t.Fatalf("Percentage(10, 0)=%v, want 0", got)
	}
}

func TestDelta(t *testing.T) {
	cases := []struct {
		name      string
		score     int
		max       int
		prevScore int
		prevMax   int
		want      *float64
	}{
		{
			name:  "improvement",
			score: 30, max: 60,
			prevScore: 15, prevMax: 60,
			want: ptr(25.0),
		},
		{
			name:  "decline",
			score: 10, max: 100,
			prevScore: 50, prevMax: 100,
			want: ptr(-40.0),
		},
		{
			name:  "different_max_scales_compare_by_percentage",
			score: 30, max: 60,
			prevScore: 25, prevMax: 100,
			want: ptr(25.0),
		},
		{
			name:  "no_previous_max_yields_nil",
			score: 30, max: 60,
			prevScore: 0, prevMax: 0,
			want: nil,
		},
		{
			name:  "no_current_max_yields_nil",
			score: 0, max: 0,
			prevScore: 30, prevMax: 60,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Delta(tc.score, tc.max, tc.prevScore, tc.prevMax)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("Delta=%v, want %v", fmtPtr(got), fmtPtr(tc.want))
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("Delta=%v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestActiveHoursBothTimes(t *testing.T) {
	wake := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	sleep := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	got := ActiveHours(&wake, &sleep, false, time.Time{})
	if got == nil || *got != 15.5 {
		t.Fatalf("ActiveHours=%v, want 15.5", fmtPtr(got))
	}
}

func TestActiveHoursCrossMidnight(t *testing.T) {
	wake := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	sleep := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	got := ActiveHours(&wake, &sleep, false, time.Time{})
	if got == nil || *got != 8 {
		t.Fatalf("ActiveHours=%v, want 8", fmtPtr(got))
	}
}

func TestActiveHoursWakeOnlyToday(t *testing.T) {
	wake := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 14, 15, 0, 0, time.UTC)
	got := ActiveHours(&wake, nil, true, now)
	if got == nil || *got != 6.3 {
		t.Fatalf("ActiveHours=%v, want 6.3", fmtPtr(got))
	}
}

func TestActiveHoursWakeOnlyPastDay(t *testing.T) {
	wake := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	if got := ActiveHours(&wake, nil, false, time.Now()); got != nil {
		t.Fatalf("ActiveHours=%v, want nil for a past day without sleep time", *got)
	}
}

func TestActiveHoursNoWake(t *testing.T) {
	sleep := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	if got := ActiveHours(nil, &sleep, true, time.Now()); got != nil {
		t.Fatalf("ActiveHours=%v, want nil without a wake time", *got)
	}
}

func ptr(f float64) *float64 { return &f }

func fmtPtr(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
