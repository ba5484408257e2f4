package domain_test

import (
	"testing"
	"time"

	"wellquest/internal/modules/arcade/domain"
)

func TestRhythmQuality(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		interval time.Duration
		ideal    time.Duration
		scale    int
		want     int
	}{
		{"perfect", 1000 * time.Millisecond, 1000 * time.Millisecond, 10, 100},
		{"slightly off", 1050 * time.Millisecond, 1000 * time.Millisecond, 10, 95},
		{"early counts like late", 950 * time.Millisecond, 1000 * time.Millisecond, 10, 95},
		{"way off floors at zero", 5 * time.Second, 1000 * time.Millisecond, 10, 0},
		{"squat hold scale", 2600 * time.Millisecond, 2500 * time.Millisecond, 50, 98},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.RhythmQuality(tc.interval, tc.ideal, tc.scale); got != tc.want {
				t.Fatalf("RhythmQuality(%v, %v, %d) = %d, want %d", tc.interval, tc.ideal, tc.scale, got, tc.want)
			}
		})
	}
}

func TestConsistency(t *testing.T) {
	t.Parallel()
	ms := func(values ...int) []time.Duration {
		out := make([]time.Duration, len(values))
		for i, v := range values {
			out[i] = time.Duration(v) * time.Millisecond
		}
		return out
	}
	cases := []struct {
		name      string
		intervals []time.Duration
		want      int
	}{
		{"no intervals", nil, 100},
		{"single interval", ms(400), 100},
		{"perfectly even", ms(300, 300, 300, 300), 100},
		{"small wobble", ms(250, 350), 95},
		{"wild swings floor at zero", ms(100, 2500, 100, 2500), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.Consistency(tc.intervals); got != tc.want {
				t.Fatalf("Consistency(%v) = %d, want %d", tc.intervals, got, tc.want)
			}
		})
	}
}
