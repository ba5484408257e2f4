package domain

import "time"

// RhythmQuality scores how close an interval landed to the ideal, on a 0-100
// scale. scale is the millisecond tolerance per lost point.
func RhythmQuality(interval, ideal time.Duration, scale int) int {
	if scale <= 0 {
		return 0
	}
	diff := interval - ideal
	if diff < 0 {
		diff = -diff
	}
	q := 100 - int(diff.Milliseconds())/scale
	if q < 0 {
		return 0
	}
	return q
}

// Consistency scores how evenly spaced a series of intervals was: 100 minus a
// tenth of the mean absolute deviation in milliseconds, floored at zero.
// Fewer than two intervals is trivially consistent.
func Consistency(intervals []time.Duration) int {
	if len(intervals) < 2 {
		return 100
	}
	var sum time.Duration
	for _, iv := range intervals {
		sum += iv
	}
	mean := sum / time.Duration(len(intervals))
	var dev time.Duration
	for _, iv := range intervals {
		d := iv - mean
		if d < 0 {
			d = -d
		}
		dev += d
	}
	mad := int(dev.Milliseconds()) / len(intervals)
	c := 100 - mad/10
	if c < 0 {
		return 0
	}
	return c
}

func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}
