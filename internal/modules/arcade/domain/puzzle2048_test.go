package domain_test

import (
	"reflect"
	"testing"
	"time"

	"wellquest/internal/modules/arcade/domain"
	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

func TestMergeLine(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		in      []int
		want    []int
		gained  int
		changed bool
	}{
		{"pair then odd tile", []int{2, 2, 4, 0}, []int{4, 4, 0, 0}, 4, true},
		{"two pairs merge once each", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8, true},
		{"fresh merge does not cascade", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8, true},
		{"slide without merge", []int{0, 2, 0, 4}, []int{2, 4, 0, 0}, 0, true},
		{"leading pair merges first", []int{2, 2, 4, 4}, []int{4, 8, 0, 0}, 12, true},
		{"already settled", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0, false},
		{"empty line", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, gained, changed := domain.MergeLine(tc.in)
			if !reflect.DeepEqual(out, tc.want) {
				t.Fatalf("MergeLine(%v) = %v, want %v", tc.in, out, tc.want)
			}
			if gained != tc.gained {
				t.Fatalf("MergeLine(%v) gained %d, want %d", tc.in, gained, tc.gained)
			}
			if changed != tc.changed {
				t.Fatalf("MergeLine(%v) changed = %v, want %v", tc.in, changed, tc.changed)
			}
		})
	}
}

func puzzleDefinition(moves int) catalog.GameDefinition {
	return catalog.GameDefinition{
		ID:     catalog.GamePuzzle2048,
		Track:  catalog.TrackMental,
		Name:   "2048",
		Levels: []catalog.LevelSpec{{Points: 200, Target: 256, Moves: moves}},
	}
}

func TestPuzzle2048MoveBudgetExhaustion(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	host := loop.New(start)
	clk := &fakeClock{now: start}
	session, err := domain.New(puzzleDefinition(1), 1, host.Scope(), clk, random.NewSeeded(7))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Initialize()
	if session.State() != domain.StateActive {
		t.Fatalf("state after initialize = %s", session.State())
	}

	// A fresh board holds two tiles, so at least one direction moves them.
	for _, code := range []string{domain.CodeLeft, domain.CodeUp, domain.CodeRight, domain.CodeDown} {
		host.KeyDown(code)
	}
	if session.State() != domain.StateFailed {
		t.Fatalf("expected budget exhaustion, state = %s", session.State())
	}
	failure, ok := session.Failure()
	if !ok || failure.Reason != domain.FailMovesExhausted {
		t.Fatalf("failure = %+v, ok = %v", failure, ok)
	}

	// Terminal sessions ignore further input.
	before := session.Snapshot()
	host.KeyDown(domain.CodeLeft)
	session.KeyDown(domain.CodeLeft)
	if after := session.Snapshot(); !reflect.DeepEqual(before.Counters, after.Counters) {
		t.Fatalf("input after failure mutated the board: %v -> %v", before.Counters, after.Counters)
	}
}
