package xp

import (
	"math"
	"testing"
)

func TestStreakMultiplier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		streak int
		want   float64
	}{
		{-5, 1.0},
		{0, 1.0},
		{1, 1.05},
		{6, 1.3},
		{10, 1.5},
		{11, 1.5},
		{365, 1.5},
	}

	for _, tc := range cases {
		got := StreakMultiplier(tc.streak)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("StreakMultiplier(%d) = %f, want %f", tc.streak, got, tc.want)
		}
	}
}

func TestStreakMultiplierNonDecreasing(t *testing.T) {
	t.Parallel()

	prev := StreakMultiplier(0)
	for streak := 1; streak <= 30; streak++ {
		cur := StreakMultiplier(streak)
		if cur < prev {
			t.Fatalf("multiplier decreased at streak %d: %f < %f", streak, cur, prev)
		}
		prev = cur
	}
	if prev != MaxStreakMultiplier() {
		t.Errorf("expected saturation at %f, got %f", MaxStreakMultiplier(), prev)
	}
}

func TestAward(t *testing.T) {
	t.Parallel()

	cases := []struct {
		baseXP     int
		streak     int
		wantAmount int
		wantMult   float64
	}{
		// No streak: base passes through
		{10, 0, 10, 1.0},
		// Six-day streak scales a recall reward 10 -> 13
		{10, 6, 13, 1.3},
		// Floor, not round: 2 * 1.3 = 2.6 -> 2
		{2, 6, 2, 1.3},
		// Capped multiplier
		{10, 30, 15, 1.5},
		{25, 10, 37, 1.5},
	}

	for _, tc := range cases {
		amount, multiplier := Award(tc.baseXP, tc.streak)
		if amount != tc.wantAmount {
			t.Errorf("Award(%d, %d) amount = %d, want %d", tc.baseXP, tc.streak, amount, tc.wantAmount)
		}
		if math.Abs(multiplier-tc.wantMult) > 1e-9 {
			t.Errorf("Award(%d, %d) multiplier = %f, want %f", tc.baseXP, tc.streak, multiplier, tc.wantMult)
		}
	}
}
