package game

import (
	"errors"
	"testing"
)

func TestAccrueFullDay(t *testing.T) {
	p := NewPlayer(testAlice, 1000)
	p.TotalBaseDailyIncome = 30

	if err := Accrue(p, 1000+86400); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	// income_per_second = 30/86400 = 0 (floored), so a 30/day rate pays
	// nothing at second granularity below 2880/day. Document with the rate
	// that does pay: 86400/day = 1/s.
	if p.PendingRewards != 0 {
		t.Fatalf("expected truncation to zero, got %d", p.PendingRewards)
	}

	p = NewPlayer(testAlice, 1000)
	p.TotalBaseDailyIncome = 86400 * 30
	if err := Accrue(p, 1000+86400); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if p.PendingRewards != 86400*30 {
		t.Fatalf("expected full day of income, got %d", p.PendingRewards)
	}
}

func TestAccrueIdempotent(t *testing.T) {
	p := NewPlayer(testAlice, 0)
	p.TotalBaseDailyIncome = 86400 // 1 per second

	if err := Accrue(p, 500); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	first := p.PendingRewards
	if first != 500 {
		t.Fatalf("expected 500, got %d", first)
	}
	if err := Accrue(p, 500); err != nil {
		t.Fatalf("second accrue: %v", err)
	}
	if p.PendingRewards != first {
		t.Fatalf("second call at same timestamp changed rewards: %d -> %d", first, p.PendingRewards)
	}
}

func TestAccrueBackwardsClockIsNoop(t *testing.T) {
	p := NewPlayer(testAlice, 1000)
	p.TotalBaseDailyIncome = 86400
	p.PendingRewards = 7

	if err := Accrue(p, 900); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if p.PendingRewards != 7 {
		t.Fatalf("negative elapsed must not accrue, got %d", p.PendingRewards)
	}
	// Clock still stamps forward to prevent double counting later.
	if p.LastAccrualTS != 900 {
		t.Fatalf("expected accrual clock stamped to 900, got %d", p.LastAccrualTS)
	}
}

func TestAccrueAlwaysStampsClock(t *testing.T) {
	p := NewPlayer(testAlice, 0)
	if err := Accrue(p, 12345); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if p.LastAccrualTS != 12345 {
		t.Fatalf("expected clock 12345, got %d", p.LastAccrualTS)
	}
}

func TestAccrueMonotonic(t *testing.T) {
	p := NewPlayer(testAlice, 0)
	p.TotalBaseDailyIncome = 86400 * 5

	prev := uint64(0)
	for now := int64(1); now < 100; now += 7 {
		if err := Accrue(p, now); err != nil {
			t.Fatalf("accrue at %d: %v", now, err)
		}
		if p.PendingRewards < prev {
			t.Fatalf("pending rewards decreased: %d -> %d", prev, p.PendingRewards)
		}
		prev = p.PendingRewards
	}
}

func TestAccrueOverflow(t *testing.T) {
	p := NewPlayer(testAlice, 0)
	p.TotalBaseDailyIncome = 86400 * 86400 // 86400/s
	p.PendingRewards = 1<<64 - 10

	if err := Accrue(p, 1000); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
}
