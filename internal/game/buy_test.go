package game

import (
	"errors"
	"testing"
)

func TestBuyHappyPath(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 1000)
	tx := newTestTx(100, payer)

	if err := Buy(tx, cfg, prop, p, testAlice, 3); err != nil {
		t.Fatalf("buy: %v", err)
	}

	if p.Slots[0] != 3 || p.TotalSlots != 3 {
		t.Fatalf("expected 3 slots, got %d total %d", p.Slots[0], p.TotalSlots)
	}
	if prop.AvailableSlots != 97 {
		t.Fatalf("expected 97 available, got %d", prop.AvailableSlots)
	}
	// daily income per slot = 100 * 1000 / 10000 = 10
	if p.TotalBaseDailyIncome != 30 {
		t.Fatalf("expected daily income 30, got %d", p.TotalBaseDailyIncome)
	}
	if p.PropertiesOwned != 1 || !p.SetMasks[0].Has(0) {
		t.Fatalf("first-slot bookkeeping missing: owned=%d mask=%08b", p.PropertiesOwned, p.SetMasks[0])
	}
	if p.PurchaseTS[0] != 100 {
		t.Fatalf("expected purchase ts 100, got %d", p.PurchaseTS[0])
	}

	// 300 paid: 285 pool / 9 marketing / 6 dev.
	if payer.balances[testAlice] != 700 {
		t.Fatalf("expected alice 700, got %d", payer.balances[testAlice])
	}
	if payer.balances[testPool] != 285 || payer.balances[testMarketing] != 9 || payer.balances[testDev] != 6 {
		t.Fatalf("bad split: pool=%d marketing=%d dev=%d",
			payer.balances[testPool], payer.balances[testMarketing], payer.balances[testDev])
	}

	if len(tx.Events) != 1 || tx.Events[0].Type != EventPropertyBought {
		t.Fatalf("expected one purchase event, got %+v", tx.Events)
	}
}

func TestBuyRejectsWhenPaused(t *testing.T) {
	cfg := newTestConfig()
	cfg.Paused = true
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	tx := newTestTx(100, newTestPayer())

	if err := Buy(tx, cfg, prop, p, testAlice, 1); !errors.Is(err, ErrGamePaused) {
		t.Fatalf("expected game_paused, got %v", err)
	}
}

func TestBuyRejectsWrongSigner(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	tx := newTestTx(100, newTestPayer())

	if err := Buy(tx, cfg, prop, p, testBob, 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestBuyZeroSlots(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	tx := newTestTx(100, newTestPayer())

	if err := Buy(tx, cfg, prop, p, testAlice, 0); !errors.Is(err, ErrInvalidSlotAmount) {
		t.Fatalf("expected invalid_slot_amount, got %v", err)
	}
}

func TestBuyAvailabilityAndPerPlayerCap(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	prop.AvailableSlots = 2
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 100000)
	tx := newTestTx(100, payer)

	if err := Buy(tx, cfg, prop, p, testAlice, 3); !errors.Is(err, ErrNoSlotsAvailable) {
		t.Fatalf("expected no_slots_available, got %v", err)
	}

	prop.AvailableSlots = 100
	if err := Buy(tx, cfg, prop, p, testAlice, 11); !errors.Is(err, ErrMaxSlotsReached) {
		t.Fatalf("expected max_slots_reached, got %v", err)
	}
}

func TestBuySetCooldownBlocksSiblingNotSelf(t *testing.T) {
	cfg := newTestConfig()
	// Properties 0 and 1 share set 0; cooldown is 3600s.
	prop0 := mustPropertyID(t, 0, 0)
	prop1 := mustPropertyID(t, 1, 0)
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 100000)

	tx := newTestTx(100, payer)
	if err := Buy(tx, cfg, prop0, p, testAlice, 1); err != nil {
		t.Fatalf("first buy: %v", err)
	}

	// Same property again inside the window: exempt.
	tx = newTestTx(200, payer)
	if err := Buy(tx, cfg, prop0, p, testAlice, 1); err != nil {
		t.Fatalf("same-property rebuy should be exempt: %v", err)
	}

	// Sibling inside the window: blocked.
	tx = newTestTx(300, payer)
	if err := Buy(tx, cfg, prop1, p, testAlice, 1); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected cooldown_active, got %v", err)
	}

	// Sibling after the window: allowed.
	tx = newTestTx(200+3600, payer)
	if err := Buy(tx, cfg, prop1, p, testAlice, 1); err != nil {
		t.Fatalf("post-cooldown buy: %v", err)
	}
}

func TestBuyAccruesAtPreChangeRate(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	p.TotalBaseDailyIncome = 86400 // 1/s standing rate
	payer := newTestPayer()
	payer.fund(testAlice, 100000)

	tx := newTestTx(500, payer)
	if err := Buy(tx, cfg, prop, p, testAlice, 1); err != nil {
		t.Fatalf("buy: %v", err)
	}
	// 500 seconds at the old 1/s rate, none at the new rate yet.
	if p.PendingRewards != 500 {
		t.Fatalf("expected 500 pending at pre-change rate, got %d", p.PendingRewards)
	}
}

func TestBuyCompleteSetEdge(t *testing.T) {
	cfg := newTestConfig()
	prop20 := mustPropertyID(t, 20, 7)
	prop21 := mustPropertyID(t, 21, 7)
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 100000)

	tx := newTestTx(100, payer)
	if err := Buy(tx, cfg, prop20, p, testAlice, 1); err != nil {
		t.Fatalf("buy 20: %v", err)
	}
	if p.CompleteSets != 0 {
		t.Fatalf("one of two should not complete the set")
	}

	tx = newTestTx(100+3600, payer)
	if err := Buy(tx, cfg, prop21, p, testAlice, 1); err != nil {
		t.Fatalf("buy 21: %v", err)
	}
	if p.CompleteSets != 1 {
		t.Fatalf("expected complete set, got %d", p.CompleteSets)
	}

	// Buying more of an already complete set must not double count.
	tx = newTestTx(200+3600, payer)
	if err := Buy(tx, cfg, prop21, p, testAlice, 1); err != nil {
		t.Fatalf("rebuy 21: %v", err)
	}
	if p.CompleteSets != 1 {
		t.Fatalf("complete set double counted: %d", p.CompleteSets)
	}
}

func TestBuyInsufficientFundsAborts(t *testing.T) {
	cfg := newTestConfig()
	prop := mustProperty(t)
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 10) // price is 100
	tx := newTestTx(100, payer)

	if err := Buy(tx, cfg, prop, p, testAlice, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient_funds, got %v", err)
	}
}
