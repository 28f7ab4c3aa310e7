package game

import "testing"

// checkSlotConservation asserts that the slots held by players plus the
// available pool always equals the property's max.
func checkSlotConservation(t *testing.T, prop *Property, players ...*Player) {
	t.Helper()
	held := uint32(0)
	for _, p := range players {
		held += uint32(p.Slots[prop.ID])
	}
	if held+uint32(prop.AvailableSlots) != uint32(prop.MaxSlots) {
		t.Fatalf("slot conservation broken: held=%d avail=%d max=%d",
			held, prop.AvailableSlots, prop.MaxSlots)
	}
}

// recountCompleteSets recomputes CompleteSets from the raw slot arrays, as an
// independent check on the incremental bookkeeping.
func recountCompleteSets(p *Player, props map[uint8]*Property) uint8 {
	var perSet [MaxSets]uint8
	for pid := uint8(0); pid < MaxProperties; pid++ {
		if p.Slots[pid] == 0 {
			continue
		}
		prop, ok := props[pid]
		if !ok {
			continue
		}
		perSet[prop.SetID]++
	}
	count := uint8(0)
	for s := uint8(0); s < MaxSets; s++ {
		if perSet[s] == SetSize(s) {
			count++
		}
	}
	return count
}

func TestSlotConservationAcrossOperations(t *testing.T) {
	cfg := newTestConfig()
	cfg.StealChanceBps = 10000
	prop := mustProperty(t)
	alice := NewPlayer(testAlice, 0)
	bob := NewPlayer(testBob, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 10_000)
	payer.fund(testBob, 10_000)
	payer.fund(testPool, 10_000)

	tx := newTestTx(100, payer)
	if err := Buy(tx, cfg, prop, alice, testAlice, 5); err != nil {
		t.Fatalf("buy: %v", err)
	}
	checkSlotConservation(t, prop, alice, bob)

	if err := Grant(tx, cfg, prop, bob, testAuthority, 3); err != nil {
		t.Fatalf("grant: %v", err)
	}
	checkSlotConservation(t, prop, alice, bob)

	tx = newTestTx(200, payer)
	if _, err := Steal(tx, cfg, prop, bob, testBob, [32]byte{}, slotHashBlob(0), []*Player{alice}); err != nil {
		t.Fatalf("steal: %v", err)
	}
	if alice.Slots[0] != 4 || bob.Slots[0] != 4 {
		t.Fatalf("steal did not move exactly one slot: %d/%d", alice.Slots[0], bob.Slots[0])
	}
	checkSlotConservation(t, prop, alice, bob)

	if _, err := Sell(tx, cfg, prop, alice, testAlice, 2); err != nil {
		t.Fatalf("sell: %v", err)
	}
	checkSlotConservation(t, prop, alice, bob)

	if err := Revoke(tx, cfg, prop, bob, testAuthority, 4); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	checkSlotConservation(t, prop, alice, bob)
}

func TestCompleteSetsMatchRecount(t *testing.T) {
	cfg := newTestConfig()
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 100_000)
	payer.fund(testPool, 100_000)
	tx := newTestTx(100, payer)

	// Set 7 has two members (20, 21); set 1 has three (2, 3, 4).
	props := map[uint8]*Property{
		20: mustPropertyID(t, 20, 7),
		21: mustPropertyID(t, 21, 7),
		2:  mustPropertyID(t, 2, 1),
		3:  mustPropertyID(t, 3, 1),
		4:  mustPropertyID(t, 4, 1),
	}

	for _, pid := range []uint8{20, 21, 2, 3} {
		if err := Grant(tx, cfg, props[pid], p, testAuthority, 2); err != nil {
			t.Fatalf("grant %d: %v", pid, err)
		}
	}
	if p.CompleteSets != 1 {
		t.Fatalf("expected set 7 complete only, got %d", p.CompleteSets)
	}
	if got := recountCompleteSets(p, props); got != p.CompleteSets {
		t.Fatalf("recount %d != tracked %d", got, p.CompleteSets)
	}

	if err := Grant(tx, cfg, props[4], p, testAuthority, 1); err != nil {
		t.Fatalf("grant 4: %v", err)
	}
	if p.CompleteSets != 2 {
		t.Fatalf("expected both sets complete, got %d", p.CompleteSets)
	}

	// Selling out of one property breaks that set.
	if _, err := Sell(tx, cfg, props[21], p, testAlice, 2); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.CompleteSets != 1 {
		t.Fatalf("expected set 7 broken, got %d", p.CompleteSets)
	}
	if got := recountCompleteSets(p, props); got != p.CompleteSets {
		t.Fatalf("recount %d != tracked %d", got, p.CompleteSets)
	}
}

func TestPaymentSplitExactness(t *testing.T) {
	cfg := newTestConfig()
	payer := newTestPayer()
	payer.fund(testAlice, 1000)
	tx := newTestTx(100, payer)

	if err := distributePayment(tx, cfg, testAlice, 1000); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if payer.balances[testPool] != 950 || payer.balances[testMarketing] != 30 || payer.balances[testDev] != 20 {
		t.Fatalf("split wrong: pool=%d mkt=%d dev=%d",
			payer.balances[testPool], payer.balances[testMarketing], payer.balances[testDev])
	}
	if payer.balances[testAlice] != 0 {
		t.Fatalf("payer kept change: %d", payer.balances[testAlice])
	}
}

func TestPaymentSplitNeverExceedsAmount(t *testing.T) {
	cfg := newTestConfig()
	for _, amount := range []uint64{1, 7, 33, 99, 101, 12345} {
		payer := newTestPayer()
		payer.fund(testAlice, amount)
		tx := newTestTx(100, payer)
		if err := distributePayment(tx, cfg, testAlice, amount); err != nil {
			t.Fatalf("distribute %d: %v", amount, err)
		}
		moved := payer.balances[testPool] + payer.balances[testMarketing] + payer.balances[testDev]
		if moved > amount {
			t.Fatalf("split of %d moved %d", amount, moved)
		}
	}
}

// A full lifecycle: buy, accrue a day, claim, shield, sell. Token totals stay
// constant throughout since every movement is a transfer.
func TestEndToEndScenario(t *testing.T) {
	cfg := newTestConfig()
	// Price 864000 at 10%/day: each slot earns exactly one token a second.
	prop, err := NewProperty(0, 0, 100, 10, 864_000, 1000, 5000, 3600)
	if err != nil {
		t.Fatalf("new property: %v", err)
	}
	p := NewPlayer(testAlice, 0)
	payer := newTestPayer()
	payer.fund(testAlice, 3_000_000)
	payer.fund(testPool, 1_000_000)
	supply := payer.total()

	tx := newTestTx(0, payer)
	if err := Buy(tx, cfg, prop, p, testAlice, 3); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if p.TotalBaseDailyIncome != 3*secondsPerDay {
		t.Fatalf("daily income = %d, want %d", p.TotalBaseDailyIncome, 3*secondsPerDay)
	}
	if payer.total() != supply {
		t.Fatalf("buy changed supply")
	}

	// One full day at 3 tokens a second.
	tx = newTestTx(secondsPerDay, payer)
	before := payer.balances[testAlice]
	claimed, err := Claim(tx, cfg, p, testAlice)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed != 3*secondsPerDay {
		t.Fatalf("claimed %d, want %d", claimed, 3*secondsPerDay)
	}
	if payer.balances[testAlice] != before+claimed {
		t.Fatalf("claim payout not delivered")
	}
	if payer.total() != supply {
		t.Fatalf("claim changed supply")
	}

	if err := ActivateShield(tx, cfg, prop, p, testAlice, 24); err != nil {
		t.Fatalf("shield: %v", err)
	}
	if payer.total() != supply {
		t.Fatalf("shield changed supply")
	}

	if _, err := Sell(tx, cfg, prop, p, testAlice, 3); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.TotalSlots != 0 || prop.AvailableSlots != prop.MaxSlots {
		t.Fatalf("sell bookkeeping wrong")
	}
	if payer.total() != supply {
		t.Fatalf("sell changed supply")
	}
}
