package game

import "testing"

// testPayer is an in-memory token substrate for handler tests.
type testPayer struct {
	balances map[Address]uint64
}

func newTestPayer() *testPayer {
	return &testPayer{balances: make(map[Address]uint64)}
}

func (tp *testPayer) fund(addr Address, amount uint64) {
	tp.balances[addr] += amount
}

func (tp *testPayer) Transfer(from, to Address, amount uint64) error {
	if tp.balances[from] < amount {
		return ErrInsufficientFunds
	}
	tp.balances[from] -= amount
	tp.balances[to] += amount
	return nil
}

func (tp *testPayer) Balance(of Address) (uint64, error) {
	return tp.balances[of], nil
}

func (tp *testPayer) total() uint64 {
	var sum uint64
	for _, b := range tp.balances {
		sum += b
	}
	return sum
}

const (
	testAuthority Address = "authority"
	testPool      Address = "reward-pool"
	testMarketing Address = "marketing"
	testDev       Address = "dev"
	testAlice     Address = "alice"
	testBob       Address = "bob"
)

func newTestConfig() *Config {
	return NewConfig(testAuthority, testPool, testMarketing, testDev)
}

func newTestTx(now int64, payer *testPayer) *Tx {
	return &Tx{Now: now, Slot: 1000, Tokens: payer}
}

// mustProperty builds property 0 (set 0): price 100, 10%/day yield, shield
// cost 50% of daily yield, 1h cooldown, 100 slots with 10 per player.
func mustProperty(t *testing.T) *Property {
	t.Helper()
	prop, err := NewProperty(0, 0, 100, 10, 100, 1000, 5000, 3600)
	if err != nil {
		t.Fatalf("new property: %v", err)
	}
	return prop
}

func mustPropertyID(t *testing.T, id, setID uint8) *Property {
	t.Helper()
	prop, err := NewProperty(id, setID, 100, 10, 100, 1000, 5000, 3600)
	if err != nil {
		t.Fatalf("new property %d: %v", id, err)
	}
	return prop
}

// slotHashBlob fabricates a recent-slot-hash blob: 8 bytes of slot prefix then
// the 32-byte hash.
func slotHashBlob(hash byte) []byte {
	blob := make([]byte, 40)
	for i := 8; i < 40; i++ {
		blob[i] = hash
	}
	return blob
}
