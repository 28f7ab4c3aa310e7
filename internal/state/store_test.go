package state_test

import (
	"bytes"
	"errors"
	"testing"

	"cryptopoly/internal/game"
	"cryptopoly/internal/state"
	"cryptopoly/internal/testutil"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	s, err := testutil.NewStore()
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestCommitPersistsRecords(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	cfg := game.NewConfig("auth", "pool", "mkt", "dev")
	if err := txn.SetConfig(cfg); err != nil {
		t.Fatalf("set config: %v", err)
	}
	p := game.NewPlayer("alice", 100)
	if err := txn.SetPlayer(p); err != nil {
		t.Fatalf("set player: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	txn, err = s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer txn.Rollback()
	got, err := txn.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if got.Authority != "auth" || got.StealChanceBps != 3300 {
		t.Fatalf("config round trip wrong: %+v", got)
	}
	lp, err := txn.Player("alice")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if lp.Owner != "alice" || lp.LastAccrualTS != 100 {
		t.Fatalf("player round trip wrong: %+v", lp)
	}
}

func TestRollbackDiscardsWrites(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := txn.SetPlayer(game.NewPlayer("alice", 0)); err != nil {
		t.Fatalf("set player: %v", err)
	}
	if err := txn.Mint("alice", 500); err != nil {
		t.Fatalf("mint: %v", err)
	}
	txn.Rollback()

	err = s.View(func(txn *state.Txn) error {
		if _, err := txn.Player("alice"); !errors.Is(err, state.ErrNotFound) {
			t.Fatalf("expected not_found after rollback, got %v", err)
		}
		bal, err := txn.Balance("alice")
		if err != nil || bal != 0 {
			t.Fatalf("balance after rollback: %d %v", bal, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestTransactionSeesOwnWrites(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer txn.Rollback()

	if err := txn.Mint("alice", 300); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := txn.Transfer("alice", "bob", 100); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	aliceBal, _ := txn.Balance("alice")
	bobBal, _ := txn.Balance("bob")
	if aliceBal != 200 || bobBal != 100 {
		t.Fatalf("buffered balances wrong: %d/%d", aliceBal, bobBal)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer txn.Rollback()

	if err := txn.Mint("alice", 50); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := txn.Transfer("alice", "bob", 51); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient_funds, got %v", err)
	}
}

func TestSlotAdvancesOnCommitOnly(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	first := txn.Slot()
	blob1, err := txn.SlotHashData()
	if err != nil {
		t.Fatalf("slot hash: %v", err)
	}
	if len(blob1) != 40 {
		t.Fatalf("blob length %d", len(blob1))
	}
	txn.Rollback()

	txn, err = s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if txn.Slot() != first {
		t.Fatalf("rollback advanced slot: %d -> %d", first, txn.Slot())
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	txn, err = s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer txn.Rollback()
	if txn.Slot() != first+1 {
		t.Fatalf("commit did not advance slot: %d", txn.Slot())
	}
	blob2, err := txn.SlotHashData()
	if err != nil {
		t.Fatalf("slot hash: %v", err)
	}
	if bytes.Equal(blob1[8:], blob2[8:]) {
		t.Fatalf("recent hash did not roll on commit")
	}
}

func TestAPIKeyBinding(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := txn.BindKey("secret-key", "alice"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	err = s.View(func(txn *state.Txn) error {
		addr, err := txn.ResolveKey("secret-key")
		if err != nil || addr != "alice" {
			t.Fatalf("resolve: %v %q", err, addr)
		}
		if _, err := txn.ResolveKey("wrong-key"); !errors.Is(err, state.ErrNotFound) {
			t.Fatalf("expected not_found for unknown key, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestPlayersListsCommittedAndBuffered(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := txn.SetPlayer(game.NewPlayer("alice", 0)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	txn, err = s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer txn.Rollback()
	if err := txn.SetPlayer(game.NewPlayer("bob", 0)); err != nil {
		t.Fatalf("set: %v", err)
	}
	players, err := txn.Players()
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("want 2 players, got %d", len(players))
	}
	txn.DeletePlayer("alice")
	players, err = txn.Players()
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(players) != 1 || players[0].Owner != "bob" {
		t.Fatalf("delete not reflected: %d", len(players))
	}
}

func TestPropertiesInIDOrder(t *testing.T) {
	s := newStore(t)

	txn, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for _, id := range []uint8{5, 0, 21} {
		prop, err := game.NewProperty(id, id%game.MaxSets, 100, 10, 100, 1000, 5000, 3600)
		if err != nil {
			t.Fatalf("property %d: %v", id, err)
		}
		if err := txn.SetProperty(prop); err != nil {
			t.Fatalf("set property: %v", err)
		}
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	err = s.View(func(txn *state.Txn) error {
		props, err := txn.Properties()
		if err != nil {
			t.Fatalf("properties: %v", err)
		}
		if len(props) != 3 || props[0].ID != 0 || props[1].ID != 5 || props[2].ID != 21 {
			t.Fatalf("order wrong: %+v", props)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
