package index_test

import (
	"context"
	"testing"

	"cryptopoly/internal/events"
	"cryptopoly/internal/game"
	"cryptopoly/internal/state"
	"cryptopoly/internal/testutil"
)

func testEvent(typ game.EventType, player game.Address, amount uint64) events.Event {
	return events.Event{
		ID:   state.NewID(),
		TxID: state.NewID(),
		Slot: 42,
		Time: 1_000_000,
		Game: game.Event{
			Type:     typ,
			Player:   player,
			Property: 3,
			Amount:   amount,
		},
	}
}

func TestInsertAndListRecent(t *testing.T) {
	idx, cleanup := testutil.OpenTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	first := testEvent(game.EventPropertyBought, "alice", 100)
	second := testEvent(game.EventRewardsClaimed, "bob", 55)
	if err := idx.InsertEvent(ctx, first); err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if err := idx.InsertEvent(ctx, second); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	rows, err := idx.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	byPlayer, err := idx.ListByPlayer(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("list by player: %v", err)
	}
	if len(byPlayer) != 1 {
		t.Fatalf("alice rows = %d, want 1", len(byPlayer))
	}
	if byPlayer[0].Type != string(game.EventPropertyBought) {
		t.Fatalf("event type = %q", byPlayer[0].Type)
	}
	if byPlayer[0].Amount != 100 {
		t.Fatalf("amount = %d, want 100", byPlayer[0].Amount)
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	idx, cleanup := testutil.OpenTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	ev := testEvent(game.EventStealFailed, "alice", 7)
	if err := idx.InsertEvent(ctx, ev); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := idx.InsertEvent(ctx, ev); err != nil {
		t.Fatalf("insert again: %v", err)
	}
	rows, err := idx.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
}
