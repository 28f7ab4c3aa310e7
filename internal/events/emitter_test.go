package events

import (
	"testing"

	"cryptopoly/internal/game"
)

func TestEmitDeliversToTypeAndAll(t *testing.T) {
	e := NewEmitter()
	var typed, all int
	e.Subscribe(game.EventPropertyBought, func(Event) { typed++ })
	e.SubscribeAll(func(Event) { all++ })

	e.Emit(Event{Game: game.Event{Type: game.EventPropertyBought}})
	e.Emit(Event{Game: game.Event{Type: game.EventPropertySold}})

	if typed != 1 {
		t.Fatalf("typed handler ran %d times, want 1", typed)
	}
	if all != 2 {
		t.Fatalf("all handler ran %d times, want 2", all)
	}
}

func TestEmitSurvivesPanickingHandler(t *testing.T) {
	e := NewEmitter()
	var after bool
	e.SubscribeAll(func(Event) { panic("boom") })
	e.SubscribeAll(func(Event) { after = true })

	e.Emit(Event{Game: game.Event{Type: game.EventRewardsClaimed}})
	if !after {
		t.Fatalf("handler after panic was skipped")
	}
}
