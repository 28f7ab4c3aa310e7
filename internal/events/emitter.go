// Package events is a synchronous pub/sub broker for game events. Services
// emit after a successful commit; subscribers fan out to logging and the
// optional postgres index.
package events

import (
	"sync"

	"github.com/rs/zerolog/log"

	"cryptopoly/internal/game"
)

// Event wraps a game event with the transaction that produced it.
type Event struct {
	ID   string     `json:"id"`
	TxID string     `json:"tx_id"`
	Slot uint64     `json:"slot"`
	Time int64      `json:"time"`
	Game game.Event `json:"event"`
}

// Handler is a callback invoked for matching events.
type Handler func(Event)

// Emitter delivers events synchronously. Subscribe before Emit.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[game.EventType][]Handler
	all      []Handler
}

// NewEmitter creates an Emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[game.EventType][]Handler)}
}

// Subscribe registers h for one event type.
func (e *Emitter) Subscribe(typ game.EventType, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[typ] = append(e.handlers[typ], h)
}

// SubscribeAll registers h for every event type.
func (e *Emitter) SubscribeAll(h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.all = append(e.all, h)
}

// Emit delivers ev to all matching subscribers synchronously. Each handler
// is guarded by panic recovery so a misbehaving subscriber cannot take the
// server down with it.
func (e *Emitter) Emit(ev Event) {
	e.mu.RLock()
	handlers := make([]Handler, 0, len(e.handlers[ev.Game.Type])+len(e.all))
	handlers = append(handlers, e.handlers[ev.Game.Type]...)
	handlers = append(handlers, e.all...)
	e.mu.RUnlock()
	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Any("panic", r).Str("event_type", string(ev.Game.Type)).
						Msg("event handler panicked")
				}
			}()
			h(ev)
		}()
	}
}
