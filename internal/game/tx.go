package game

// Payer moves fungible value between balances. The substrate guarantees the
// whole transaction commits or rolls back, so a handler never needs to undo a
// transfer. The core only moves existing balance; it never mints or burns.
type Payer interface {
	Transfer(from, to Address, amount uint64) error
	Balance(of Address) (uint64, error)
}

// Tx carries the per-transaction environment into a handler: the wall clock
// and slot read fresh at dispatch, the token mover, and the events the handler
// appends for off-chain consumption.
type Tx struct {
	Now    int64
	Slot   uint64
	Tokens Payer
	Events []Event
}

// Emit appends an event for off-chain consumption.
func (tx *Tx) Emit(ev Event) {
	tx.Events = append(tx.Events, ev)
}

func (tx *Tx) emit(ev Event) {
	tx.Emit(ev)
}
