package game

// Buy purchases n slots of prop for the signing player. The price is paid via
// the treasury split; the set cooldown blocks buying a different property of
// the same set before the cooldown elapses, while re-buying the same property
// is exempt.
func Buy(tx *Tx, cfg *Config, prop *Property, p *Player, signer Address, slots uint16) error {
	if p.Owner != signer {
		return ErrUnauthorized
	}
	if cfg.Paused {
		return ErrGamePaused
	}
	if slots == 0 {
		return ErrInvalidSlotAmount
	}
	if prop.AvailableSlots < slots {
		return ErrNoSlotsAvailable
	}

	pid := prop.ID
	setID := prop.SetID

	after, err := addU16(p.Slots[pid], slots)
	if err != nil {
		return err
	}
	if after > prop.MaxPerPlayer {
		return ErrMaxSlotsReached
	}

	if p.SetCooldownTS[setID] != 0 && p.SetLastProperty[setID] != pid {
		sinceLast, err := subI64(tx.Now, p.SetCooldownTS[setID])
		if err != nil {
			return err
		}
		if sinceLast < p.SetCooldownDuration[setID] {
			return ErrCooldownActive
		}
	}

	if err := Accrue(p, tx.Now); err != nil {
		return err
	}

	totalPrice, err := mulU64(prop.Price, uint64(slots))
	if err != nil {
		return err
	}
	if err := distributePayment(tx, cfg, p.Owner, totalPrice); err != nil {
		return err
	}

	avail, err := subU16(prop.AvailableSlots, slots)
	if err != nil {
		return err
	}
	prop.AvailableSlots = avail

	if err := p.addSlots(prop, slots, tx.Now); err != nil {
		return err
	}

	p.SetCooldownTS[setID] = tx.Now
	p.SetCooldownDuration[setID] = prop.CooldownSeconds
	p.SetLastProperty[setID] = pid

	tx.emit(Event{
		Type:     EventPropertyBought,
		Player:   p.Owner,
		Property: pid,
		Amount:   totalPrice,
		Data: map[string]any{
			"price":       prop.Price,
			"slots":       slots,
			"slots_owned": p.Slots[pid],
		},
	})
	return nil
}
