package game

const (
	minShieldHours      = 1
	maxShieldHours      = 48
	maxAdminShieldHours = 168
)

// ActivateShield buys a time-limited shield covering all currently owned
// slots of prop. If a steal-protection window is still running, the shield
// starts when it expires rather than overlapping it.
func ActivateShield(tx *Tx, cfg *Config, prop *Property, p *Player, signer Address, durationHours uint16) error {
	if p.Owner != signer {
		return ErrUnauthorized
	}
	if cfg.Paused {
		return ErrGamePaused
	}

	pid := prop.ID
	if p.Slots[pid] == 0 {
		return ErrDoesNotOwnProperty
	}
	if durationHours < minShieldHours || durationHours > maxShieldHours {
		return ErrInvalidShieldDuration
	}
	if p.Shielded[pid] != 0 && tx.Now < p.ShieldExpiry[pid] {
		return ErrShieldAlreadyActive
	}

	if err := Accrue(p, tx.Now); err != nil {
		return err
	}

	slotsToShield := p.Slots[pid]
	totalCost, err := shieldCost(prop, durationHours, slotsToShield)
	if err != nil {
		return err
	}
	if err := distributePayment(tx, cfg, p.Owner, totalCost); err != nil {
		return err
	}

	if err := applyShield(p, pid, durationHours, tx.Now); err != nil {
		return err
	}

	tx.emit(Event{
		Type:     EventShieldActivated,
		Player:   p.Owner,
		Property: pid,
		Amount:   totalCost,
		Data: map[string]any{
			"slots_shielded": slotsToShield,
			"expiry":         p.ShieldExpiry[pid],
		},
	})
	return nil
}

// shieldCost prices a shield: the shield-cost rate applies to the daily yield
// of each slot, scaled by duration/24h, times every owned slot.
func shieldCost(prop *Property, durationHours, slots uint16) (uint64, error) {
	perSlotDaily, err := prop.DailyIncomePerSlot()
	if err != nil {
		return 0, err
	}
	perSlot, err := bpsOf(perSlotDaily, prop.ShieldCostBps)
	if err != nil {
		return 0, err
	}
	forDuration, err := mulDivU64(perSlot, uint64(durationHours), 24)
	if err != nil {
		return 0, err
	}
	return mulU64(forDuration, uint64(slots))
}

// applyShield covers every owned slot, deferring the start past an active
// steal-protection window, and records the quarter-duration cooldown.
func applyShield(p *Player, pid uint8, durationHours uint16, now int64) error {
	durationSeconds, err := mulI64(int64(durationHours), secondsPerHour)
	if err != nil {
		return err
	}

	start := now
	if now < p.ProtectionExpiry[pid] {
		start = p.ProtectionExpiry[pid]
	}

	expiry, err := addI64(start, durationSeconds)
	if err != nil {
		return err
	}

	p.Shielded[pid] = p.Slots[pid]
	p.ShieldExpiry[pid] = expiry
	p.ShieldCooldown[pid] = durationSeconds / 4
	return nil
}
