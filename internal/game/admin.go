package game

// Admin operations. Every one verifies the signer against the configured
// authority; parameter setters enforce the same bounds the rates were created
// under and emit an update event naming the field.

func requireAuthority(cfg *Config, signer Address) error {
	if cfg.Authority != signer {
		return ErrUnauthorized
	}
	return nil
}

func emitUpdate(tx *Tx, pid uint8, field string, value uint64) {
	tx.emit(Event{
		Type:     EventAdminUpdate,
		Property: pid,
		Amount:   value,
		Data:     map[string]any{"field": field},
	})
}

func UpdatePropertyPrice(tx *Tx, cfg *Config, prop *Property, signer Address, price uint64) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	prop.Price = price
	emitUpdate(tx, prop.ID, "price", price)
	return nil
}

func UpdatePropertyYield(tx *Tx, cfg *Config, prop *Property, signer Address, yieldBps uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if yieldBps > maxBps {
		return ErrInvalidRate
	}
	prop.YieldBps = yieldBps
	emitUpdate(tx, prop.ID, "yield", uint64(yieldBps))
	return nil
}

func UpdateShieldCost(tx *Tx, cfg *Config, prop *Property, signer Address, shieldCostBps uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if shieldCostBps > maxBps {
		return ErrInvalidRate
	}
	prop.ShieldCostBps = shieldCostBps
	emitUpdate(tx, prop.ID, "shield_cost", uint64(shieldCostBps))
	return nil
}

func UpdateCooldown(tx *Tx, cfg *Config, prop *Property, signer Address, cooldownSeconds int64) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if cooldownSeconds < 0 {
		return ErrInvalidCooldown
	}
	prop.CooldownSeconds = cooldownSeconds
	emitUpdate(tx, prop.ID, "cooldown", uint64(cooldownSeconds))
	return nil
}

// UpdateMaxSlots resizes the property's slot pool, moving the difference in
// or out of the available pool. Shrinking below the slots already held by
// players fails rather than leaving availability negative.
func UpdateMaxSlots(tx *Tx, cfg *Config, prop *Property, signer Address, maxSlots uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	diff := int32(maxSlots) - int32(prop.MaxSlots)
	newAvail := int32(prop.AvailableSlots) + diff
	if newAvail < 0 || newAvail > 0xFFFF {
		return ErrOverflow
	}
	prop.MaxSlots = maxSlots
	prop.AvailableSlots = uint16(newAvail)
	emitUpdate(tx, prop.ID, "max_slots", uint64(maxSlots))
	return nil
}

func UpdateStealChance(tx *Tx, cfg *Config, signer Address, chanceBps uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if chanceBps > maxBps {
		return ErrInvalidRate
	}
	cfg.StealChanceBps = chanceBps
	emitUpdate(tx, NoPropertyEvent, "steal_chance", uint64(chanceBps))
	return nil
}

func UpdateStealCost(tx *Tx, cfg *Config, signer Address, costBps uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if costBps > maxBps {
		return ErrInvalidRate
	}
	cfg.StealCostBps = costBps
	emitUpdate(tx, NoPropertyEvent, "steal_cost", uint64(costBps))
	return nil
}

func UpdateSetBonus(tx *Tx, cfg *Config, signer Address, setID uint8, bonusBps uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if setID >= MaxSets {
		return ErrInvalidSetID
	}
	if bonusBps > maxBps {
		return ErrInvalidBonus
	}
	cfg.SetBonusBps[setID] = bonusBps
	emitUpdate(tx, NoPropertyEvent, "set_bonus", uint64(bonusBps))
	return nil
}

// UpdateAccumulationTiers replaces the whole bonus ladder at once. Tier
// bonuses are capped tighter than ordinary rates.
func UpdateAccumulationTiers(tx *Tx, cfg *Config, signer Address, tiers [MaxTiers]Tier) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	for _, tier := range tiers {
		if tier.BonusBps > maxTierBonus {
			return ErrInvalidBonus
		}
	}
	cfg.Tiers = tiers
	emitUpdate(tx, NoPropertyEvent, "accumulation_tiers", 0)
	return nil
}

func UpdateMinClaimInterval(tx *Tx, cfg *Config, signer Address, seconds int64) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if seconds < 0 {
		return ErrInvalidCooldown
	}
	cfg.MinClaimIntervalSeconds = seconds
	emitUpdate(tx, NoPropertyEvent, "min_claim_interval", uint64(seconds))
	return nil
}

func SetPaused(tx *Tx, cfg *Config, signer Address, paused bool) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	cfg.Paused = paused
	v := uint64(0)
	if paused {
		v = 1
	}
	emitUpdate(tx, NoPropertyEvent, "paused", v)
	return nil
}

// Grant mirrors a purchase without payment and without cooldown checks; used
// for promotions and corrections.
func Grant(tx *Tx, cfg *Config, prop *Property, p *Player, signer Address, slots uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
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
	after, err := addU16(p.Slots[prop.ID], slots)
	if err != nil {
		return err
	}
	if after > prop.MaxPerPlayer {
		return ErrMaxSlotsReached
	}

	if err := Accrue(p, tx.Now); err != nil {
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

	tx.emit(Event{
		Type:     EventAdminGrant,
		Player:   p.Owner,
		Property: prop.ID,
		Amount:   uint64(slots),
	})
	return nil
}

// Revoke mirrors a sale without payout.
func Revoke(tx *Tx, cfg *Config, prop *Property, p *Player, signer Address, slots uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if slots == 0 {
		return ErrInvalidSlotAmount
	}
	if p.Slots[prop.ID] < slots {
		return ErrInsufficientSlots
	}

	if err := Accrue(p, tx.Now); err != nil {
		return err
	}

	if err := p.removeSlots(prop, slots); err != nil {
		return err
	}

	avail, err := addU16(prop.AvailableSlots, slots)
	if err != nil {
		return err
	}
	prop.AvailableSlots = avail

	tx.emit(Event{
		Type:     EventAdminRevoke,
		Player:   p.Owner,
		Property: prop.ID,
		Amount:   uint64(slots),
	})
	return nil
}

// GrantShield applies a free shield, allowing the longer promotional
// durations up to a week.
func GrantShield(tx *Tx, cfg *Config, p *Player, signer Address, propertyID uint8, durationHours uint16) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if propertyID >= MaxProperties {
		return ErrInvalidPropertyID
	}
	if durationHours < minShieldHours || durationHours > maxAdminShieldHours {
		return ErrInvalidShieldDuration
	}

	if err := applyShield(p, propertyID, durationHours, tx.Now); err != nil {
		return err
	}

	tx.emit(Event{
		Type:     EventAdminShield,
		Player:   p.Owner,
		Property: propertyID,
		Amount:   uint64(durationHours),
		Data:     map[string]any{"expiry": p.ShieldExpiry[propertyID]},
	})
	return nil
}

func ClearSetCooldown(tx *Tx, cfg *Config, p *Player, signer Address, setID uint8) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if setID >= MaxSets {
		return ErrInvalidSetID
	}
	p.SetCooldownTS[setID] = 0
	return nil
}

func ClearStealCooldown(tx *Tx, cfg *Config, p *Player, signer Address, propertyID uint8) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	if propertyID >= MaxProperties {
		return ErrInvalidPropertyID
	}
	p.StealCooldownTS[propertyID] = 0
	return nil
}

// EmergencyWithdraw drains reward-pool funds to an arbitrary destination. An
// unrestricted escape hatch: the authority key is a trust concentration point
// here, by the game's own admission.
func EmergencyWithdraw(tx *Tx, cfg *Config, signer Address, destination Address, amount uint64) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	poolBalance, err := tx.Tokens.Balance(cfg.RewardPool)
	if err != nil {
		return err
	}
	if poolBalance < amount {
		return ErrInsufficientRewardPool
	}
	if err := tx.Tokens.Transfer(cfg.RewardPool, destination, amount); err != nil {
		return err
	}
	tx.emit(Event{
		Type:     EventAdminWithdraw,
		Player:   destination,
		Property: NoPropertyEvent,
		Amount:   amount,
	})
	return nil
}

func TransferAuthority(tx *Tx, cfg *Config, signer Address, newAuthority Address) error {
	if err := requireAuthority(cfg, signer); err != nil {
		return err
	}
	old := cfg.Authority
	cfg.Authority = newAuthority
	tx.emit(Event{
		Type:     EventAuthorityMoved,
		Player:   newAuthority,
		Property: NoPropertyEvent,
		Data:     map[string]any{"old_authority": old},
	})
	return nil
}

// CanClose reports whether signer may close the player record: its own owner
// or the authority.
func CanClose(cfg *Config, p *Player, signer Address) error {
	if signer != p.Owner && signer != cfg.Authority {
		return ErrUnauthorized
	}
	return nil
}
