package game

// StealResult reports which candidate was targeted and how the roll went.
type StealResult struct {
	TargetIndex int
	Target      Address
	Success     bool
	Roll        uint64
}

// Steal attempts to take one slot of prop from a pseudo-randomly selected
// member of candidates. The attempt costs a fraction of the property price
// regardless of outcome, and the target receives a six-hour protection window
// win or lose, which bounds how often any one player can be re-targeted.
//
// Slot counts move only on success, and both ledgers flush accrual at that
// moment so the elapsed interval earned at pre-transfer rates.
func Steal(tx *Tx, cfg *Config, prop *Property, attacker *Player, signer Address, userRandomness [32]byte, slotHashData []byte, candidates []*Player) (*StealResult, error) {
	if cfg.Paused {
		return nil, ErrGamePaused
	}
	if attacker.Owner != signer {
		return nil, ErrUnauthorized
	}
	if len(candidates) == 0 {
		return nil, ErrNoEligibleTargets
	}

	slotHash, err := slotHashFromData(slotHashData)
	if err != nil {
		return nil, err
	}
	entropy := CombineEntropy(userRandomness, slotHash, tx.Slot, tx.Now)

	pid := prop.ID
	idx := targetIndex(entropy, len(candidates))
	target := candidates[idx]

	if target.Owner == attacker.Owner {
		return nil, ErrCannotStealSelf
	}
	if target.Slots[pid] == 0 {
		return nil, ErrTargetDoesNotOwnProperty
	}
	if target.Slots[pid] <= target.shieldedNow(pid, tx.Now) {
		return nil, ErrAllSlotsShielded
	}
	if tx.Now < target.ProtectionExpiry[pid] {
		return nil, ErrStealProtectionActive
	}

	cooldown := prop.CooldownSeconds / 2
	if attacker.StealCooldownTS[pid] != 0 {
		sinceLast, err := subI64(tx.Now, attacker.StealCooldownTS[pid])
		if err != nil {
			return nil, err
		}
		if sinceLast < cooldown {
			return nil, ErrStealCooldownActive
		}
	}
	attacker.StealCooldownTS[pid] = tx.Now

	stealCost, err := bpsOf(prop.Price, cfg.StealCostBps)
	if err != nil {
		return nil, err
	}
	if err := distributePayment(tx, cfg, attacker.Owner, stealCost); err != nil {
		return nil, err
	}

	roll := stealRoll(entropy)
	success := roll < uint64(cfg.StealChanceBps)

	attempts, err := addU64(attacker.StealsAttempted, 1)
	if err != nil {
		return nil, err
	}
	attacker.StealsAttempted = attempts

	if success {
		if err := Accrue(attacker, tx.Now); err != nil {
			return nil, err
		}
		if err := Accrue(target, tx.Now); err != nil {
			return nil, err
		}
		if err := target.removeSlots(prop, 1); err != nil {
			return nil, err
		}
		if err := attacker.addSlots(prop, 1, tx.Now); err != nil {
			return nil, err
		}
		wins, err := addU64(attacker.StealsSuccessful, 1)
		if err != nil {
			return nil, err
		}
		attacker.StealsSuccessful = wins
	}

	protection, err := addI64(tx.Now, stealProtectionSeconds)
	if err != nil {
		return nil, err
	}
	target.ProtectionExpiry[pid] = protection

	evType := EventStealFailed
	if success {
		evType = EventStealSuccess
	}
	tx.emit(Event{
		Type:     evType,
		Player:   attacker.Owner,
		Property: pid,
		Amount:   stealCost,
		Data: map[string]any{
			"target": target.Owner,
			"roll":   roll,
		},
	})

	return &StealResult{TargetIndex: idx, Target: target.Owner, Success: success, Roll: roll}, nil
}
