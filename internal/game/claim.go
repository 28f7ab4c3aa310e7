package game

// Claim flushes accrual and pays out pending rewards plus bonuses from the
// reward pool. The payout is all-or-nothing: a pool that cannot cover the
// whole amount fails the claim untouched.
func Claim(tx *Tx, cfg *Config, p *Player, signer Address) (uint64, error) {
	if p.Owner != signer {
		return 0, ErrUnauthorized
	}
	if cfg.Paused {
		return 0, ErrGamePaused
	}
	if cfg.MinClaimIntervalSeconds > 0 && p.LastClaimTS != 0 {
		sinceLast, err := subI64(tx.Now, p.LastClaimTS)
		if err != nil {
			return 0, err
		}
		if sinceLast < cfg.MinClaimIntervalSeconds {
			return 0, ErrClaimTooSoon
		}
	}

	if err := Accrue(p, tx.Now); err != nil {
		return 0, err
	}

	base := p.PendingRewards
	if base == 0 {
		return 0, ErrNoRewardsToClaim
	}

	accumulationBonus, err := progressiveBonus(base, cfg)
	if err != nil {
		return 0, err
	}

	var setBonus uint64
	for setID := uint8(0); setID < MaxSets; setID++ {
		if !p.SetComplete(setID) {
			continue
		}
		bonus, err := bpsOf(base, cfg.SetBonusBps[setID])
		if err != nil {
			return 0, err
		}
		setBonus, err = addU64(setBonus, bonus)
		if err != nil {
			return 0, err
		}
	}

	total, err := addU64(base, accumulationBonus)
	if err != nil {
		return 0, err
	}
	total, err = addU64(total, setBonus)
	if err != nil {
		return 0, err
	}

	poolBalance, err := tx.Tokens.Balance(cfg.RewardPool)
	if err != nil {
		return 0, err
	}
	if poolBalance < total {
		return 0, ErrInsufficientRewardPool
	}
	if err := tx.Tokens.Transfer(cfg.RewardPool, p.Owner, total); err != nil {
		return 0, err
	}

	p.PendingRewards = 0
	claimed, err := addU64(p.TotalRewardsClaimed, total)
	if err != nil {
		return 0, err
	}
	p.TotalRewardsClaimed = claimed
	p.LastAccrualTS = tx.Now
	p.LastClaimTS = tx.Now

	tx.emit(Event{
		Type:     EventRewardsClaimed,
		Player:   p.Owner,
		Property: NoPropertyEvent,
		Amount:   total,
		Data: map[string]any{
			"base":               base,
			"accumulation_bonus": accumulationBonus,
			"set_bonus":          setBonus,
		},
	})
	return total, nil
}

// progressiveBonus walks the accumulation ladder from the highest rung down,
// paying each rung's rate only on the amount strictly above its threshold:
// marginal bracket rates, not a flat rate on the whole balance. Unset rungs
// (zero threshold) are skipped.
func progressiveBonus(pending uint64, cfg *Config) (uint64, error) {
	var total uint64
	remaining := pending

	for i := MaxTiers - 1; i >= 0; i-- {
		tier := cfg.Tiers[i]
		if tier.Threshold == 0 || remaining <= tier.Threshold {
			continue
		}
		inTier, err := subU64(remaining, tier.Threshold)
		if err != nil {
			return 0, err
		}
		bonus, err := bpsOf(inTier, tier.BonusBps)
		if err != nil {
			return 0, err
		}
		total, err = addU64(total, bonus)
		if err != nil {
			return 0, err
		}
		remaining = tier.Threshold
	}
	return total, nil
}
