package game

const (
	sellBaseBps      = 1500
	sellMaxBonusBps  = 1500
	sellRampDays     = 14
)

// Sell returns slots to the property pool for a payout from the reward pool.
// The payout rate ramps linearly with holding time from 15% of price at day
// zero to 30% at day fourteen and beyond. An active shield shrinks by the sold
// amount; an expired one is cleared.
func Sell(tx *Tx, cfg *Config, prop *Property, p *Player, signer Address, slots uint16) (uint64, error) {
	if p.Owner != signer {
		return 0, ErrUnauthorized
	}
	if cfg.Paused {
		return 0, ErrGamePaused
	}
	if slots == 0 {
		return 0, ErrInvalidSlotAmount
	}

	pid := prop.ID
	if p.Slots[pid] < slots {
		return 0, ErrInsufficientSlots
	}

	if err := Accrue(p, tx.Now); err != nil {
		return 0, err
	}

	held, err := subI64(tx.Now, p.PurchaseTS[pid])
	if err != nil {
		return 0, err
	}
	daysHeld := held / secondsPerDay
	payoutBps, err := sellPayoutBps(daysHeld)
	if err != nil {
		return 0, err
	}

	totalValue, err := mulU64(prop.Price, uint64(slots))
	if err != nil {
		return 0, err
	}
	payout, err := bpsOf(totalValue, payoutBps)
	if err != nil {
		return 0, err
	}

	poolBalance, err := tx.Tokens.Balance(cfg.RewardPool)
	if err != nil {
		return 0, err
	}
	if poolBalance < payout {
		return 0, ErrInsufficientRewardPool
	}
	if err := tx.Tokens.Transfer(cfg.RewardPool, p.Owner, payout); err != nil {
		return 0, err
	}

	if p.Shielded[pid] > 0 {
		if tx.Now < p.ShieldExpiry[pid] {
			if slots >= p.Shielded[pid] {
				p.Shielded[pid] = 0
				p.ShieldExpiry[pid] = 0
			} else {
				p.Shielded[pid] -= slots
			}
		} else {
			p.Shielded[pid] = 0
			p.ShieldExpiry[pid] = 0
		}
	}

	if err := p.removeSlots(prop, slots); err != nil {
		return 0, err
	}

	avail, err := addU16(prop.AvailableSlots, slots)
	if err != nil {
		return 0, err
	}
	prop.AvailableSlots = avail

	tx.emit(Event{
		Type:     EventPropertySold,
		Player:   p.Owner,
		Property: pid,
		Amount:   payout,
		Data: map[string]any{
			"slots":      slots,
			"payout_bps": payoutBps,
			"days_held":  daysHeld,
		},
	})
	return payout, nil
}

// sellPayoutBps converts holding time into the payout rate: base 15%, plus a
// linear ramp that tops out at an additional 15% after fourteen days.
func sellPayoutBps(daysHeld int64) (uint16, error) {
	if daysHeld < 0 {
		return 0, ErrOverflow
	}
	bonus := uint64(sellMaxBonusBps)
	if daysHeld < sellRampDays {
		b, err := mulDivU64(uint64(daysHeld), sellMaxBonusBps, sellRampDays)
		if err != nil {
			return 0, err
		}
		bonus = b
	}
	return uint16(sellBaseBps + bonus), nil
}
