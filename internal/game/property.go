package game

// Property is the reference record for one board position. Prices and rates
// are admin-mutable; the slot pool is live state.
type Property struct {
	ID    uint8 `json:"id"`
	SetID uint8 `json:"set_id"`

	MaxSlots       uint16 `json:"max_slots"`
	MaxPerPlayer   uint16 `json:"max_per_player"`
	AvailableSlots uint16 `json:"available_slots"`

	Price           uint64 `json:"price"`
	YieldBps        uint16 `json:"yield_bps"`
	ShieldCostBps   uint16 `json:"shield_cost_bps"`
	CooldownSeconds int64  `json:"cooldown_seconds"`
}

// NewProperty validates and builds a property with its full slot pool
// available.
func NewProperty(id, setID uint8, maxSlots, maxPerPlayer uint16, price uint64, yieldBps, shieldCostBps uint16, cooldownSeconds int64) (*Property, error) {
	if id >= MaxProperties {
		return nil, ErrInvalidPropertyID
	}
	if setID >= MaxSets {
		return nil, ErrInvalidSetID
	}
	if yieldBps > maxBps || shieldCostBps > maxBps {
		return nil, ErrInvalidRate
	}
	if cooldownSeconds < 0 {
		return nil, ErrInvalidCooldown
	}
	return &Property{
		ID:              id,
		SetID:           setID,
		MaxSlots:        maxSlots,
		MaxPerPlayer:    maxPerPlayer,
		AvailableSlots:  maxSlots,
		Price:           price,
		YieldBps:        yieldBps,
		ShieldCostBps:   shieldCostBps,
		CooldownSeconds: cooldownSeconds,
	}, nil
}

// DailyIncomePerSlot is price x yield, floored to whole token units.
func (pr *Property) DailyIncomePerSlot() (uint64, error) {
	return bpsOf(pr.Price, pr.YieldBps)
}
