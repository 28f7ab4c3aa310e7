package game

// NoProperty marks an empty per-set "last purchased" entry.
const NoProperty uint8 = 255

// Player is the per-player ledger. Per-property and per-set state lives in
// fixed parallel arrays indexed by the dense id space so the record stays a
// fixed size regardless of holdings.
type Player struct {
	Owner Address `json:"owner"`

	Slots            [MaxProperties]uint16 `json:"slots"`
	Shielded         [MaxProperties]uint16 `json:"shielded"`
	PurchaseTS       [MaxProperties]int64  `json:"purchase_ts"`
	ShieldExpiry     [MaxProperties]int64  `json:"shield_expiry"`
	ShieldCooldown   [MaxProperties]int64  `json:"shield_cooldown"`
	ProtectionExpiry [MaxProperties]int64  `json:"protection_expiry"`
	StealCooldownTS  [MaxProperties]int64  `json:"steal_cooldown_ts"`

	SetCooldownTS       [MaxSets]int64   `json:"set_cooldown_ts"`
	SetCooldownDuration [MaxSets]int64   `json:"set_cooldown_duration"`
	SetLastProperty     [MaxSets]uint8   `json:"set_last_property"`
	SetMasks            [MaxSets]SetMask `json:"set_masks"`

	TotalSlots           uint32 `json:"total_slots"`
	TotalBaseDailyIncome uint64 `json:"total_base_daily_income"`
	CompleteSets         uint8  `json:"complete_sets"`
	PropertiesOwned      uint8  `json:"properties_owned"`

	PendingRewards      uint64 `json:"pending_rewards"`
	TotalRewardsClaimed uint64 `json:"total_rewards_claimed"`
	StealsAttempted     uint64 `json:"steals_attempted"`
	StealsSuccessful    uint64 `json:"steals_successful"`

	LastAccrualTS int64 `json:"last_accrual_ts"`
	LastClaimTS   int64 `json:"last_claim_ts"`
}

// NewPlayer returns a zeroed ledger with the accrual clock started at now.
func NewPlayer(owner Address, now int64) *Player {
	p := &Player{Owner: owner, LastAccrualTS: now}
	for s := range p.SetLastProperty {
		p.SetLastProperty[s] = NoProperty
	}
	return p
}

// SetComplete reports whether the player currently holds every property of
// the set.
func (p *Player) SetComplete(setID uint8) bool {
	return p.SetMasks[setID].Complete(setID)
}

// addSlots books n newly acquired slots of prop: first-slot transitions
// (purchase timestamp, set-mask bit, distinct-property count, set-completion
// edge) plus the aggregate slot and daily-income deltas. Callers flush accrual
// before invoking so the elapsed interval earns at the pre-change rate.
func (p *Player) addSlots(prop *Property, n uint16, now int64) error {
	pid := prop.ID
	if p.Slots[pid] == 0 {
		p.PurchaseTS[pid] = now
		p.PropertiesOwned++

		setID := prop.SetID
		wasComplete := p.SetComplete(setID)
		p.SetMasks[setID].Set(PropertyBit(pid, setID))
		if !wasComplete && p.SetComplete(setID) {
			p.CompleteSets++
		}
	}

	slots, err := addU16(p.Slots[pid], n)
	if err != nil {
		return err
	}
	p.Slots[pid] = slots

	total, err := addU32(p.TotalSlots, uint32(n))
	if err != nil {
		return err
	}
	p.TotalSlots = total

	perSlot, err := prop.DailyIncomePerSlot()
	if err != nil {
		return err
	}
	delta, err := mulU64(perSlot, uint64(n))
	if err != nil {
		return err
	}
	income, err := addU64(p.TotalBaseDailyIncome, delta)
	if err != nil {
		return err
	}
	p.TotalBaseDailyIncome = income
	return nil
}

// removeSlots books n slots leaving the player: the aggregate deltas, the
// shield clamp, and the last-slot transitions (mask bit cleared, distinct
// count and completion edge) when the holding reaches zero.
func (p *Player) removeSlots(prop *Property, n uint16) error {
	pid := prop.ID
	slots, err := subU16(p.Slots[pid], n)
	if err != nil {
		return ErrInsufficientSlots
	}
	p.Slots[pid] = slots

	if p.Shielded[pid] > p.Slots[pid] {
		p.Shielded[pid] = p.Slots[pid]
	}

	if p.Slots[pid] == 0 {
		setID := prop.SetID
		wasComplete := p.SetComplete(setID)
		p.SetMasks[setID].Clear(PropertyBit(pid, setID))
		if wasComplete && !p.SetComplete(setID) {
			p.CompleteSets--
		}
		if p.PropertiesOwned == 0 {
			return ErrOverflow
		}
		p.PropertiesOwned--
	}

	total, err := subU32(p.TotalSlots, uint32(n))
	if err != nil {
		return err
	}
	p.TotalSlots = total

	perSlot, err := prop.DailyIncomePerSlot()
	if err != nil {
		return err
	}
	delta, err := mulU64(perSlot, uint64(n))
	if err != nil {
		return err
	}
	income, err := subU64(p.TotalBaseDailyIncome, delta)
	if err != nil {
		return err
	}
	p.TotalBaseDailyIncome = income
	return nil
}

// shieldedNow returns how many of the player's slots of pid are covered by an
// unexpired shield at now.
func (p *Player) shieldedNow(pid uint8, now int64) uint16 {
	if now < p.ShieldExpiry[pid] {
		return p.Shielded[pid]
	}
	return 0
}
