package play

import "cryptopoly/internal/game"

type JoinResponse struct {
	Address game.Address `json:"address"`
	APIKey  string       `json:"api_key"`
	Balance uint64       `json:"balance"`
}

type BuyResponse struct {
	PropertyID uint8  `json:"property_id"`
	Slots      uint16 `json:"slots"`
	Cost       uint64 `json:"cost"`
	Balance    uint64 `json:"balance"`
}

type ShieldResponse struct {
	PropertyID uint8  `json:"property_id"`
	Hours      uint16 `json:"hours"`
	Cost       uint64 `json:"cost"`
	Expiry     int64  `json:"expiry"`
}

type StealResponse struct {
	PropertyID uint8        `json:"property_id"`
	Target     game.Address `json:"target"`
	Success    bool         `json:"success"`
	Roll       uint64       `json:"roll"`
	Cost       uint64       `json:"cost"`
}

type ClaimResponse struct {
	Claimed uint64 `json:"claimed"`
	Balance uint64 `json:"balance"`
}

type SellResponse struct {
	PropertyID uint8  `json:"property_id"`
	Slots      uint16 `json:"slots"`
	Payout     uint64 `json:"payout"`
	Balance    uint64 `json:"balance"`
}

// Holding is one property position inside a player snapshot.
type Holding struct {
	PropertyID       uint8  `json:"property_id"`
	SetID            uint8  `json:"set_id"`
	Slots            uint16 `json:"slots"`
	Shielded         uint16 `json:"shielded"`
	ShieldExpiry     int64  `json:"shield_expiry,omitempty"`
	ProtectionExpiry int64  `json:"protection_expiry,omitempty"`
}

type PlayerState struct {
	Address              game.Address `json:"address"`
	Balance              uint64       `json:"balance"`
	TotalSlots           uint32       `json:"total_slots"`
	TotalBaseDailyIncome uint64       `json:"total_base_daily_income"`
	CompleteSets         uint8        `json:"complete_sets"`
	PendingRewards       uint64       `json:"pending_rewards"`
	TotalRewardsClaimed  uint64       `json:"total_rewards_claimed"`
	StealsAttempted      uint64       `json:"steals_attempted"`
	StealsSuccessful     uint64       `json:"steals_successful"`
	Holdings             []Holding    `json:"holdings"`
}

type PropertyItem struct {
	ID             uint8  `json:"id"`
	SetID          uint8  `json:"set_id"`
	MaxSlots       uint16 `json:"max_slots"`
	MaxPerPlayer   uint16 `json:"max_per_player"`
	AvailableSlots uint16 `json:"available_slots"`
	Price          uint64 `json:"price"`
	YieldBps       uint16 `json:"yield_bps"`
	ShieldCostBps  uint16 `json:"shield_cost_bps"`
	CooldownSecs   int64  `json:"cooldown_seconds"`
}

type PropertiesResponse struct {
	Items []PropertyItem `json:"items"`
}
