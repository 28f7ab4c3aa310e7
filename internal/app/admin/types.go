package admin

import "cryptopoly/internal/game"

// Well-known vault addresses the game economy runs between. Real wallets are
// ulid addresses; these are server-owned balances.
const (
	AuthorityAddress  game.Address = "vault:authority"
	RewardPoolAddress game.Address = "vault:reward-pool"
	MarketingAddress  game.Address = "vault:marketing"
	DevAddress        game.Address = "vault:dev"
)

type InitGameResponse struct {
	Authority  game.Address `json:"authority"`
	RewardPool game.Address `json:"reward_pool"`
	Marketing  game.Address `json:"marketing_wallet"`
	Dev        game.Address `json:"dev_wallet"`
	Minted     uint64       `json:"minted"`
	Properties int          `json:"properties"`
}

type CreatePropertyRequest struct {
	ID              uint8  `json:"id"`
	SetID           uint8  `json:"set_id"`
	MaxSlots        uint16 `json:"max_slots"`
	MaxPerPlayer    uint16 `json:"max_per_player"`
	Price           uint64 `json:"price"`
	YieldBps        uint16 `json:"yield_bps"`
	ShieldCostBps   uint16 `json:"shield_cost_bps"`
	CooldownSeconds int64  `json:"cooldown_seconds"`
}

type UpdatePropertyRequest struct {
	Price           *uint64 `json:"price,omitempty"`
	YieldBps        *uint16 `json:"yield_bps,omitempty"`
	ShieldCostBps   *uint16 `json:"shield_cost_bps,omitempty"`
	CooldownSeconds *int64  `json:"cooldown_seconds,omitempty"`
	MaxSlots        *uint16 `json:"max_slots,omitempty"`
}

type UpdateGameRequest struct {
	StealChanceBps   *uint16   `json:"steal_chance_bps,omitempty"`
	StealCostBps     *uint16   `json:"steal_cost_bps,omitempty"`
	MinClaimInterval *int64    `json:"min_claim_interval_seconds,omitempty"`
	SetBonus         *SetBonus `json:"set_bonus,omitempty"`
	Tiers            *[8]Tier  `json:"tiers,omitempty"`
	Paused           *bool     `json:"paused,omitempty"`
}

type SetBonus struct {
	SetID    uint8  `json:"set_id"`
	BonusBps uint16 `json:"bonus_bps"`
}

type Tier struct {
	Threshold uint64 `json:"threshold"`
	BonusBps  uint16 `json:"bonus_bps"`
}

type GameStateResponse struct {
	Authority      game.Address `json:"authority"`
	StealChanceBps uint16       `json:"steal_chance_bps"`
	StealCostBps   uint16       `json:"steal_cost_bps"`
	Paused         bool         `json:"paused"`
	PoolBalance    uint64       `json:"pool_balance"`
	Players        int          `json:"players"`
	Properties     int          `json:"properties"`
}
