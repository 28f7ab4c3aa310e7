package game

// EventType labels what a handler did.
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerClosed    EventType = "player_closed"
	EventPropertyBought  EventType = "property_bought"
	EventPropertySold    EventType = "property_sold"
	EventShieldActivated EventType = "shield_activated"
	EventStealSuccess    EventType = "steal_success"
	EventStealFailed     EventType = "steal_failed"
	EventRewardsClaimed  EventType = "rewards_claimed"

	EventAdminUpdate     EventType = "admin_update"
	EventAdminGrant      EventType = "admin_grant"
	EventAdminRevoke     EventType = "admin_revoke"
	EventAdminShield     EventType = "admin_shield_grant"
	EventAdminWithdraw   EventType = "admin_withdraw"
	EventAuthorityMoved  EventType = "authority_transferred"
)

// Event is one append-only record emitted by a mutating handler, consumed by
// off-chain indexers and never read back by the core.
type Event struct {
	Type     EventType      `json:"type"`
	Player   Address        `json:"player,omitempty"`
	Property uint8          `json:"property_id"`
	Amount   uint64         `json:"amount"`
	Data     map[string]any `json:"data,omitempty"`
}

// NoPropertyEvent marks events that do not concern a specific property.
const NoPropertyEvent uint8 = 255
