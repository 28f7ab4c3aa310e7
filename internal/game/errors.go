package game

import "errors"

// Every failure aborts the whole transaction; there is no partial application.
// The transport layer maps these onto HTTP status codes.
var (
	ErrOverflow = errors.New("overflow")

	ErrGamePaused            = errors.New("game_paused")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidSlotAmount     = errors.New("invalid_slot_amount")
	ErrNoSlotsAvailable      = errors.New("no_slots_available")
	ErrMaxSlotsReached       = errors.New("max_slots_reached")
	ErrCooldownActive        = errors.New("cooldown_active")
	ErrDoesNotOwnProperty    = errors.New("does_not_own_property")
	ErrInvalidShieldDuration = errors.New("invalid_shield_duration")
	ErrShieldAlreadyActive   = errors.New("shield_already_active")

	ErrNoEligibleTargets        = errors.New("no_eligible_targets")
	ErrSlotHashUnavailable      = errors.New("slot_hash_unavailable")
	ErrCannotStealSelf          = errors.New("cannot_steal_self")
	ErrTargetDoesNotOwnProperty = errors.New("target_does_not_own_property")
	ErrAllSlotsShielded         = errors.New("all_slots_shielded")
	ErrStealProtectionActive    = errors.New("steal_protection_active")
	ErrStealCooldownActive      = errors.New("steal_cooldown_active")

	ErrNoRewardsToClaim       = errors.New("no_rewards_to_claim")
	ErrClaimTooSoon           = errors.New("claim_too_soon")
	ErrInsufficientRewardPool = errors.New("insufficient_reward_pool")
	ErrInsufficientSlots      = errors.New("insufficient_slots")
	ErrInsufficientFunds      = errors.New("insufficient_funds")

	ErrInvalidPropertyID = errors.New("invalid_property_id")
	ErrInvalidSetID      = errors.New("invalid_set_id")
	ErrInvalidRate       = errors.New("invalid_rate")
	ErrInvalidBonus      = errors.New("invalid_bonus")
	ErrInvalidCooldown   = errors.New("invalid_cooldown")
)
