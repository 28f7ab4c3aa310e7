package httptransport

import (
	"errors"
	"net/http"

	"cryptopoly/internal/app/admin"
	"cryptopoly/internal/app/play"
	"cryptopoly/internal/game"
)

// writeServiceError maps service and core sentinels onto HTTP statuses. The
// body carries the sentinel text verbatim so clients can switch on it.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, play.ErrInvalidRequest),
		errors.Is(err, admin.ErrInvalidRequest),
		errors.Is(err, game.ErrInvalidSlotAmount),
		errors.Is(err, game.ErrInvalidShieldDuration),
		errors.Is(err, game.ErrInvalidPropertyID),
		errors.Is(err, game.ErrInvalidSetID),
		errors.Is(err, game.ErrInvalidRate),
		errors.Is(err, game.ErrInvalidBonus),
		errors.Is(err, game.ErrInvalidCooldown):
		status = http.StatusBadRequest
	case errors.Is(err, play.ErrUnknownKey),
		errors.Is(err, game.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, play.ErrPlayerNotFound),
		errors.Is(err, play.ErrPropertyNotFound),
		errors.Is(err, admin.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, play.ErrGameNotInitialized),
		errors.Is(err, admin.ErrGameNotInitialized):
		status = http.StatusServiceUnavailable
	case errors.Is(err, game.ErrGamePaused),
		errors.Is(err, game.ErrCooldownActive),
		errors.Is(err, game.ErrStealCooldownActive),
		errors.Is(err, game.ErrStealProtectionActive),
		errors.Is(err, game.ErrShieldAlreadyActive),
		errors.Is(err, game.ErrAllSlotsShielded),
		errors.Is(err, game.ErrNoEligibleTargets),
		errors.Is(err, game.ErrCannotStealSelf),
		errors.Is(err, game.ErrTargetDoesNotOwnProperty),
		errors.Is(err, game.ErrDoesNotOwnProperty),
		errors.Is(err, game.ErrNoSlotsAvailable),
		errors.Is(err, game.ErrMaxSlotsReached),
		errors.Is(err, game.ErrInsufficientSlots),
		errors.Is(err, game.ErrNoRewardsToClaim),
		errors.Is(err, game.ErrClaimTooSoon),
		errors.Is(err, play.ErrPlayerHasSlots),
		errors.Is(err, admin.ErrAlreadyInitialized),
		errors.Is(err, admin.ErrPropertyExists):
		status = http.StatusConflict
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientRewardPool):
		status = http.StatusPaymentRequired
	}
	WriteHTTPError(w, status, err.Error())
}
