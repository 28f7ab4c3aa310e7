package play

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrUnknownKey         = errors.New("unknown_api_key")
	ErrPlayerNotFound     = errors.New("player_not_found")
	ErrPropertyNotFound   = errors.New("property_not_found")
	ErrGameNotInitialized = errors.New("game_not_initialized")
	ErrPlayerHasSlots     = errors.New("player_still_owns_slots")
)
