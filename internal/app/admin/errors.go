package admin

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrAlreadyInitialized = errors.New("game_already_initialized")
	ErrGameNotInitialized = errors.New("game_not_initialized")
	ErrPropertyExists     = errors.New("property_already_exists")
	ErrPlayerNotFound     = errors.New("player_not_found")
)
