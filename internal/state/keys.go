package state

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cryptopoly/internal/game"
)

const (
	prefixConfig   = "cfg:"
	prefixProperty = "prop:"
	prefixPlayer   = "player:"
	prefixBalance  = "bal:"
	prefixAuth     = "auth:"
	prefixMeta     = "meta:"
)

const (
	keyConfig = prefixConfig + "game"
	keyMeta   = prefixMeta + "chain"
)

func propertyKey(id uint8) string {
	return fmt.Sprintf("%s%02d", prefixProperty, id)
}

func playerKey(addr game.Address) string {
	return prefixPlayer + string(addr)
}

func balanceKey(addr game.Address) string {
	return prefixBalance + string(addr)
}

// authKey derives the lookup key for an API key. Only the hash is stored.
func authKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return prefixAuth + hex.EncodeToString(sum[:])
}
