package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	DBPath   string `env:"DB_PATH,required,notEmpty"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Optional postgres event index; empty disables it.
	IndexPostgresDSN string `env:"INDEX_POSTGRES_DSN"`

	// Tokens minted to the authority at game initialization, and the faucet
	// amount granted to each joining player, both in base units (9 decimals).
	GenesisMint uint64 `env:"GENESIS_MINT" envDefault:"1000000000000000000"`
	JoinGrant   uint64 `env:"JOIN_GRANT" envDefault:"100000000000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
