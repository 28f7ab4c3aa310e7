package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	BotName     string `env:"BOT_NAME" envDefault:"bot"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`
	Rounds      int    `env:"BOT_ROUNDS" envDefault:"10"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
