package game

// distributePayment splits any economic payment 95% reward pool / 3%
// marketing / 2% dev. Each leg is an independent multiply-then-divide floor so
// rounding never favours one party; the legs can sum to slightly less than
// amount but never more.
func distributePayment(tx *Tx, cfg *Config, from Address, amount uint64) error {
	toPool, err := mulDivU64(amount, 95, 100)
	if err != nil {
		return err
	}
	toMarketing, err := mulDivU64(amount, 3, 100)
	if err != nil {
		return err
	}
	toDev, err := mulDivU64(amount, 2, 100)
	if err != nil {
		return err
	}

	if err := tx.Tokens.Transfer(from, cfg.RewardPool, toPool); err != nil {
		return err
	}
	if err := tx.Tokens.Transfer(from, cfg.MarketingWallet, toMarketing); err != nil {
		return err
	}
	return tx.Tokens.Transfer(from, cfg.DevWallet, toDev)
}
