package admin

import (
	"errors"
	"time"

	"cryptopoly/internal/events"
	"cryptopoly/internal/game"
	"cryptopoly/internal/state"
)

// Service runs operator transactions. The HTTP layer authenticates the
// operator with the admin API key; inside the core every call signs as the
// configured authority.
type Service struct {
	store   *state.Store
	emitter *events.Emitter
	now     func() int64
}

func NewService(st *state.Store, em *events.Emitter, now func() int64) *Service {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	return &Service{store: st, emitter: em, now: now}
}

func (s *Service) run(fn func(txn *state.Txn, gtx *game.Tx) error) error {
	txn, err := s.store.Begin()
	if err != nil {
		return err
	}
	gtx := &game.Tx{Now: s.now(), Slot: txn.Slot(), Tokens: txn}
	if err := fn(txn, gtx); err != nil {
		txn.Rollback()
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	if s.emitter != nil {
		for _, ev := range gtx.Events {
			s.emitter.Emit(events.Event{
				ID:   state.NewID(),
				TxID: txn.ID,
				Slot: gtx.Slot,
				Time: gtx.Now,
				Game: ev,
			})
		}
	}
	return nil
}

func (s *Service) loadConfig(txn *state.Txn) (*game.Config, error) {
	cfg, err := txn.Config()
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrGameNotInitialized
	}
	return cfg, err
}

// defaultBoard is the genesis board: 22 properties in 8 color sets, two in
// the cheapest and most expensive sets, three everywhere else. Prices scale
// roughly 40x from brown to dark blue; cooldowns lengthen with price.
func defaultBoard() []CreatePropertyRequest {
	type setDef struct {
		count    uint8
		price    uint64
		yieldBps uint16
		cooldown int64
	}
	// Prices are in token base units (9 decimals), large enough that even a
	// single cheap slot earns whole units per second.
	sets := [game.MaxSets]setDef{
		{2, 5_000_000_000, 1200, 1 * 3600},
		{3, 10_000_000_000, 1100, 2 * 3600},
		{3, 18_000_000_000, 1000, 3 * 3600},
		{3, 30_000_000_000, 950, 4 * 3600},
		{3, 50_000_000_000, 900, 6 * 3600},
		{3, 80_000_000_000, 850, 8 * 3600},
		{3, 130_000_000_000, 800, 12 * 3600},
		{2, 200_000_000_000, 750, 24 * 3600},
	}
	var out []CreatePropertyRequest
	id := uint8(0)
	for setID := uint8(0); setID < game.MaxSets; setID++ {
		def := sets[setID]
		for i := uint8(0); i < def.count; i++ {
			out = append(out, CreatePropertyRequest{
				ID:              id,
				SetID:           setID,
				MaxSlots:        100,
				MaxPerPlayer:    10,
				Price:           def.price,
				YieldBps:        def.yieldBps,
				ShieldCostBps:   5000,
				CooldownSeconds: def.cooldown,
			})
			id++
		}
	}
	return out
}

// InitGame creates the genesis configuration, mints the treasury, and lays
// out the default board. It can run exactly once per database.
func (s *Service) InitGame(genesisMint uint64) (*InitGameResponse, error) {
	var resp *InitGameResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		if _, err := txn.Config(); err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, state.ErrNotFound) {
			return err
		}
		cfg := game.NewConfig(AuthorityAddress, RewardPoolAddress, MarketingAddress, DevAddress)
		if err := txn.SetConfig(cfg); err != nil {
			return err
		}
		if genesisMint > 0 {
			if err := txn.Mint(AuthorityAddress, genesisMint); err != nil {
				return err
			}
		}
		board := defaultBoard()
		for _, req := range board {
			prop, err := game.NewProperty(req.ID, req.SetID, req.MaxSlots, req.MaxPerPlayer,
				req.Price, req.YieldBps, req.ShieldCostBps, req.CooldownSeconds)
			if err != nil {
				return err
			}
			if err := txn.SetProperty(prop); err != nil {
				return err
			}
		}
		resp = &InitGameResponse{
			Authority:  AuthorityAddress,
			RewardPool: RewardPoolAddress,
			Marketing:  MarketingAddress,
			Dev:        DevAddress,
			Minted:     genesisMint,
			Properties: len(board),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateProperty adds a board position that does not exist yet.
func (s *Service) CreateProperty(req CreatePropertyRequest) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		if _, err := s.loadConfig(txn); err != nil {
			return err
		}
		if _, err := txn.Property(req.ID); err == nil {
			return ErrPropertyExists
		} else if !errors.Is(err, state.ErrNotFound) {
			return err
		}
		prop, err := game.NewProperty(req.ID, req.SetID, req.MaxSlots, req.MaxPerPlayer,
			req.Price, req.YieldBps, req.ShieldCostBps, req.CooldownSeconds)
		if err != nil {
			return err
		}
		return txn.SetProperty(prop)
	})
}

// UpdateProperty applies the provided parameter changes to one property.
func (s *Service) UpdateProperty(propertyID uint8, req UpdatePropertyRequest) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := txn.Property(propertyID)
		if errors.Is(err, state.ErrNotFound) {
			return game.ErrInvalidPropertyID
		}
		if err != nil {
			return err
		}
		signer := cfg.Authority
		if req.Price != nil {
			if err := game.UpdatePropertyPrice(gtx, cfg, prop, signer, *req.Price); err != nil {
				return err
			}
		}
		if req.YieldBps != nil {
			if err := game.UpdatePropertyYield(gtx, cfg, prop, signer, *req.YieldBps); err != nil {
				return err
			}
		}
		if req.ShieldCostBps != nil {
			if err := game.UpdateShieldCost(gtx, cfg, prop, signer, *req.ShieldCostBps); err != nil {
				return err
			}
		}
		if req.CooldownSeconds != nil {
			if err := game.UpdateCooldown(gtx, cfg, prop, signer, *req.CooldownSeconds); err != nil {
				return err
			}
		}
		if req.MaxSlots != nil {
			if err := game.UpdateMaxSlots(gtx, cfg, prop, signer, *req.MaxSlots); err != nil {
				return err
			}
		}
		return txn.SetProperty(prop)
	})
}

// UpdateGame applies global parameter changes.
func (s *Service) UpdateGame(req UpdateGameRequest) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		signer := cfg.Authority
		if req.StealChanceBps != nil {
			if err := game.UpdateStealChance(gtx, cfg, signer, *req.StealChanceBps); err != nil {
				return err
			}
		}
		if req.StealCostBps != nil {
			if err := game.UpdateStealCost(gtx, cfg, signer, *req.StealCostBps); err != nil {
				return err
			}
		}
		if req.MinClaimInterval != nil {
			if err := game.UpdateMinClaimInterval(gtx, cfg, signer, *req.MinClaimInterval); err != nil {
				return err
			}
		}
		if req.SetBonus != nil {
			if err := game.UpdateSetBonus(gtx, cfg, signer, req.SetBonus.SetID, req.SetBonus.BonusBps); err != nil {
				return err
			}
		}
		if req.Tiers != nil {
			var tiers [game.MaxTiers]game.Tier
			for i, t := range req.Tiers {
				tiers[i] = game.Tier{Threshold: t.Threshold, BonusBps: t.BonusBps}
			}
			if err := game.UpdateAccumulationTiers(gtx, cfg, signer, tiers); err != nil {
				return err
			}
		}
		if req.Paused != nil {
			if err := game.SetPaused(gtx, cfg, signer, *req.Paused); err != nil {
				return err
			}
		}
		return txn.SetConfig(cfg)
	})
}

// Grant gives a player free slots.
func (s *Service) Grant(addr game.Address, propertyID uint8, slots uint16) error {
	return s.withPlayerAndProperty(addr, propertyID, func(gtx *game.Tx, cfg *game.Config, prop *game.Property, p *game.Player) error {
		return game.Grant(gtx, cfg, prop, p, cfg.Authority, slots)
	})
}

// Revoke takes a player's slots back without payout.
func (s *Service) Revoke(addr game.Address, propertyID uint8, slots uint16) error {
	return s.withPlayerAndProperty(addr, propertyID, func(gtx *game.Tx, cfg *game.Config, prop *game.Property, p *game.Player) error {
		return game.Revoke(gtx, cfg, prop, p, cfg.Authority, slots)
	})
}

// GrantShield applies a free promotional shield.
func (s *Service) GrantShield(addr game.Address, propertyID uint8, hours uint16) error {
	return s.withPlayer(addr, func(gtx *game.Tx, cfg *game.Config, p *game.Player) error {
		return game.GrantShield(gtx, cfg, p, cfg.Authority, propertyID, hours)
	})
}

// ClearSetCooldown lifts one player's purchase cooldown for a color set.
func (s *Service) ClearSetCooldown(addr game.Address, setID uint8) error {
	return s.withPlayer(addr, func(gtx *game.Tx, cfg *game.Config, p *game.Player) error {
		return game.ClearSetCooldown(gtx, cfg, p, cfg.Authority, setID)
	})
}

// ClearStealCooldown lifts one player's steal cooldown for a property.
func (s *Service) ClearStealCooldown(addr game.Address, propertyID uint8) error {
	return s.withPlayer(addr, func(gtx *game.Tx, cfg *game.Config, p *game.Player) error {
		return game.ClearStealCooldown(gtx, cfg, p, cfg.Authority, propertyID)
	})
}

// SetPaused halts or resumes all player operations.
func (s *Service) SetPaused(paused bool) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		if err := game.SetPaused(gtx, cfg, cfg.Authority, paused); err != nil {
			return err
		}
		return txn.SetConfig(cfg)
	})
}

// EmergencyWithdraw drains reward-pool funds to a destination balance.
func (s *Service) EmergencyWithdraw(destination game.Address, amount uint64) error {
	if destination == "" || amount == 0 {
		return ErrInvalidRequest
	}
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		return game.EmergencyWithdraw(gtx, cfg, cfg.Authority, destination, amount)
	})
}

// TransferAuthority hands the authority role to a new address.
func (s *Service) TransferAuthority(newAuthority game.Address) error {
	if newAuthority == "" {
		return ErrInvalidRequest
	}
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		if err := game.TransferAuthority(gtx, cfg, cfg.Authority, newAuthority); err != nil {
			return err
		}
		return txn.SetConfig(cfg)
	})
}

// Fund transfers treasury tokens to any balance; the operator faucet.
func (s *Service) Fund(to game.Address, amount uint64) error {
	if to == "" || amount == 0 {
		return ErrInvalidRequest
	}
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		return txn.Transfer(cfg.Authority, to, amount)
	})
}

// FundPool moves treasury tokens into the reward pool so claims and sales
// can pay out before organic buy volume fills it.
func (s *Service) FundPool(amount uint64) error {
	if amount == 0 {
		return ErrInvalidRequest
	}
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		return txn.Transfer(cfg.Authority, cfg.RewardPool, amount)
	})
}

// ForceClose removes a player record by authority.
func (s *Service) ForceClose(addr game.Address) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		p, err := txn.Player(addr)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := game.CanClose(cfg, p, cfg.Authority); err != nil {
			return err
		}
		// Slots go back to their pools; no payout.
		for pid := uint8(0); pid < game.MaxProperties; pid++ {
			if p.Slots[pid] == 0 {
				continue
			}
			prop, err := txn.Property(pid)
			if err != nil {
				return err
			}
			if err := game.Revoke(gtx, cfg, prop, p, cfg.Authority, p.Slots[pid]); err != nil {
				return err
			}
			if err := txn.SetProperty(prop); err != nil {
				return err
			}
		}
		txn.DeletePlayer(addr)
		gtx.Emit(game.Event{
			Type:     game.EventPlayerClosed,
			Player:   addr,
			Property: game.NoPropertyEvent,
		})
		return nil
	})
}

// GameState reports the operator dashboard summary.
func (s *Service) GameState() (*GameStateResponse, error) {
	var resp *GameStateResponse
	err := s.store.View(func(txn *state.Txn) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		pool, err := txn.Balance(cfg.RewardPool)
		if err != nil {
			return err
		}
		players, err := txn.Players()
		if err != nil {
			return err
		}
		props, err := txn.Properties()
		if err != nil {
			return err
		}
		resp = &GameStateResponse{
			Authority:      cfg.Authority,
			StealChanceBps: cfg.StealChanceBps,
			StealCostBps:   cfg.StealCostBps,
			Paused:         cfg.Paused,
			PoolBalance:    pool,
			Players:        len(players),
			Properties:     len(props),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) withPlayer(addr game.Address, fn func(gtx *game.Tx, cfg *game.Config, p *game.Player) error) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		p, err := txn.Player(addr)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := fn(gtx, cfg, p); err != nil {
			return err
		}
		return txn.SetPlayer(p)
	})
}

func (s *Service) withPlayerAndProperty(addr game.Address, propertyID uint8, fn func(gtx *game.Tx, cfg *game.Config, prop *game.Property, p *game.Player) error) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := txn.Property(propertyID)
		if errors.Is(err, state.ErrNotFound) {
			return game.ErrInvalidPropertyID
		}
		if err != nil {
			return err
		}
		p, err := txn.Player(addr)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := fn(gtx, cfg, prop, p); err != nil {
			return err
		}
		if err := txn.SetProperty(prop); err != nil {
			return err
		}
		return txn.SetPlayer(p)
	})
}
