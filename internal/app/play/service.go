package play

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"cryptopoly/internal/events"
	"cryptopoly/internal/game"
	"cryptopoly/internal/state"
)

// Service runs player-facing operations. Every mutating call is one exclusive
// store transaction: load records, run the core handler, commit, then publish
// the emitted events.
type Service struct {
	store     *state.Store
	emitter   *events.Emitter
	joinGrant uint64
	now       func() int64
}

func NewService(st *state.Store, em *events.Emitter, joinGrant uint64, now func() int64) *Service {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	return &Service{store: st, emitter: em, joinGrant: joinGrant, now: now}
}

// run executes fn inside one transaction and publishes its events after a
// successful commit.
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

func (s *Service) loadProperty(txn *state.Txn, id uint8) (*game.Property, error) {
	prop, err := txn.Property(id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	return prop, err
}

// Resolve maps an API key to the player address it is bound to.
func (s *Service) Resolve(apiKey string) (game.Address, error) {
	var addr game.Address
	err := s.store.View(func(txn *state.Txn) error {
		a, err := txn.ResolveKey(apiKey)
		if errors.Is(err, state.ErrNotFound) {
			return ErrUnknownKey
		}
		if err != nil {
			return err
		}
		addr = a
		return nil
	})
	return addr, err
}

func newAPIKey() (string, error) {
	var buf [24]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return "pk_" + hex.EncodeToString(buf[:]), nil
}

// Join creates a player, binds a fresh API key, and funds it from the
// authority treasury.
func (s *Service) Join() (*JoinResponse, error) {
	apiKey, err := newAPIKey()
	if err != nil {
		return nil, err
	}
	var resp *JoinResponse
	err = s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		addr := game.Address(state.NewID())
		p := game.NewPlayer(addr, gtx.Now)
		if err := txn.SetPlayer(p); err != nil {
			return err
		}
		if err := txn.BindKey(apiKey, addr); err != nil {
			return err
		}
		if s.joinGrant > 0 {
			if err := txn.Transfer(cfg.Authority, addr, s.joinGrant); err != nil {
				return err
			}
		}
		bal, err := txn.Balance(addr)
		if err != nil {
			return err
		}
		gtx.Emit(game.Event{
			Type:     game.EventPlayerJoined,
			Player:   addr,
			Property: game.NoPropertyEvent,
			Amount:   s.joinGrant,
		})
		resp = &JoinResponse{Address: addr, APIKey: apiKey, Balance: bal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Buy purchases slots of one property for the keyed player.
func (s *Service) Buy(signer game.Address, propertyID uint8, slots uint16) (*BuyResponse, error) {
	var resp *BuyResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := s.loadProperty(txn, propertyID)
		if err != nil {
			return err
		}
		p, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := game.Buy(gtx, cfg, prop, p, signer, slots); err != nil {
			return err
		}
		if err := txn.SetProperty(prop); err != nil {
			return err
		}
		if err := txn.SetPlayer(p); err != nil {
			return err
		}
		bal, err := txn.Balance(signer)
		if err != nil {
			return err
		}
		resp = &BuyResponse{
			PropertyID: propertyID,
			Slots:      slots,
			Cost:       lastEventAmount(gtx),
			Balance:    bal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Shield activates a paid shield on one property position.
func (s *Service) Shield(signer game.Address, propertyID uint8, hours uint16) (*ShieldResponse, error) {
	var resp *ShieldResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := s.loadProperty(txn, propertyID)
		if err != nil {
			return err
		}
		p, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := game.ActivateShield(gtx, cfg, prop, p, signer, hours); err != nil {
			return err
		}
		if err := txn.SetPlayer(p); err != nil {
			return err
		}
		resp = &ShieldResponse{
			PropertyID: propertyID,
			Hours:      hours,
			Cost:       lastEventAmount(gtx),
			Expiry:     p.ShieldExpiry[propertyID],
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Steal attempts to take one slot from a pseudo-random holder of the
// property. If userRandomness is empty the server draws it; otherwise it must
// be exactly 32 bytes.
func (s *Service) Steal(signer game.Address, propertyID uint8, userRandomness []byte) (*StealResponse, error) {
	var seed [32]byte
	switch len(userRandomness) {
	case 0:
		if _, err := rand.Read(seed[:]); err != nil {
			return nil, err
		}
	case len(seed):
		copy(seed[:], userRandomness)
	default:
		return nil, ErrInvalidRequest
	}

	var resp *StealResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := s.loadProperty(txn, propertyID)
		if err != nil {
			return err
		}
		attacker, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}

		all, err := txn.Players()
		if err != nil {
			return err
		}
		candidates := make([]*game.Player, 0, len(all))
		for _, cand := range all {
			if cand.Owner == signer || cand.Slots[propertyID] == 0 {
				continue
			}
			candidates = append(candidates, cand)
		}

		slotHashData, err := txn.SlotHashData()
		if err != nil {
			return err
		}
		result, err := game.Steal(gtx, cfg, prop, attacker, signer, seed, slotHashData, candidates)
		if err != nil {
			return err
		}
		if err := txn.SetPlayer(attacker); err != nil {
			return err
		}
		for _, cand := range candidates {
			if cand.Owner == result.Target {
				if err := txn.SetPlayer(cand); err != nil {
					return err
				}
			}
		}
		resp = &StealResponse{
			PropertyID: propertyID,
			Target:     result.Target,
			Success:    result.Success,
			Roll:       result.Roll,
			Cost:       lastEventAmount(gtx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Claim pays out all accrued rewards with bonuses.
func (s *Service) Claim(signer game.Address) (*ClaimResponse, error) {
	var resp *ClaimResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		p, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		claimed, err := game.Claim(gtx, cfg, p, signer)
		if err != nil {
			return err
		}
		if err := txn.SetPlayer(p); err != nil {
			return err
		}
		bal, err := txn.Balance(signer)
		if err != nil {
			return err
		}
		resp = &ClaimResponse{Claimed: claimed, Balance: bal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Sell liquidates slots back to the pool at the holding-duration ramp.
func (s *Service) Sell(signer game.Address, propertyID uint8, slots uint16) (*SellResponse, error) {
	var resp *SellResponse
	err := s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		prop, err := s.loadProperty(txn, propertyID)
		if err != nil {
			return err
		}
		p, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		payout, err := game.Sell(gtx, cfg, prop, p, signer, slots)
		if err != nil {
			return err
		}
		if err := txn.SetProperty(prop); err != nil {
			return err
		}
		if err := txn.SetPlayer(p); err != nil {
			return err
		}
		bal, err := txn.Balance(signer)
		if err != nil {
			return err
		}
		resp = &SellResponse{PropertyID: propertyID, Slots: slots, Payout: payout, Balance: bal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Close deletes the player record and its key binding. The player must have
// liquidated every slot first.
func (s *Service) Close(signer game.Address, apiKey string) error {
	return s.run(func(txn *state.Txn, gtx *game.Tx) error {
		cfg, err := s.loadConfig(txn)
		if err != nil {
			return err
		}
		p, err := txn.Player(signer)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		if err := game.CanClose(cfg, p, signer); err != nil {
			return err
		}
		if p.TotalSlots != 0 {
			return ErrPlayerHasSlots
		}
		txn.DeletePlayer(signer)
		txn.UnbindKey(apiKey)
		gtx.Emit(game.Event{
			Type:     game.EventPlayerClosed,
			Player:   signer,
			Property: game.NoPropertyEvent,
		})
		return nil
	})
}

// State returns a read-only snapshot of one player, with rewards accrued up
// to the current clock without persisting the accrual.
func (s *Service) State(addr game.Address) (*PlayerState, error) {
	var resp *PlayerState
	err := s.store.View(func(txn *state.Txn) error {
		p, err := txn.Player(addr)
		if errors.Is(err, state.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		bal, err := txn.Balance(addr)
		if err != nil {
			return err
		}
		preview := *p
		if err := game.Accrue(&preview, s.now()); err != nil {
			return err
		}

		props, err := txn.Properties()
		if err != nil {
			return err
		}
		setOf := make(map[uint8]uint8, len(props))
		for _, prop := range props {
			setOf[prop.ID] = prop.SetID
		}
		var holdings []Holding
		for pid := uint8(0); pid < game.MaxProperties; pid++ {
			if p.Slots[pid] == 0 {
				continue
			}
			holdings = append(holdings, Holding{
				PropertyID:       pid,
				SetID:            setOf[pid],
				Slots:            p.Slots[pid],
				Shielded:         p.Shielded[pid],
				ShieldExpiry:     p.ShieldExpiry[pid],
				ProtectionExpiry: p.ProtectionExpiry[pid],
			})
		}
		resp = &PlayerState{
			Address:              p.Owner,
			Balance:              bal,
			TotalSlots:           p.TotalSlots,
			TotalBaseDailyIncome: p.TotalBaseDailyIncome,
			CompleteSets:         p.CompleteSets,
			PendingRewards:       preview.PendingRewards,
			TotalRewardsClaimed:  p.TotalRewardsClaimed,
			StealsAttempted:      p.StealsAttempted,
			StealsSuccessful:     p.StealsSuccessful,
			Holdings:             holdings,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Properties lists the full board.
func (s *Service) Properties() (*PropertiesResponse, error) {
	var resp *PropertiesResponse
	err := s.store.View(func(txn *state.Txn) error {
		props, err := txn.Properties()
		if err != nil {
			return err
		}
		items := make([]PropertyItem, 0, len(props))
		for _, prop := range props {
			items = append(items, PropertyItem{
				ID:             prop.ID,
				SetID:          prop.SetID,
				MaxSlots:       prop.MaxSlots,
				MaxPerPlayer:   prop.MaxPerPlayer,
				AvailableSlots: prop.AvailableSlots,
				Price:          prop.Price,
				YieldBps:       prop.YieldBps,
				ShieldCostBps:  prop.ShieldCostBps,
				CooldownSecs:   prop.CooldownSeconds,
			})
		}
		resp = &PropertiesResponse{Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func lastEventAmount(gtx *game.Tx) uint64 {
	if len(gtx.Events) == 0 {
		return 0
	}
	return gtx.Events[len(gtx.Events)-1].Amount
}
