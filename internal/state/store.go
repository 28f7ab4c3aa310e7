package state

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cryptopoly/internal/game"
)

// Store is the durable game substrate: configuration, properties, player
// records, token balances, and API-key bindings, all JSON records in a
// key-value DB. A store-level mutex gives every transaction exclusive access
// to the accounts it touches, so handlers never observe partial writes.
type Store struct {
	db DB
	mu sync.Mutex
}

// chainMeta is the clock-and-entropy record advanced on every commit. The
// rolling hash plays the role of a recent block hash: not predictable far in
// advance, but not bettable-grade randomness either.
type chainMeta struct {
	Slot       uint64 `json:"slot"`
	RecentHash string `json:"recent_hash"`
}

// NewStore wraps db, creating the chain meta record on first open.
func NewStore(db DB) (*Store, error) {
	s := &Store{db: db}
	if _, err := db.Get([]byte(keyMeta)); errors.Is(err, ErrNotFound) {
		seed := sha256.Sum256([]byte("genesis"))
		meta := chainMeta{Slot: 1, RecentHash: hex.EncodeToString(seed[:])}
		data, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		if err := db.Set([]byte(keyMeta), data); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Begin opens an exclusive transaction. Every Begin must be paired with
// exactly one Commit or Rollback.
func (s *Store) Begin() (*Txn, error) {
	s.mu.Lock()
	txn := &Txn{
		s:       s,
		ID:      NewID(),
		dirty:   make(map[string][]byte),
		deleted: make(map[string]bool),
	}
	data, err := s.db.Get([]byte(keyMeta))
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("load chain meta: %w", err)
	}
	if err := json.Unmarshal(data, &txn.meta); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("decode chain meta: %w", err)
	}
	return txn, nil
}

// View runs fn inside a transaction that is always rolled back.
func (s *Store) View(fn func(*Txn) error) error {
	txn, err := s.Begin()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	return fn(txn)
}

// Txn is a single exclusive unit of work: reads see committed state overlaid
// with this transaction's own writes, and Commit applies the whole buffer
// atomically while advancing the slot clock.
type Txn struct {
	s       *Store
	ID      string
	meta    chainMeta
	dirty   map[string][]byte
	deleted map[string]bool
	done    bool
}

func (t *Txn) get(key string) ([]byte, error) {
	if t.deleted[key] {
		return nil, ErrNotFound
	}
	if v, ok := t.dirty[key]; ok {
		return v, nil
	}
	return t.s.db.Get([]byte(key))
}

func (t *Txn) set(key string, val []byte) {
	delete(t.deleted, key)
	t.dirty[key] = val
}

func (t *Txn) del(key string) {
	delete(t.dirty, key)
	t.deleted[key] = true
}

func (t *Txn) getJSON(key string, out any) error {
	data, err := t.get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (t *Txn) setJSON(key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	t.set(key, data)
	return nil
}

// ---- chain clock ----

// Slot returns the current slot number.
func (t *Txn) Slot() uint64 {
	return t.meta.Slot
}

// SlotHashData returns the recent-slot-hash blob: eight little-endian bytes
// of slot number followed by the 32-byte rolling hash.
func (t *Txn) SlotHashData() ([]byte, error) {
	hash, err := hex.DecodeString(t.meta.RecentHash)
	if err != nil || len(hash) != sha256.Size {
		return nil, fmt.Errorf("corrupt recent hash %q", t.meta.RecentHash)
	}
	blob := make([]byte, 8+sha256.Size)
	binary.LittleEndian.PutUint64(blob[:8], t.meta.Slot)
	copy(blob[8:], hash)
	return blob, nil
}

// ---- records ----

func (t *Txn) Config() (*game.Config, error) {
	var cfg game.Config
	if err := t.getJSON(keyConfig, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (t *Txn) SetConfig(cfg *game.Config) error {
	return t.setJSON(keyConfig, cfg)
}

func (t *Txn) Property(id uint8) (*game.Property, error) {
	var prop game.Property
	if err := t.getJSON(propertyKey(id), &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (t *Txn) SetProperty(prop *game.Property) error {
	return t.setJSON(propertyKey(prop.ID), prop)
}

// Properties loads every created property, in id order.
func (t *Txn) Properties() ([]*game.Property, error) {
	props := make([]*game.Property, 0, game.MaxProperties)
	for id := uint8(0); id < game.MaxProperties; id++ {
		prop, err := t.Property(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	return props, nil
}

func (t *Txn) Player(addr game.Address) (*game.Player, error) {
	var p game.Player
	if err := t.getJSON(playerKey(addr), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *Txn) SetPlayer(p *game.Player) error {
	return t.setJSON(playerKey(p.Owner), p)
}

func (t *Txn) DeletePlayer(addr game.Address) {
	t.del(playerKey(addr))
}

// Players loads every player record. Used for steal candidate selection and
// public listings; the population is small by design.
func (t *Txn) Players() ([]*game.Player, error) {
	var players []*game.Player
	it := t.s.db.NewIterator([]byte(prefixPlayer))
	defer it.Release()
	for it.Next() {
		key := string(it.Key())
		if t.deleted[key] {
			continue
		}
		data := it.Value()
		if buf, ok := t.dirty[key]; ok {
			data = buf
		}
		var p game.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	// Writes for players the base iterator has never seen.
	for key, data := range t.dirty {
		if len(key) <= len(prefixPlayer) || key[:len(prefixPlayer)] != prefixPlayer {
			continue
		}
		seen := false
		for _, p := range players {
			if playerKey(p.Owner) == key {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		var p game.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

// ---- token balances ----

type balanceRecord struct {
	Amount uint64 `json:"amount"`
}

// Balance implements game.Payer. A missing record reads as zero.
func (t *Txn) Balance(of game.Address) (uint64, error) {
	var rec balanceRecord
	err := t.getJSON(balanceKey(of), &rec)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.Amount, nil
}

// Transfer implements game.Payer: checked debit then credit, inside this
// transaction's buffer.
func (t *Txn) Transfer(from, to game.Address, amount uint64) error {
	fromBal, err := t.Balance(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return game.ErrInsufficientFunds
	}
	toBal, err := t.Balance(to)
	if err != nil {
		return err
	}
	if toBal+amount < toBal {
		return game.ErrOverflow
	}
	if err := t.setJSON(balanceKey(from), balanceRecord{Amount: fromBal - amount}); err != nil {
		return err
	}
	return t.setJSON(balanceKey(to), balanceRecord{Amount: toBal + amount})
}

// Mint credits freshly created tokens. Only genesis and the operator faucet
// call this; gameplay handlers move existing balances exclusively.
func (t *Txn) Mint(to game.Address, amount uint64) error {
	bal, err := t.Balance(to)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return game.ErrOverflow
	}
	return t.setJSON(balanceKey(to), balanceRecord{Amount: bal + amount})
}

// ---- API-key auth ----

type authRecord struct {
	Address game.Address `json:"address"`
}

// BindKey stores the binding sha256(apiKey) -> addr.
func (t *Txn) BindKey(apiKey string, addr game.Address) error {
	return t.setJSON(authKey(apiKey), authRecord{Address: addr})
}

// ResolveKey returns the player address an API key is bound to.
func (t *Txn) ResolveKey(apiKey string) (game.Address, error) {
	var rec authRecord
	if err := t.getJSON(authKey(apiKey), &rec); err != nil {
		return "", err
	}
	return rec.Address, nil
}

func (t *Txn) UnbindKey(apiKey string) {
	t.del(authKey(apiKey))
}

// ---- lifecycle ----

// Commit advances the slot clock, folds this transaction's id into the
// rolling hash, and writes the whole buffer atomically.
func (t *Txn) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	defer t.s.mu.Unlock()

	prev, err := hex.DecodeString(t.meta.RecentHash)
	if err != nil {
		return fmt.Errorf("corrupt recent hash %q", t.meta.RecentHash)
	}
	next := sha256.Sum256(append(prev, t.ID...))
	t.meta.Slot++
	t.meta.RecentHash = hex.EncodeToString(next[:])
	metaData, err := json.Marshal(t.meta)
	if err != nil {
		return err
	}

	batch := t.s.db.NewBatch()
	for k, v := range t.dirty {
		batch.Set([]byte(k), v)
	}
	for k := range t.deleted {
		batch.Delete([]byte(k))
	}
	batch.Set([]byte(keyMeta), metaData)
	return batch.Write()
}

// Rollback discards the buffer. Safe to call after Commit.
func (t *Txn) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.dirty = nil
	t.deleted = nil
	t.s.mu.Unlock()
}
