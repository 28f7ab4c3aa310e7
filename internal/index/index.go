// Package index persists emitted game events into postgres for off-chain
// queries. The index is optional: when no DSN is configured the server runs
// without it and the events endpoint reports it as unavailable.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cryptopoly/internal/events"
	"cryptopoly/internal/game"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS game_events (
	id          TEXT PRIMARY KEY,
	tx_id       TEXT NOT NULL,
	slot        BIGINT NOT NULL,
	event_type  TEXT NOT NULL,
	player      TEXT NOT NULL DEFAULT '',
	property_id SMALLINT NOT NULL,
	amount      BIGINT NOT NULL,
	payload     JSONB,
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS game_events_player_idx ON game_events (player, occurred_at DESC);
CREATE INDEX IF NOT EXISTS game_events_time_idx ON game_events (occurred_at DESC);
`

// Store wraps the index database.
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := &Store{Pool: pool}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) bootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := s.Pool.Exec(ctx, schema)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// Row is one indexed event.
type Row struct {
	ID         string         `json:"id"`
	TxID       string         `json:"tx_id"`
	Slot       uint64         `json:"slot"`
	Type       string         `json:"type"`
	Player     string         `json:"player"`
	PropertyID int16          `json:"property_id"`
	Amount     int64          `json:"amount"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// InsertEvent persists one emitted event.
func (s *Store) InsertEvent(ctx context.Context, ev events.Event) error {
	var payload []byte
	if ev.Game.Data != nil {
		b, err := json.Marshal(ev.Game.Data)
		if err != nil {
			return err
		}
		payload = b
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO game_events (id, tx_id, slot, event_type, player, property_id, amount, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.TxID, int64(ev.Slot), string(ev.Game.Type), string(ev.Game.Player),
		int16(ev.Game.Property), int64(ev.Game.Amount), payload, time.Unix(ev.Time, 0).UTC(),
	)
	return err
}

// ListRecent returns the newest events, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Row, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, tx_id, slot, event_type, player, property_id, amount, payload, occurred_at
		FROM game_events ORDER BY occurred_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByPlayer returns the newest events touching one player.
func (s *Store) ListByPlayer(ctx context.Context, player game.Address, limit int) ([]Row, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, tx_id, slot, event_type, player, property_id, amount, payload, occurred_at
		FROM game_events WHERE player = $1 ORDER BY occurred_at DESC, id DESC LIMIT $2`,
		string(player), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRows(rows pgxRows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var r Row
		var slot, amount int64
		var payload []byte
		if err := rows.Scan(&r.ID, &r.TxID, &slot, &r.Type, &r.Player, &r.PropertyID, &amount, &payload, &r.OccurredAt); err != nil {
			return nil, err
		}
		r.Slot = uint64(slot)
		r.Amount = amount
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &r.Payload); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscriber returns an emitter handler that writes every event to the index.
// Failures are surfaced through onErr so indexing never blocks gameplay.
func (s *Store) Subscriber(onErr func(error)) events.Handler {
	return func(ev events.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.InsertEvent(ctx, ev); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
