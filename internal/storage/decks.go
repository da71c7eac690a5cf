// Package storage persists per-player deck lists in Postgres. It is
// optional: servers running without a database fall back to the default
// deck for everyone.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Skeome/Arcana-Sim/internal/catalog"
)

// ErrNoDeck is returned when a player has no saved deck.
var ErrNoDeck = errors.New("no deck saved for player")

const schema = `
CREATE TABLE IF NOT EXISTS player_decks (
	player_id TEXT NOT NULL,
	card_id   TEXT NOT NULL,
	count     INT  NOT NULL CHECK (count > 0),
	PRIMARY KEY (player_id, card_id)
)`

// DeckStore reads and writes player deck lists.
type DeckStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDeckStore connects to the database and ensures the schema exists.
// logger may be nil.
func NewDeckStore(ctx context.Context, url string, logger *zap.Logger) (*DeckStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect deck store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping deck store: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure deck schema: %w", err)
	}
	if logger != nil {
		logger.Info("deck store connected")
	}
	return &DeckStore{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *DeckStore) Close() {
	s.pool.Close()
}

// SaveDeck replaces the player's saved deck with the given list.
func (s *DeckStore) SaveDeck(ctx context.Context, playerID string, list catalog.DeckList) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM player_decks WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("clear deck for %s: %w", playerID, err)
	}
	for _, entry := range list.Cards {
		if entry.Count <= 0 {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO player_decks (player_id, card_id, count) VALUES ($1, $2, $3)
			 ON CONFLICT (player_id, card_id) DO UPDATE SET count = player_decks.count + EXCLUDED.count`,
			playerID, entry.ID, entry.Count,
		)
		if err != nil {
			return fmt.Errorf("insert deck entry %s: %w", entry.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit deck for %s: %w", playerID, err)
	}
	if s.logger != nil {
		s.logger.Info("deck saved",
			zap.String("player_id", playerID),
			zap.Int("entries", len(list.Cards)),
		)
	}
	return nil
}

// LoadDeck fetches the player's saved deck list, or ErrNoDeck when the
// player has never saved one.
func (s *DeckStore) LoadDeck(ctx context.Context, playerID string) (catalog.DeckList, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT card_id, count FROM player_decks WHERE player_id = $1 ORDER BY card_id`,
		playerID,
	)
	if err != nil {
		return catalog.DeckList{}, fmt.Errorf("load deck for %s: %w", playerID, err)
	}
	defer rows.Close()

	list := catalog.DeckList{Name: playerID}
	for rows.Next() {
		var entry catalog.DeckEntry
		if err := rows.Scan(&entry.ID, &entry.Count); err != nil {
			return catalog.DeckList{}, fmt.Errorf("scan deck entry: %w", err)
		}
		list.Cards = append(list.Cards, entry)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return catalog.DeckList{}, fmt.Errorf("read deck for %s: %w", playerID, err)
	}
	if len(list.Cards) == 0 {
		return catalog.DeckList{}, fmt.Errorf("%w: %s", ErrNoDeck, playerID)
	}
	return list, nil
}
