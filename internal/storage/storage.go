package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const (
	keyStats      = "stats"
	gameKeyPrefix = "game/"
)

var (
	ErrGameNotFound    = errors.New("archived game not found")
	ErrAlreadyArchived = errors.New("game already archived")
)

// GameRecord is the archived form of a finished game.
type GameRecord struct {
	ID         string           `json:"id"`
	Winner     model.PieceColor `json:"winner"`
	Moves      []string         `json:"moves"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Stats aggregates every archived game.
type Stats struct {
	Games     int `json:"games"`
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Plies     int `json:"plies"`
}

// AveragePlies returns the mean game length in plies.
func (s *Stats) AveragePlies() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Plies) / float64(s.Games)
}

// Storage wraps BadgerDB for the game archive.
type Storage struct {
	db *badger.DB
}

// Open opens the archive in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// SaveGame stores rec and folds it into the stats in one transaction.
func (s *Storage) SaveGame(rec GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(rec.ID))
		if err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyArchived, rec.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.Games++
		stats.Plies += len(rec.Moves)
		switch rec.Winner {
		case model.White:
			stats.WhiteWins++
		case model.Black:
			stats.BlackWins++
		}
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}

		if err := txn.Set(gameKey(rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// LoadGame returns the archived game with the given ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGames returns up to limit archived games in key order. A limit of zero
// or less returns all of them.
func (s *Storage) ListGames(limit int) ([]GameRecord, error) {
	records := make([]GameRecord, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, err
}

// LoadStats returns the aggregate stats, zeroed if nothing was archived yet.
func (s *Storage) LoadStats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := &Stats{}
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}
