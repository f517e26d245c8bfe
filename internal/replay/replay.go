// Package replay persists self-contained game replays: every turn
// carries a full state snapshot, so a replay can be scrubbed without
// re-running the engine.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/freeeve/stratagem/api/pkg/stratagem"
)

// CombatSummary is the compact per-battle record stored in turn logs.
type CombatSummary struct {
	Province string         `json:"p"`
	Winner   string         `json:"w"`
	Sides    map[string]int `json:"s"`
	Losses   map[string]int `json:"l"`
}

// TurnEntry is one turn of the log, snapshot included.
type TurnEntry struct {
	Turn         int                       `json:"turn"`
	Events       []string                  `json:"events"`
	Combats      []CombatSummary           `json:"combats,omitempty"`
	Income       map[string]stratagem.Cost `json:"income,omitempty"`
	Eliminations []string                  `json:"eliminations,omitempty"`
	Winner       string                    `json:"winner,omitempty"`
	State        *stratagem.FullState      `json:"state"`
}

// Document is the full persisted replay for one game.
type Document struct {
	GameID    string                    `json:"game_id"`
	Players   []string                  `json:"players"`
	Civs      map[string]stratagem.Civ  `json:"civs"`
	Winner    string                    `json:"winner,omitempty"`
	Turns     []TurnEntry               `json:"turns"`
	Diplomacy []stratagem.Message       `json:"diplomacy"`
	Treaties  []stratagem.TreatyDetail  `json:"treaties"`
}

// Store reads and writes replay documents as replays/<game_id>.json.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the document, replacing any prior version. Saving after
// every turn keeps replays available even if the server dies mid-game.
func (s *Store) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal replay %s: %w", doc.GameID, err)
	}
	path := s.path(doc.GameID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write replay %s: %w", doc.GameID, err)
	}
	return os.Rename(tmp, path)
}

// Load reads a saved replay. os.ErrNotExist surfaces for unknown ids.
func (s *Store) Load(gameID string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(gameID))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", gameID, err)
	}
	return &doc, nil
}

func (s *Store) path(gameID string) string {
	return filepath.Join(s.dir, gameID+".json")
}
