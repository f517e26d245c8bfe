package rating

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownAgent = errors.New("unknown agent")
	ErrUnknownMatch = errors.New("unknown match")
)

// MatchRecord is one finished game in the persistent match history.
type MatchRecord struct {
	MatchID    string   `json:"match_id"`
	Players    []string `json:"players"`
	Placements []string `json:"placements"`
	Winner     string   `json:"winner"`
	TurnCount  int      `json:"turn_count"`
	Date       string   `json:"date"`
	ReplayFile string   `json:"replay_file,omitempty"`
}

// Store persists rating profiles and match records as JSON files
// under a data directory. Every operation reads the files fresh and
// writes them back under the lock, so external edits between games
// are picked up.
type Store struct {
	mu           sync.Mutex
	rankingsPath string
	matchesPath  string
}

// NewStore creates a Store rooted at dataDir, creating it if needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		rankingsPath: filepath.Join(dataDir, "rankings.json"),
		matchesPath:  filepath.Join(dataDir, "matches.json"),
	}, nil
}

// RecordMatch applies a finished game's placements to the stored
// profiles and appends a match record. The first placement is the
// winner.
func (s *Store) RecordMatch(placements []string, turnCount int, replayFile string) (*MatchRecord, error) {
	if len(placements) < 2 {
		return nil, fmt.Errorf("record match: need at least 2 placements, got %d", len(placements))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return nil, err
	}
	ApplyPlacements(profiles, placements, time.Now())
	if err := s.saveProfiles(profiles); err != nil {
		return nil, err
	}

	matches, err := s.loadMatches()
	if err != nil {
		return nil, err
	}
	players := append([]string(nil), placements...)
	sort.Strings(players)
	rec := MatchRecord{
		MatchID:    uuid.NewString()[:8],
		Players:    players,
		Placements: append([]string(nil), placements...),
		Winner:     placements[0],
		TurnCount:  turnCount,
		Date:       time.Now().UTC().Format(time.RFC3339),
		ReplayFile: replayFile,
	}
	matches = append(matches, rec)
	if err := s.saveMatches(matches); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Leaderboard returns profiles sorted by rating, best first. A limit
// of 0 or less returns everyone.
func (s *Store) Leaderboard(limit int) ([]*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return nil, err
	}
	out := make([]*Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].AgentID < out[j].AgentID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ProfileFor returns one agent's profile.
func (s *Store) ProfileFor(agentID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return nil, err
	}
	p, ok := profiles[agentID]
	if !ok {
		return nil, ErrUnknownAgent
	}
	return p, nil
}

// Matches returns match records newest first.
func (s *Store) Matches(limit, offset int) ([]MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := s.loadMatches()
	if err != nil {
		return nil, err
	}
	// Stored oldest first; reverse for the listing.
	out := make([]MatchRecord, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		out = append(out, matches[i])
	}
	if offset > 0 {
		if offset >= len(out) {
			return []MatchRecord{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MatchFor returns one match record by id.
func (s *Store) MatchFor(matchID string) (*MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := s.loadMatches()
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].MatchID == matchID {
			return &matches[i], nil
		}
	}
	return nil, ErrUnknownMatch
}

func (s *Store) loadProfiles() (map[string]*Profile, error) {
	data, err := os.ReadFile(s.rankingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rankings: %w", err)
	}
	var profiles map[string]*Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode rankings: %w", err)
	}
	if profiles == nil {
		profiles = map[string]*Profile{}
	}
	return profiles, nil
}

func (s *Store) saveProfiles(profiles map[string]*Profile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal rankings: %w", err)
	}
	tmp := s.rankingsPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write rankings: %w", err)
	}
	return os.Rename(tmp, s.rankingsPath)
}

func (s *Store) loadMatches() ([]MatchRecord, error) {
	data, err := os.ReadFile(s.matchesPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read matches: %w", err)
	}
	var matches []MatchRecord
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return matches, nil
}

func (s *Store) saveMatches(matches []MatchRecord) error {
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}
	tmp := s.matchesPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}
	return os.Rename(tmp, s.matchesPath)
}
