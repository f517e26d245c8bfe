// Package rating maintains persistent multiplayer Elo profiles and the
// match history. Each finished game is scored as a round-robin of
// virtual head-to-head matches decided by final placement.
package rating

import (
	"math"
	"time"
)

const (
	KFactor        = 32
	StartingRating = 1000
	RatingFloor    = 100
)

// RatingPoint is one entry of a profile's rating history.
type RatingPoint struct {
	Rating int   `json:"rating"`
	Time   int64 `json:"time"`
}

// Profile is one agent's persistent rating record.
type Profile struct {
	AgentID       string        `json:"agent_id"`
	Rating        int           `json:"rating"`
	PeakRating    int           `json:"peak_rating"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	Draws         int           `json:"draws"`
	GamesPlayed   int           `json:"games_played"`
	RatingHistory []RatingPoint `json:"rating_history"`
}

// NewProfile creates a fresh profile at the starting rating.
func NewProfile(agentID string) *Profile {
	return &Profile{AgentID: agentID, Rating: StartingRating, PeakRating: StartingRating}
}

// WinRate is wins over games played.
func (p *Profile) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.GamesPlayed)
}

func expectedScore(ra, rb int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(rb-ra)/400.0))
}

// ApplyPlacements updates every placed profile in order: each player
// scores a virtual win over everyone placed below and a loss to
// everyone above, adjusted by K/(n-1) and floored at RatingFloor. The
// first placement is the winner and takes the win; everyone else
// takes a loss.
func ApplyPlacements(profiles map[string]*Profile, placements []string, now time.Time) map[string]int {
	n := len(placements)
	if n < 2 {
		return nil
	}
	for _, pid := range placements {
		if profiles[pid] == nil {
			profiles[pid] = NewProfile(pid)
		}
	}

	ratings := make(map[string]int, n)
	for _, pid := range placements {
		ratings[pid] = profiles[pid].Rating
	}

	newRatings := make(map[string]int, n)
	for i, pid := range placements {
		ra := ratings[pid]
		expected := 0.0
		actual := 0.0
		for j, opp := range placements {
			if i == j {
				continue
			}
			expected += expectedScore(ra, ratings[opp])
			if i < j {
				actual++
			}
		}
		adjusted := float64(ra) + KFactor*(actual-expected)/float64(n-1)
		newRatings[pid] = max(RatingFloor, int(math.Round(adjusted)))
	}

	for _, pid := range placements {
		p := profiles[pid]
		p.Rating = newRatings[pid]
		p.PeakRating = max(p.PeakRating, p.Rating)
		p.GamesPlayed++
		p.RatingHistory = append(p.RatingHistory, RatingPoint{Rating: p.Rating, Time: now.Unix()})
	}
	profiles[placements[0]].Wins++
	for _, pid := range placements[1:] {
		profiles[pid].Losses++
	}

	return newRatings
}
