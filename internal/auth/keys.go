// Package auth issues and parses per-game bearer keys. Keys are
// signed JWTs, but authorization is by exact match against the keys a
// game instance handed out at creation, so a forged-yet-valid token
// for another game never grants access.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid or unknown key")

// SpectatorID is the player slot encoded in spectator keys.
const SpectatorID = "spectator"

// GameClaims is the payload of a game key.
type GameClaims struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

// KeyIssuer mints game keys.
type KeyIssuer struct {
	secret []byte
}

// NewKeyIssuer creates a KeyIssuer with the given secret.
func NewKeyIssuer(secret string) *KeyIssuer {
	return &KeyIssuer{secret: []byte(secret)}
}

// Issue creates a bearer key bound to one player slot of one game.
func (k *KeyIssuer) Issue(gameID, playerID string) (string, error) {
	claims := &GameClaims{
		GameID:   gameID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Subject:  playerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(k.secret)
}

// IssueGameKeys mints one key per player plus a spectator key.
func (k *KeyIssuer) IssueGameKeys(gameID string, playerIDs []string) (map[string]string, string, error) {
	keys := make(map[string]string, len(playerIDs))
	for _, pid := range playerIDs {
		key, err := k.Issue(gameID, pid)
		if err != nil {
			return nil, "", err
		}
		keys[pid] = key
	}
	spectator, err := k.Issue(gameID, SpectatorID)
	if err != nil {
		return nil, "", err
	}
	return keys, spectator, nil
}

// Parse validates a key's signature and returns its claims.
func (k *KeyIssuer) Parse(tokenStr string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &GameClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidKey
		}
		return k.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidKey
	}
	claims, ok := token.Claims.(*GameClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidKey
	}
	return claims, nil
}
