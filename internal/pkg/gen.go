package pkg

import (
	"crypto/rand"
	"math/big"
)

const gameIDUpperBound = 99999999

// GenerateGameID - generates a short numeric identifier for a game.
func GenerateGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(gameIDUpperBound))
	if err != nil {
		return ""
	}
	return n.String()
}
