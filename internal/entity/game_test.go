package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: create a new game
	gameInstance := &Game{}
	actualGame := gameInstance.Create("123")

	// Then: the game state should correspond to the expected initial state
	expectedGame := &Game{
		ID:        "123",
		Positions: [PlayerCount]Position{Base(), Base()},
		Turn:      PlayerRed,
		Status:    StatusOngoing,
	}

	require.Equal(t, expectedGame, actualGame)
}
