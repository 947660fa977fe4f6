package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player  *entity.Player `json:"player,omitempty"`
	Game    *entity.Game   `json:"game,omitempty"`
	Outcome string         `json:"outcome,omitempty"`
	CanRoll *bool          `json:"can_roll,omitempty"`
	Error   string         `json:"error,omitempty"`
}
