package entity

const (
	PlayerRed  = 0
	PlayerBlue = 1

	PlayerCount = 2
)

var colorNames = [PlayerCount]string{"Red", "Blue"}

// ColorName returns the display name for a seat.
func ColorName(player int) string {
	return colorNames[player]
}

// Opponent returns the other seat.
func Opponent(player int) int {
	return PlayerCount - 1 - player
}

// Player is the session that owns a pass-and-play game. Both seats are
// driven from the same session.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
