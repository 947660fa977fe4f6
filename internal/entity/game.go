package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is the mutable record of one pass-and-play session: where each seat's
// token is, whose turn it is, and what the last roll showed. It is mutated
// only by the rules engine and by Reset.
type Game struct {
	ID        string                `json:"id"`
	Positions [PlayerCount]Position `json:"positions"`
	Turn      int                   `json:"turn"`
	LastRoll  int                   `json:"last_roll,omitempty"`
	Outcome   string                `json:"outcome,omitempty"`
	Winner    string                `json:"winner,omitempty"`
	Status    string                `json:"status"`
	Rolls     int                   `json:"rolls,omitempty"`
	Players   []*Player             `json:"players,omitempty"`
}

func (that *Game) Create(id string) *Game {
	that.ID = id
	that.Positions = [PlayerCount]Position{Base(), Base()}
	that.Turn = PlayerRed
	that.LastRoll = 0
	that.Outcome = ""
	that.Winner = ""
	that.Status = StatusOngoing
	that.Rolls = 0

	return that
}

// Reset discards the game in progress and returns to the initial state.
// Attached players keep their session.
func (that *Game) Reset() {
	that.Positions = [PlayerCount]Position{Base(), Base()}
	that.Turn = PlayerRed
	that.LastRoll = 0
	that.Outcome = ""
	that.Winner = ""
	that.Status = StatusOngoing
	that.Rolls = 0
}

// CanRoll reports whether a seat still has a move to make. It is a display
// hint: a home player's roll is resolved as a pass, never rejected.
func (that *Game) CanRoll(player int) bool {
	return !that.Positions[player].IsHome()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
