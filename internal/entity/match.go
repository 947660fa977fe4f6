package entity

import "time"

// Match is one finished game as recorded in history.
type Match struct {
	GameID     string    `json:"game_id"`
	Winner     string    `json:"winner"`
	Rolls      int       `json:"rolls"`
	FinishedAt time.Time `json:"finished_at"`
}
