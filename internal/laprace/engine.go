package laprace

import (
	"fmt"

	"github.com/rocketscienceinc/laprace-backend/internal/apperror"
	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

const (
	DieMin = 1
	DieMax = 6

	// A 6 both lets a token leave base and grants the extra turn.
	rollToEnter   = 6
	rollExtraTurn = 6
)

const (
	OutcomeNeedsSix    = "needs-six"
	OutcomeAlreadyHome = "already-home"
	OutcomeMoved       = "moved"
	OutcomeCaptured    = "captured"
	OutcomeReachedHome = "reached-home-wins"
	OutcomeRolledSix   = "rolled-six-again"
)

// Outcome classifies one resolved roll for the view. It carries no rules of
// its own; the game record already holds the resulting state.
type Outcome struct {
	Code      string `json:"code"`
	Player    int    `json:"player"`
	Die       int    `json:"die"`
	Captured  bool   `json:"captured,omitempty"`
	ExtraTurn bool   `json:"extra_turn,omitempty"`
	Message   string `json:"message"`
}

// ResolveRoll applies one die roll to the game for the current player.
// It is the only state transition besides Reset: entering play on a 6,
// forward movement with wrap-around, capture on the landed cell, the
// exact-landing win, and turn advancement all happen here. The die value
// comes from the caller so the transition stays deterministic.
func ResolveRoll(track entity.Track, gameInstance *entity.Game, die int) (Outcome, error) {
	if die < DieMin || die > DieMax {
		return Outcome{}, fmt.Errorf("%w: %d", apperror.ErrInvalidDie, die)
	}

	mover := gameInstance.Turn
	outcome := Outcome{Player: mover, Die: die}

	gameInstance.LastRoll = die
	gameInstance.Rolls++

	switch position := gameInstance.Positions[mover]; {
	case position.IsHome():
		// A finished player still resolves rolls as a pass; the game has no
		// reject-all-rolls state.
		outcome.Code = OutcomeAlreadyHome

	case position.IsBase():
		if die != rollToEnter {
			outcome.Code = OutcomeNeedsSix
			break
		}

		outcome.ExtraTurn = true
		outcome.Captured = landOn(gameInstance, mover, track.EntryIndex(mover))
		if outcome.Captured {
			outcome.Code = OutcomeCaptured
		} else {
			outcome.Code = OutcomeRolledSix
		}

	default:
		next := track.Advance(position.Cell, die)

		// Home is exactly one full lap: landing back on the own entry cell.
		// Overshooting wraps past it and the lap continues.
		if next == track.EntryIndex(mover) {
			gameInstance.Positions[mover] = entity.Home()
			gameInstance.Status = entity.StatusFinished
			gameInstance.Winner = entity.ColorName(mover)
			outcome.Code = OutcomeReachedHome
			break
		}

		outcome.ExtraTurn = die == rollExtraTurn
		outcome.Captured = landOn(gameInstance, mover, next)
		switch {
		case outcome.Captured:
			outcome.Code = OutcomeCaptured
		case outcome.ExtraTurn:
			outcome.Code = OutcomeRolledSix
		default:
			outcome.Code = OutcomeMoved
		}
	}

	if !outcome.ExtraTurn {
		gameInstance.Turn = entity.Opponent(mover)
	}

	outcome.Message = describe(outcome)
	gameInstance.Outcome = outcome.Message

	return outcome, nil
}

// landOn places the mover on a track cell and sends the opponent's token
// back to base when it occupies that cell. Capture is unconditional; there
// are no safe cells.
func landOn(gameInstance *entity.Game, mover, cell int) bool {
	gameInstance.Positions[mover] = entity.OnTrack(cell)

	opponent := entity.Opponent(mover)
	opposing := gameInstance.Positions[opponent]
	if opposing.IsOnTrack() && opposing.Cell == cell {
		gameInstance.Positions[opponent] = entity.Base()
		return true
	}

	return false
}

func describe(outcome Outcome) string {
	mover := entity.ColorName(outcome.Player)

	var message string
	switch outcome.Code {
	case OutcomeNeedsSix:
		message = fmt.Sprintf("%s needs a 6 to start.", mover)
	case OutcomeAlreadyHome:
		message = fmt.Sprintf("%s is already home.", mover)
	case OutcomeMoved:
		message = fmt.Sprintf("%s rolled a %d.", mover, outcome.Die)
	case OutcomeCaptured:
		message = fmt.Sprintf("%s captured %s!", mover, entity.ColorName(entity.Opponent(outcome.Player)))
	case OutcomeReachedHome:
		message = fmt.Sprintf("%s reached home and wins!", mover)
	case OutcomeRolledSix:
		message = fmt.Sprintf("%s rolled a 6. Go again!", mover)
	}

	if outcome.ExtraTurn && outcome.Code != OutcomeRolledSix {
		message += " Go again!"
	}

	return message
}
