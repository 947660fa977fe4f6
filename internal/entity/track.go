package entity

// DefaultCellCount is the number of cells on the standard board.
const DefaultCellCount = 28

// Track is the shared cyclic path both tokens race along. It is pure data:
// a cell count and the per-color entry cells. All movement arithmetic wraps
// around the track.
type Track struct {
	cells   int
	entries [PlayerCount]int
}

// DefaultTrack is the process-wide board: 28 cells, Red enters at 0, Blue at 14.
var DefaultTrack = NewTrack(DefaultCellCount, 0, 14)

func NewTrack(cells, redEntry, blueEntry int) Track {
	return Track{
		cells:   cells,
		entries: [PlayerCount]int{redEntry, blueEntry},
	}
}

func (that Track) CellCount() int {
	return that.cells
}

// EntryIndex is the cell a player's token occupies the moment it leaves base.
func (that Track) EntryIndex(player int) int {
	return that.entries[player]
}

// Advance returns the cell reached from index after steps forward moves,
// wrapping past the last cell back to 0.
func (that Track) Advance(index, steps int) int {
	return (index + steps) % that.cells
}
