package entity

const (
	PositionBase  = "base"
	PositionTrack = "track"
	PositionHome  = "home"
)

// Position is a token location: still in base, on a track cell, or home.
// The Cell field is meaningful only when Kind is PositionTrack, so an
// out-of-range index with no cell to belong to is unrepresentable.
type Position struct {
	Kind string `json:"kind"`
	Cell int    `json:"cell,omitempty"`
}

func Base() Position {
	return Position{Kind: PositionBase}
}

func OnTrack(cell int) Position {
	return Position{Kind: PositionTrack, Cell: cell}
}

func Home() Position {
	return Position{Kind: PositionHome}
}

func (that Position) IsBase() bool {
	return that.Kind == PositionBase
}

func (that Position) IsOnTrack() bool {
	return that.Kind == PositionTrack
}

func (that Position) IsHome() bool {
	return that.Kind == PositionHome
}
