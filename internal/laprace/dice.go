package laprace

import "math/rand"

// Roller draws a uniform die value. The engine never rolls for itself, so
// tests feed ResolveRoll literal values instead of controlling a generator.
type Roller interface {
	Roll() int
}

type randRoller struct{}

func NewRoller() Roller {
	return &randRoller{}
}

func (that *randRoller) Roll() int {
	return rand.Intn(DieMax-DieMin+1) + DieMin //nolint: gosec // it's ok
}
