package control

import "github.com/san-kum/bounceball/internal/dynamo"

// Manual hands out an action queued by the user, once.
// Used by the live view where the space bar swings the paddle.
type Manual struct {
	pending dynamo.Action
}

func NewManual() *Manual {
	return &Manual{}
}

// SetAction queues a for the next Compute call.
func (m *Manual) SetAction(a dynamo.Action) {
	if !a.Valid() {
		return
	}
	m.pending = a
}

func (m *Manual) Compute(x dynamo.State, t float64) dynamo.Action {
	a := m.pending
	m.pending = dynamo.ActionNone
	return a
}
