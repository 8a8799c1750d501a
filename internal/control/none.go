package control

import "github.com/san-kum/bounceball/internal/dynamo"

// None never hits.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(x dynamo.State, t float64) dynamo.Action {
	return dynamo.ActionNone
}
