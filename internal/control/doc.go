// Package control provides policies that choose paddle actions.
//
// Policies implement the [dynamo.Controller] interface and receive the
// recorded state {position, velocity} and the elapsed simulated time:
//
//   - [None]: never hits
//   - [Random]: hits with a fixed probability from its own seeded stream
//   - [Periodic]: hits every N calls
//   - [Energy]: PD regulator on mechanical energy, thresholded to a hit
//   - [Manual]: replays a single queued action (interactive play)
//
// # Usage
//
//	ctrl := control.NewEnergy(1.0, 0.1, 80, -9.81)
//	a := ctrl.Compute(x, t)
//
// Controllers implementing [dynamo.Configurable] support live tuning.
package control
