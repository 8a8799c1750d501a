// Package physics implements the vertical bouncing ball.
//
// A step is an ordered pipeline of three stages, each exported so it can be
// exercised on its own:
//
//   - [Ball.Hit]: paddle action, depending on height and motion phase
//   - [Ball.Integrate]: constant-acceleration flight over the step
//   - [Ball.Bounce]: analytic in-step ground contact with random restitution
//
// [Ball.Advance] chains them and returns a [StepResult] tagged with the
// branches that ran. The package holds no state between calls; the caller owns
// the [BallState] and the random source.
//
//	ball := physics.NewBall()
//	s := ball.Reset(rng)
//	res, err := ball.Advance(s, dynamo.ActionHit, 0.3, rng)
package physics
