// Package dynamo provides the shared primitives of the bouncing ball lab.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [State]: recorded state vector ({position, velocity} for the ball)
//   - [Action]: binary paddle command
//   - [Source]: injectable random stream
//   - [Controller]: policy producing an action from a state
//   - [Metric] and [Observer]: per-step consumers of recorded samples
//   - [Config]: step size, step limit and gravity of an environment
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Nothing in this package holds mutable state. Sources are not safe for
// concurrent use; give every episode its own.
package dynamo
