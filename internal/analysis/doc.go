// Package analysis inspects bouncing ball episodes after the fact.
//
//   - [Summarize]: mean, spread and median of episode length and return
//   - [AuditContactTimes]: where the contact-time root lands over a state grid
//   - [AuditEpisodes]: the same audit over contacts seen in real episodes
//   - [PhasePortrait]: position/velocity trace for ASCII plotting
//   - [Spectrum], [DominantPeriod]: rhythm of the height signal
//
// # Contact times
//
// A bounce is resolved at the larger root of p + v*t + g*t²/2 = 0. Starting
// above ground the root lies in [0, dt]. After a weak rebound the ball can
// finish a step below ground, and the next contact then lies before the step
// began. The audit counts those as Early:
//
//	audit := analysis.AuditContactTimes(physics.NewBall(), 0.3, 200)
//	fmt.Println(audit)
package analysis
