// Package viz draws bouncing ball episodes in the terminal.
//
//   - [PlotTrajectory]: asciigraph charts of a recorded episode
//   - [LiveRenderer]: observer that redraws the ball while an episode runs
//   - [PlayModel]: Bubble Tea program for playing an episode by hand
//   - [Canvas]: Braille-based pixel canvas shared by the renderers
//
// # Key Bindings
//
//	Space - Swing the paddle on the next step
//	P     - Pause/Resume
//	R     - Start the next episode
//	+/-   - Change playback speed
//	T     - Cycle color themes
//	Q     - Quit
package viz
