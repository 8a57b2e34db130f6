// Package viz renders the atom cloud in the terminal.
//
// A braille [Canvas] provides a 2x4-dots-per-cell drawing surface, a
// [Camera] projects cloud coordinates with a perspective divide, and
// [RenderCloud] composites the atoms as camera-facing quads back to
// front. [RunLive] wraps it all in an interactive bubbletea program.
package viz
