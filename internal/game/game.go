package game

import "time"

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart.
// This is useful during development.
var Version = "v0.1.0"

// Tick is the length of one countdown step (preview and hint countdowns).
var Tick = time.Second

// MismatchDelay is how long a mismatched pair stays face-up before it flashes,
// and how long the flash lasts before both cards are turned back down.
var MismatchDelay = time.Second

// PreviewSeconds is the number of ticks all cards are shown at the start of a session.
var PreviewSeconds = 5

// HintSeconds is the number of ticks all cards are shown when a hint is used.
var HintSeconds = 5

// InitialHints is the number of hints available per session. They are never replenished.
var InitialHints = 2

// RevealDelay is the fade-out time between winning and showing the proposal.
var RevealDelay = 2 * time.Second
