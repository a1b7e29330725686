// Package key provides the key event type produced by the keyboard decoder.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a key the console reacts to (editing keys, arrows,
//     screen switching, or a character)
//   - Modifier: the sticky modifier state (Shift, Ctrl, Alt) at decode time
//   - Event: a single decoded key press
//
// Key releases never produce events; they are only visible through the
// modifier state they update.
package key
