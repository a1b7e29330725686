// Package screen implements the virtual text screens and the manager that
// multiplexes them onto the single physical VGA text buffer.
//
// # Architecture
//
//   - Screen: an 80x25 cell grid with its own write cursor. Bytes written to
//     it wrap at the right edge and scroll at the bottom.
//   - Manager: a fixed set of screen slots, the active screen id, and the
//     physical buffer. Only the active screen is ever copied to the device.
//
// # Rendering
//
// Writes do not reach the display by themselves. Callers batch their edits
// and then call Present (or FlushToPhysical followed by UpdateCursor) once.
// Present is a no-op for background screens, so editing a screen that is
// not visible never disturbs the one that is.
//
// # Thread Safety
//
// Neither type locks internally. The Manager is shared behind a
// kspin.Guarded and every access goes through it.
package screen
