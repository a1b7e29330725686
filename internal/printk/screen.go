package printk

import (
	"fmt"

	"github.com/dshills/ktty/internal/kspin"
	"github.com/dshills/ktty/internal/screen"
)

// ScreenWriter is an io.Writer that appends to one virtual screen. The
// physical display is touched only if that screen is active.
type ScreenWriter struct {
	display *kspin.Guarded[screen.Manager]
	id      int
}

// NewScreenWriter creates a writer targeting screen id.
func NewScreenWriter(display *kspin.Guarded[screen.Manager], id int) *ScreenWriter {
	return &ScreenWriter{display: display, id: id}
}

// ScreenID returns the target screen.
func (w *ScreenWriter) ScreenID() int {
	return w.id
}

// Write implements io.Writer. It takes the display lock.
func (w *ScreenWriter) Write(p []byte) (int, error) {
	var ok bool
	w.display.With(func(m *screen.Manager) {
		ok = m.WriteToScreen(w.id, p)
	})
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoScreen, w.id)
	}
	return len(p), nil
}
