//go:build !tinygo

package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// hostTouch maps the mouse to the touch panel: the left button is a finger.
// capture runs on the ebiten update goroutine; Poll/State run inside the
// run loop.
type hostTouch struct {
	mu      sync.Mutex
	pending TouchState
	state   TouchState
}

func (t *hostTouch) capture() {
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	t.mu.Lock()
	t.pending = TouchState{Active: down, X: x, Y: y}
	t.mu.Unlock()
}

func (t *hostTouch) Poll() {
	t.mu.Lock()
	t.state = t.pending
	t.mu.Unlock()
}

func (t *hostTouch) State() TouchState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
