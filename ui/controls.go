package ui

import (
	"fmt"

	"tact/hal"
)

// Control is an interactive element owned by a page or systray accessory.
//
// Controls carry their own state rather than sharing globals, so many pages
// can hold controls while only the visible page processes touches. Event
// callbacks (OnDown, OnUp, ...) may modify the control's state.
type Control interface {
	ProcessTouch(t hal.TouchState)
	Draw(d hal.Display, th *Theme)
}

// button carries the shared is-down state and events for button variants.
type button struct {
	Region     hal.Region
	Title      string
	TitleScale float64

	OnDown   func()
	OnUp     func()
	OnCancel func()

	isDown bool
}

// IsDown reports whether the button is currently pressed.
func (b *button) IsDown() bool { return b.isDown }

// SetDown programmatically sets the button state. With emit, the matching
// OnDown/OnUp callback fires if the state changed.
func (b *button) SetDown(down, emit bool) {
	if down == b.isDown {
		return
	}
	b.isDown = down
	if !emit {
		return
	}
	if down {
		b.emit(b.OnDown)
	} else {
		b.emit(b.OnUp)
	}
}

func (b *button) emit(fn func()) {
	if fn != nil {
		fn()
	}
}

func (b *button) draw(d hal.Display, th *Theme) {
	th.DrawButtonFrame(d, b.Region, b.isDown)
	if b.Title != "" {
		th.DrawButtonTitle(d, b.Region, b.isDown, b.Title, b.TitleScale)
	}
}

// MomentaryButton stays down only while a touch is active inside its region.
// A touch ending inside fires OnUp; a touch leaving the region fires
// OnCancel instead, the common way to abandon a press.
type MomentaryButton struct {
	button
}

func NewMomentaryButton(region hal.Region, title string) *MomentaryButton {
	return &MomentaryButton{button{Region: region, Title: title, TitleScale: 1}}
}

func (b *MomentaryButton) ProcessTouch(t hal.TouchState) {
	inside := t.Active && b.Region.Contains(t.X, t.Y)

	wasDown := b.isDown
	b.SetDown(inside, false)

	switch {
	case inside && !wasDown:
		b.emit(b.OnDown)
	case !inside && !t.Active && wasDown:
		b.emit(b.OnUp)
	case !inside && t.Active && wasDown:
		b.emit(b.OnCancel)
	}
}

func (b *MomentaryButton) Draw(d hal.Display, th *Theme) {
	b.draw(d, th)
}

// LatchingButton toggles between down and up on successive presses. The
// toggle happens when the touch ends inside the region; a touch wandering
// out fires OnCancel without toggling.
type LatchingButton struct {
	button

	// DrawFunc overrides the default presentation when set.
	DrawFunc func(d hal.Display, th *Theme, r hal.Region, down bool, title string, rel float64)

	lastInside bool
	hasLast    bool
}

func NewLatchingButton(region hal.Region, title string) *LatchingButton {
	return &LatchingButton{button: button{Region: region, Title: title, TitleScale: 1}}
}

// NewSystrayPageButton returns a latching button drawn with the theme's
// systray page selector presentation.
func NewSystrayPageButton(region hal.Region, title string) *LatchingButton {
	b := NewLatchingButton(region, title)
	b.DrawFunc = func(d hal.Display, th *Theme, r hal.Region, down bool, title string, rel float64) {
		th.DrawSystrayPageButtonFrame(d, r, down)
		if title != "" {
			th.DrawSystrayPageButtonTitle(d, r, down, title, th.SystrayTextScale)
		}
	}
	return b
}

func (b *LatchingButton) ProcessTouch(t hal.TouchState) {
	inside := t.Active && b.Region.Contains(t.X, t.Y)

	// De-bounce so the state doesn't toggle on every poll of a held touch.
	if b.hasLast && inside == b.lastInside {
		return
	}
	wasInside := b.hasLast && b.lastInside
	b.lastInside = inside
	b.hasLast = true

	if !wasInside {
		return
	}
	if !t.Active {
		b.SetDown(!b.isDown, true)
	} else {
		b.emit(b.OnCancel)
	}
}

func (b *LatchingButton) Draw(d hal.Display, th *Theme) {
	if b.DrawFunc != nil {
		b.DrawFunc(d, th, b.Region, b.isDown, b.Title, b.TitleScale)
		return
	}
	b.draw(d, th)
}

// RadioButton is a row of latching buttons representing one-of-N options,
// like the old radio preset buttons. The current option can only be turned
// off by selecting another.
type RadioButton struct {
	Region hal.Region

	// OnChange fires when the current index changes.
	OnChange func(index int)

	options []string
	buttons []*LatchingButton
	current int
}

// NewRadioButton builds the control, splitting the region evenly between the
// options. NewButton defaults to NewLatchingButton when nil.
func NewRadioButton(region hal.Region, options []string, current int, newButton func(hal.Region, string) *LatchingButton) (*RadioButton, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("radio button needs at least one option")
	}
	if current < 0 || current >= len(options) {
		return nil, fmt.Errorf("radio button index %d out of range 0-%d", current, len(options)-1)
	}
	if newButton == nil {
		newButton = NewLatchingButton
	}

	rb := &RadioButton{Region: region, options: options, current: -1}
	optionWidth := region.W / len(options)
	for i, option := range options {
		i := i
		b := newButton(hal.Region{
			X: region.X + i*optionWidth,
			Y: region.Y,
			W: optionWidth,
			H: region.H,
		}, option)
		b.OnDown = func() { rb.SetCurrentIndex(i) }
		b.OnUp = func() {
			if i == rb.current {
				b.SetDown(true, false)
			}
		}
		rb.buttons = append(rb.buttons, b)
	}
	rb.setCurrentIndex(current, false)
	return rb, nil
}

// Options returns the option titles.
func (rb *RadioButton) Options() []string { return rb.options }

// CurrentIndex returns the active option index.
func (rb *RadioButton) CurrentIndex() int { return rb.current }

// SetCurrentIndex programmatically activates an option. Out-of-range indices
// and the already-current index are no-ops.
func (rb *RadioButton) SetCurrentIndex(index int) {
	rb.setCurrentIndex(index, true)
}

func (rb *RadioButton) setCurrentIndex(index int, emit bool) {
	if index == rb.current || index < 0 || index >= len(rb.options) {
		return
	}
	rb.current = index
	for i, b := range rb.buttons {
		b.SetDown(i == index, false)
	}
	if emit && rb.OnChange != nil {
		rb.OnChange(index)
	}
}

func (rb *RadioButton) ProcessTouch(t hal.TouchState) {
	for _, b := range rb.buttons {
		b.ProcessTouch(t)
	}
}

func (rb *RadioButton) Draw(d hal.Display, th *Theme) {
	for _, b := range rb.buttons {
		b.Draw(d, th)
	}
}
