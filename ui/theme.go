package ui

import (
	"math"

	"tact/hal"
)

// Theme encapsulates a color scheme and the presentation of well-known UI
// elements. Pages and controls draw through the theme's helpers where
// consistency with the rest of the UI matters, and use the display directly
// where full flexibility is required.
type Theme struct {
	Foreground          hal.Pen
	Background          hal.Pen
	SecondaryBackground hal.Pen
	Error               hal.Pen

	// BaseTextScale is the glyph scale all relative text scales multiply.
	BaseTextScale int

	// BaseLineHeight is the pixel height of one line at the base scale.
	// Larger than the glyphs simulates increased line spacing.
	BaseLineHeight int

	Padding       int
	ControlHeight int
	SystrayHeight int

	// SystrayTextScale is the relative scale of systray text.
	SystrayTextScale float64
}

// NewDefaultTheme returns a black-on-white theme sized for the display.
// Metrics double on displays wider than 240 pixels.
func NewDefaultTheme(d hal.Display) *Theme {
	t := &Theme{
		Foreground:          d.CreatePen(0, 0, 0),
		Background:          d.CreatePen(255, 255, 255),
		SecondaryBackground: d.CreatePen(200, 200, 200),
		Error:               d.CreatePen(200, 0, 0),
		BaseTextScale:       1,
		BaseLineHeight:      10,
		Padding:             5,
		SystrayHeight:       30,
		SystrayTextScale:    1,
	}
	t.ControlHeight = 3 * t.BaseLineHeight

	if d.Bounds().W > 240 {
		t.Padding *= 2
		t.BaseTextScale *= 2
		t.BaseLineHeight *= 2
		t.ControlHeight *= 2
		t.SystrayHeight *= 2
	}
	return t
}

// TextScale resolves a relative scale against the base scale. Never less
// than one.
func (t *Theme) TextScale(rel float64) int {
	s := int(math.Round(float64(t.BaseTextScale) * rel))
	if s < 1 {
		return 1
	}
	return s
}

// LineSpacing is the preferred line height for text at the given relative
// scale, including spacing.
func (t *Theme) LineSpacing(rel float64) int {
	ratio := float64(t.TextScale(rel)) / float64(t.BaseTextScale)
	return int(math.Round(float64(t.BaseLineHeight) * ratio))
}

// MeasureText approximates the bounding box for single-line text. Height is
// approximated by the line spacing.
func (t *Theme) MeasureText(d hal.Display, s string, rel float64) (w, h int) {
	return d.MeasureText(s, t.TextScale(rel)), t.LineSpacing(rel)
}

// ClearRegion fills the region with the background pen and leaves the
// foreground pen selected.
func (t *Theme) ClearRegion(d hal.Display, r hal.Region) {
	d.SetPen(t.Background)
	d.Rectangle(r)
	d.SetPen(t.Foreground)
}

// Text draws s with the current pen at a scale relative to the theme's base.
func (t *Theme) Text(d hal.Display, s string, x, y int, rel float64) {
	d.Text(s, x, y, t.TextScale(rel))
}

// CenteredText draws single-line text approximately centered in the region.
func (t *Theme) CenteredText(d hal.Display, r hal.Region, s string, rel float64) {
	w, h := t.MeasureText(d, s, rel)
	x := r.X + r.W/2 - w/2
	y := r.Y + r.H/2 - h/2
	t.Text(d, s, x, y, rel)
}

// DrawStrings clears the region and draws the strings in order, wrapping
// each to the region width and stopping at the bottom edge.
func (t *Theme) DrawStrings(d hal.Display, lines []string, r hal.Region, rel float64) {
	t.ClearRegion(d, r)

	wrapWidth := r.W - 2*t.Padding
	if wrapWidth <= 0 {
		return
	}

	y := r.Y + t.Padding
	for _, line := range lines {
		for _, chunk := range t.wrap(d, line, wrapWidth, rel) {
			if y > r.Y+r.H {
				return
			}
			t.Text(d, chunk, r.X+t.Padding, y, rel)
			y += t.LineSpacing(rel)
		}
	}
}

// wrap splits s into chunks no wider than width. Character wrap, not word
// wrap.
func (t *Theme) wrap(d hal.Display, s string, width int, rel float64) []string {
	if d.MeasureText(s, t.TextScale(rel)) <= width {
		return []string{s}
	}
	var out []string
	runes := []rune(s)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && d.MeasureText(string(runes[start:end+1]), t.TextScale(rel)) <= width {
			end++
		}
		out = append(out, string(runes[start:end]))
		start = end
	}
	return out
}

// DrawButtonFrame draws the background for an on-screen button.
func (t *Theme) DrawButtonFrame(d hal.Display, r hal.Region, pressed bool) {
	d.SetPen(t.Foreground)
	d.Rectangle(r)
	if pressed {
		d.SetPen(t.Background)
		d.Rectangle(hal.Region{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2})
	}
}

// DrawButtonTitle draws a button's centered title over its frame.
func (t *Theme) DrawButtonTitle(d hal.Display, r hal.Region, pressed bool, title string, rel float64) {
	if pressed {
		d.SetPen(t.Foreground)
	} else {
		d.SetPen(t.Background)
	}
	t.CenteredText(d, r, title, rel)
}

// DrawSystray draws the systray band underneath its controls.
func (t *Theme) DrawSystray(d hal.Display, r hal.Region) {
	d.SetPen(t.SecondaryBackground)
	d.Rectangle(r)
	d.SetPen(t.Foreground)
	d.Line(r.X, r.Y, r.X+r.W, r.Y)
	d.Line(r.X, r.Y+r.H-1, r.X+r.W, r.Y+r.H-1)
}

// DrawSystrayPageButtonFrame draws the frame for a systray page selector
// segment.
func (t *Theme) DrawSystrayPageButtonFrame(d hal.Display, r hal.Region, pressed bool) {
	t.DrawButtonFrame(d, r, pressed)
}

// DrawSystrayPageButtonTitle draws the title for a systray page selector
// segment.
func (t *Theme) DrawSystrayPageButtonTitle(d hal.Display, r hal.Region, pressed bool, title string, rel float64) {
	t.DrawButtonTitle(d, r, pressed, title, rel)
}

// DrawAppSwitcherButton draws the systray accessory that opens the app
// switcher: a framed box with a grid glyph.
func (t *Theme) DrawAppSwitcherButton(d hal.Display, r hal.Region, pressed bool) {
	t.DrawButtonFrame(d, r, pressed)
	if pressed {
		d.SetPen(t.Foreground)
	} else {
		d.SetPen(t.Background)
	}
	cell := r.W / 4
	if cell < 2 {
		cell = 2
	}
	for _, dy := range []int{1, 2} {
		for _, dx := range []int{1, 2} {
			d.Rectangle(hal.Region{
				X: r.X + dx*cell - cell/2,
				Y: r.Y + dy*cell - cell/2,
				W: cell / 2,
				H: cell / 2,
			})
		}
	}
}
