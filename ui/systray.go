package ui

import "tact/hal"

// AccessoryPosition places an accessory within the systray band.
type AccessoryPosition int

const (
	AccessoryLeading AccessoryPosition = iota
	AccessoryTrailing
)

// Accessory is a pluggable systray element. Size is queried with the most
// the accessory could occupy; Setup receives the slot it was granted.
type Accessory interface {
	Size(max hal.Size) hal.Size
	Setup(r hal.Region, wm *WindowManager)
	Draw(d hal.Display, r hal.Region, th *Theme)
}

// AccessoryTicker is implemented by accessories that update state each
// systray tick, before drawing.
type AccessoryTicker interface {
	Tick(wm *WindowManager)
}

// AccessoryToucher is implemented by accessories with interactive controls.
type AccessoryToucher interface {
	ProcessTouch(t hal.TouchState)
}

type traySlot struct {
	acc    Accessory
	region hal.Region
}

// systray renders the band: leading accessories, the page selector radio
// group, trailing accessories. It runs as its own 1Hz kernel task; marking
// it dirty enqueues the task so it redraws this iteration instead.
type systray struct {
	wm     *WindowManager
	region hal.Region
	slots  []traySlot
	radio  *RadioButton
	dirty  bool
}

func newSystray(wm *WindowManager) *systray {
	return &systray{wm: wm}
}

// setup lays out accessories and rebuilds the page selector. Called whenever
// the band region or the page list changes.
func (s *systray) setup(region hal.Region) {
	s.region = region
	s.slots = nil
	s.radio = nil

	max := hal.Size{W: region.W, H: region.H}
	x := region.X
	for _, a := range s.wm.leading {
		sz := a.Size(max)
		r := hal.Region{X: x, Y: region.Y, W: sz.W, H: sz.H}
		a.Setup(r, s.wm)
		s.slots = append(s.slots, traySlot{acc: a, region: r})
		x += sz.W
	}
	xr := region.X + region.W
	for _, a := range s.wm.trailing {
		sz := a.Size(max)
		xr -= sz.W
		r := hal.Region{X: xr, Y: region.Y, W: sz.W, H: sz.H}
		a.Setup(r, s.wm)
		s.slots = append(s.slots, traySlot{acc: a, region: r})
	}

	center := hal.Region{X: x, Y: region.Y, W: xr - x, H: region.H}
	pages := s.wm.Pages()
	if len(pages) == 0 || center.Empty() {
		return
	}
	titles := make([]string, len(pages))
	for i, p := range pages {
		titles[i] = p.Base().Title
	}
	cur := s.wm.current
	if cur < 0 {
		cur = 0
	}
	radio, err := NewRadioButton(center, titles, cur, NewSystrayPageButton)
	if err != nil {
		return
	}
	radio.OnChange = func(i int) {
		_ = s.wm.NavigateToIndex(i)
		s.dirty = true
	}
	s.radio = radio
}

// syncCurrent reflects a programmatic page change in the selector.
func (s *systray) syncCurrent(index int) {
	if s.radio == nil || index < 0 || index == s.radio.CurrentIndex() {
		return
	}
	s.radio.setCurrentIndex(index, false)
	s.dirty = true
}

func (s *systray) tick() error {
	touch := s.wm.k.TouchState()
	if s.radio != nil {
		s.radio.ProcessTouch(touch)
	}
	for _, slot := range s.slots {
		if tc, ok := slot.acc.(AccessoryToucher); ok {
			tc.ProcessTouch(touch)
		}
	}
	for _, slot := range s.slots {
		if tk, ok := slot.acc.(AccessoryTicker); ok {
			tk.Tick(s.wm)
		}
	}

	d := s.wm.k.Display()
	d.SetClip(s.region)
	defer d.RemoveClip()

	s.wm.theme.DrawSystray(d, s.region)
	if s.radio != nil {
		s.radio.Draw(d, s.wm.theme)
	}
	for _, slot := range s.slots {
		slot.acc.Draw(d, slot.region, s.wm.theme)
	}
	s.wm.k.RequestFlush(s.region)
	return nil
}
