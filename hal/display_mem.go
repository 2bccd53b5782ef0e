package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type memFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newMemFramebuffer(width, height int) *memFramebuffer {
	stride := width * 2
	return &memFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *memFramebuffer) set(x, y int, p uint16) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	off := y*f.stride + x*2
	f.buf[off] = byte(p)
	f.buf[off+1] = byte(p >> 8)
}

func (f *memFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// presenter pushes a framebuffer region to a physical panel. A nil presenter
// means the buffer is read directly (host window).
type presenter interface {
	present(f *memFramebuffer, r Region) error
}

// memDisplay implements Display over an RGB565 framebuffer. Text goes
// through tinyfont with a scaling pixel adapter.
type memDisplay struct {
	fb   *memFramebuffer
	font *tinyfont.Font
	out  presenter

	pen     Pen
	clip    Region
	hasClip bool
}

// fontAscent positions tinyfont's baseline so that Text coordinates address
// the glyph's top-left corner, matching the rest of the drawing API.
const fontAscent = 7

func newMemDisplay(fb *memFramebuffer, out presenter) *memDisplay {
	return &memDisplay{fb: fb, font: &proggy.TinySZ8pt7b, out: out}
}

func (d *memDisplay) Bounds() Size {
	return Size{W: d.fb.width, H: d.fb.height}
}

func (d *memDisplay) CreatePen(r, g, b uint8) Pen {
	return Pen(rgb565(r, g, b))
}

func (d *memDisplay) SetPen(p Pen) {
	d.pen = p
}

func (d *memDisplay) visible(x, y int) bool {
	if x < 0 || x >= d.fb.width || y < 0 || y >= d.fb.height {
		return false
	}
	return !d.hasClip || d.clip.Contains(x, y)
}

func (d *memDisplay) Clear() {
	if d.hasClip {
		d.Rectangle(d.clip)
		return
	}
	d.Rectangle(Region{W: d.fb.width, H: d.fb.height})
}

func (d *memDisplay) Rectangle(r Region) {
	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	p := uint16(d.pen)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if d.visible(x, y) {
				d.fb.set(x, y, p)
			}
		}
	}
}

func (d *memDisplay) Line(x0, y0, x1, y1 int) {
	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	p := uint16(d.pen)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if d.visible(x0, y0) {
			d.fb.set(x0, y0, p)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (d *memDisplay) Text(s string, x, y, scale int) {
	if scale < 1 {
		scale = 1
	}
	r, g, b := rgb888From565(uint16(d.pen))
	c := color.RGBA{R: r, G: g, B: b, A: 0xFF}

	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	sink := &scaledSink{d: d, scale: scale, originX: x, originY: y}
	tinyfont.WriteLine(sink, d.font, 0, fontAscent, s, c)
}

func (d *memDisplay) MeasureText(s string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	_, w := tinyfont.LineWidth(d.font, s)
	return int(w) * scale
}

func (d *memDisplay) SetClip(r Region) {
	d.clip = r
	d.hasClip = true
}

func (d *memDisplay) RemoveClip() {
	d.hasClip = false
}

func (d *memDisplay) Update() error {
	if d.out == nil {
		return nil
	}
	return d.out.present(d.fb, Region{W: d.fb.width, H: d.fb.height})
}

func (d *memDisplay) UpdateRegion(r Region) error {
	if d.out == nil {
		return nil
	}
	return d.out.present(d.fb, r)
}

// scaledSink is a drivers.Displayer that maps font-space pixels onto the
// framebuffer, magnified by an integer scale. The framebuffer mutex is held
// by the caller.
type scaledSink struct {
	d       *memDisplay
	scale   int
	originX int
	originY int
}

func (s *scaledSink) Size() (x, y int16) {
	return int16(s.d.fb.width), int16(s.d.fb.height)
}

func (s *scaledSink) SetPixel(x, y int16, c color.RGBA) {
	p := rgb565(c.R, c.G, c.B)
	bx := s.originX + int(x)*s.scale
	by := s.originY + int(y)*s.scale
	for dy := 0; dy < s.scale; dy++ {
		for dx := 0; dx < s.scale; dx++ {
			if s.d.visible(bx+dx, by+dy) {
				s.d.fb.set(bx+dx, by+dy, p)
			}
		}
	}
}

func (s *scaledSink) Display() error { return nil }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rgb565 packs 8-bit channels into the framebuffer's native pixel layout.
func rgb565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}

// rgb888From565 expands a packed pixel back to 8-bit channels, replicating
// the high bits so full intensity maps back to 255.
func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(p>>8) & 0xF8
	g = uint8(p>>3) & 0xFC
	b = uint8(p<<3) & 0xF8
	return r | r>>5, g | g>>6, b | b>>5
}
