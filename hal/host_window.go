//go:build !tinygo

package hal

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"tact/internal/buildinfo"
)

// RunWindow starts a desktop window that presents the framebuffer and maps
// the mouse to the touch panel. It blocks until the window closes.
func RunWindow(newSystem func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newSystem(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Tact (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.touch.capture()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	pct, glowR, glowG, glowB := g.h.illum.snapshot()

	// Simulate the backlight by scaling the blit, and the glow LEDs by
	// tinting the window border.
	screen.Fill(scaleRGB(glowR, glowG, glowB, pct))

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = uint8(int(r) * pct / 100)
		dst[j+1] = uint8(int(gg) * pct / 100)
		dst[j+2] = uint8(int(b) * pct / 100)
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

func scaleRGB(r, g, b uint8, pct int) color.RGBA {
	return color.RGBA{
		R: uint8(int(r) * pct / 100),
		G: uint8(int(g) * pct / 100),
		B: uint8(int(b) * pct / 100),
		A: 0xFF,
	}
}
