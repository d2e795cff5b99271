package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/jetflap/internal/games/flappy"
)

var (
	skyColor     = color.RGBA{R: 0x4e, G: 0xc0, B: 0xca, A: 0xff}
	starColor    = color.RGBA{R: 0x8a, G: 0xd8, B: 0xe0, A: 0xff}
	wallColor    = color.RGBA{R: 0x5e, G: 0xa0, B: 0x2e, A: 0xff}
	wallEdge     = color.RGBA{R: 0x3c, G: 0x6e, B: 0x1a, A: 0xff}
	wallCapColor = color.RGBA{R: 0x8c, G: 0xd6, B: 0x4a, A: 0xff}
	bodyColor    = color.RGBA{R: 0xf5, G: 0xc5, B: 0x18, A: 0xff}
	visorColor   = color.RGBA{R: 0x22, G: 0x22, B: 0x33, A: 0xff}
	flameColor   = color.RGBA{R: 0xff, G: 0x7a, B: 0x1a, A: 0xff}
	groundColor  = color.RGBA{R: 0xb0, G: 0x8a, B: 0x55, A: 0xff}
	labelColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	hurtColor    = color.RGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
)

// Preload implements flappy.Preloader. Art is drawn procedurally with
// vector shapes; Path is only used in error messages.
func (w *Window) Preload(a flappy.Asset) error {
	switch a.Kind {
	case flappy.AssetImage:
		img, err := drawImage(a.Name)
		if err != nil {
			return err
		}
		w.images[a.Name] = img
	case flappy.AssetSpritesheet:
		if a.FrameW <= 0 || a.FrameH <= 0 {
			return fmt.Errorf("desktop: spritesheet %s has no frame size", a.Name)
		}
		w.sheets[a.Name] = drawPlayerSheet(a.FrameW, a.FrameH, w.cfg.Player.FlyFrames+1)
	case flappy.AssetAudio:
		if err := w.sounds.load(flappy.Cue(a.Name)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("desktop: unknown asset kind %d for %s", a.Kind, a.Path)
	}
	return nil
}

func drawImage(name string) (*ebiten.Image, error) {
	switch name {
	case "wall":
		return drawWall(52, 480), nil
	case "background":
		return drawBackgroundTile(96, 96), nil
	default:
		return nil, fmt.Errorf("desktop: no image named %s", name)
	}
}

// drawWall renders a wall body with darker edges. The gap-facing lip is
// drawn separately so it can sit on either end.
func drawWall(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(wallColor)
	vector.DrawFilledRect(img, 0, 0, 4, float32(h), wallEdge, false)
	vector.DrawFilledRect(img, float32(w-4), 0, 4, float32(h), wallEdge, false)
	for y := 0; y < h; y += 24 {
		vector.StrokeLine(img, 4, float32(y), float32(w-4), float32(y), 1, wallEdge, false)
	}
	return img
}

func drawBackgroundTile(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(skyColor)
	vector.DrawFilledCircle(img, 18, 22, 2, starColor, true)
	vector.DrawFilledCircle(img, 70, 54, 3, starColor, true)
	vector.DrawFilledCircle(img, 40, 84, 2, starColor, true)
	return img
}

// drawPlayerSheet renders frames side by side: flap frames first, then the
// glide frame.
func drawPlayerSheet(fw, fh, frames int) *ebiten.Image {
	img := ebiten.NewImage(fw*frames, fh)
	cx, cy := float32(fw)/2, float32(fh)/2
	r := float32(min(fw, fh)) * 0.3

	for i := 0; i < frames; i++ {
		ox := float32(i * fw)
		glide := i == frames-1

		// jet pack and exhaust
		vector.DrawFilledRect(img, ox+cx-r-6, cy-4, 8, 12, visorColor, false)
		if !glide {
			flame := float32(6 + 4*i)
			vector.DrawFilledRect(img, ox+cx-r-6-flame, cy, flame, 5, flameColor, false)
		}

		vector.DrawFilledCircle(img, ox+cx, cy, r, bodyColor, true)
		vector.DrawFilledRect(img, ox+cx, cy-r/2, r, r/2, visorColor, false)

		// arms swing through the flap frames and stay level while gliding
		armY := cy + r/2
		if !glide {
			armY = cy - r/2 + float32(i)*r/2
		}
		vector.StrokeLine(img, ox+cx-r/2, cy, ox+cx-r*1.3, armY, 3, bodyColor, true)
	}
	return img
}
