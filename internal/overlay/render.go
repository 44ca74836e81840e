package overlay

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/driftline/worldindex/internal/spatial"
)

// Scheme holds the overlay colours. Zero value is unusable; use
// DefaultScheme.
type Scheme struct {
	Background color.RGBA
	GridLine   color.RGBA
	Pond       color.RGBA
	River      color.RGBA
	Ocean      color.RGBA
	RegionBox  color.RGBA
	Collision  color.RGBA
	Spawn      color.RGBA
}

// DefaultScheme returns the standard debug palette.
func DefaultScheme() Scheme {
	return Scheme{
		Background: color.RGBA{24, 24, 24, 255},
		GridLine:   color.RGBA{48, 48, 48, 255},
		Pond:       color.RGBA{64, 128, 220, 255},
		River:      color.RGBA{64, 196, 196, 255},
		Ocean:      color.RGBA{32, 64, 160, 255},
		RegionBox:  color.RGBA{255, 255, 0, 255},
		Collision:  color.RGBA{220, 64, 64, 255},
		Spawn:      color.RGBA{64, 220, 64, 255},
	}
}

// Render rasterizes the built index to a PNG: fishable cells tinted by
// water type, region bounding boxes outlined, collision rectangles, and
// the spawn point marker. pxPerTile controls output resolution.
func Render(e *spatial.Engine, path string, pxPerTile int) error {
	if pxPerTile <= 0 {
		pxPerTile = 8
	}
	width, height := e.Bounds()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("overlay: empty grid %dx%d", width, height)
	}
	scheme := DefaultScheme()
	px := float64(pxPerTile)
	// world units -> pixels
	k := px / e.CellSize()

	ctx := gg.NewContext(width*pxPerTile, height*pxPerTile)
	ctx.SetColor(scheme.Background)
	ctx.Clear()

	// Grid lines.
	ctx.SetColor(scheme.GridLine)
	ctx.SetLineWidth(1)
	for x := 0; x <= width; x++ {
		ctx.DrawLine(float64(x)*px, 0, float64(x)*px, float64(height)*px)
	}
	for y := 0; y <= height; y++ {
		ctx.DrawLine(0, float64(y)*px, float64(width)*px, float64(y)*px)
	}
	ctx.Stroke()

	// Fishable cells.
	for tc, t := range e.FishableCells() {
		switch t {
		case spatial.WaterPond:
			ctx.SetColor(scheme.Pond)
		case spatial.WaterRiver:
			ctx.SetColor(scheme.River)
		case spatial.WaterOcean:
			ctx.SetColor(scheme.Ocean)
		default:
			continue
		}
		ctx.DrawRectangle(float64(tc.X)*px, float64(tc.Y)*px, px, px)
		ctx.Fill()
	}

	// Collision rectangles: tile-sourced plus broad layer rects.
	ctx.SetColor(scheme.Collision)
	ctx.SetLineWidth(1)
	for _, r := range e.Collision().Rects() {
		ctx.DrawRectangle(r.X*k, r.Y*k, r.W*k, r.H*k)
	}
	for _, r := range e.Collision().LayerRects() {
		ctx.DrawRectangle(r.X*k, r.Y*k, r.W*k, r.H*k)
	}
	ctx.Stroke()

	// Region bounding boxes.
	ctx.SetColor(scheme.RegionBox)
	ctx.SetLineWidth(2)
	for _, reg := range e.Regions() {
		ctx.DrawRectangle(
			float64(reg.OriginX)*px,
			float64(reg.OriginY)*px,
			float64(reg.Width)*px,
			float64(reg.Height)*px,
		)
	}
	ctx.Stroke()

	// Spawn marker.
	sx, sy, _ := e.SpawnPoint()
	ctx.SetColor(scheme.Spawn)
	ctx.DrawCircle(sx*k, sy*k, px/2)
	ctx.Fill()

	if err := ctx.SavePNG(path); err != nil {
		return fmt.Errorf("overlay: save %s: %w", path, err)
	}
	return nil
}
