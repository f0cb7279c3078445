package fs

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"noter/internal/notes/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const snapshotPadding = 24.0

// maxSnapshotSide bounds the PNG; wider boards are scaled down to fit
const maxSnapshotSide = 8192.0

// WriteSnapshot renders the board as a PNG, painting notes in z-order so the
// picture stacks them the way the board does
func WriteSnapshot(path string, notes []models.Note) error {
	if len(notes) == 0 {
		return errors.New("nothing to export")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range notes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}

	w := maxX - minX + 2*snapshotPadding
	h := maxY - minY + 2*snapshotPadding
	scale := math.Min(1, math.Min(maxSnapshotSide/w, maxSnapshotSide/h))

	dc := gg.NewContext(snapshotPixels(w*scale), snapshotPixels(h*scale))
	dc.SetHexColor("#c8a878")
	dc.Clear()
	dc.Scale(scale, scale)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, n := range notes {
		x := n.X - minX + snapshotPadding
		y := n.Y - minY + snapshotPadding
		drawNotePNG(dc, n, x, y)
	}

	return dc.SavePNG(path)
}

func snapshotPixels(v float64) int {
	return int(math.Min(maxSnapshotSide, math.Ceil(v)))
}

func drawNotePNG(dc *gg.Context, n models.Note, x, y float64) {
	dc.SetHexColor(n.Color)
	dc.DrawRectangle(x, y, n.Width, n.Height)
	dc.Fill()

	dc.SetLineWidth(1.0)
	dc.SetColor(color.RGBA{0, 0, 0, 96})
	dc.DrawRectangle(x, y, n.Width, n.Height)
	dc.Stroke()

	dc.SetColor(color.Black)
	textY := y + 18
	if n.Subject != "" {
		dc.DrawString(n.Subject, x+8, textY)
		textY += 20
	}
	body := n.PlainText()
	if body != "" && textY < y+n.Height {
		dc.DrawStringWrapped(body, x+8, textY, 0, 0, n.Width-16, 1.3, gg.AlignLeft)
	}
}
