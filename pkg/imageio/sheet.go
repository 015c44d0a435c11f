package imageio

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Tile is one captioned image on a contact sheet.
type Tile struct {
	Label string
	Image image.Image
}

const (
	captionHeight = 16
	sheetGap      = 4
)

var (
	sheetBackground = color.RGBA{32, 32, 32, 255}
	captionColor    = color.RGBA{230, 230, 230, 255}
)

// ContactSheet lays tiles out in a grid of cols columns. Each image is scaled
// to fit a tileSize square, keeping its aspect ratio, with its label centred
// underneath.
func ContactSheet(tiles []Tile, cols, tileSize int) *image.RGBA {
	if cols <= 0 {
		cols = 1
	}
	cols = min(cols, max(len(tiles), 1))
	rows := (len(tiles) + cols - 1) / cols

	cellW := tileSize + sheetGap
	cellH := tileSize + captionHeight + sheetGap
	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW+sheetGap, rows*cellH+sheetGap))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	for i, t := range tiles {
		x := sheetGap + (i%cols)*cellW
		y := sheetGap + (i/cols)*cellH

		if t.Image != nil {
			dst := fitRect(t.Image.Bounds(), image.Rect(x, y, x+tileSize, y+tileSize))
			draw.CatmullRom.Scale(sheet, dst, t.Image, t.Image.Bounds(), draw.Src, nil)
		}
		drawCaption(sheet, t.Label, x, y+tileSize, tileSize)
	}

	return sheet
}

// fitRect centres the largest rectangle with src's aspect ratio inside box.
func fitRect(src, box image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	bw, bh := box.Dx(), box.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}

	w, h := bw, sh*bw/sw
	if h > bh {
		w, h = sw*bh/sh, bh
	}
	x := box.Min.X + (bw-w)/2
	y := box.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func drawCaption(dst draw.Image, label string, x, y, width int) {
	if label == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
	}
	adv := d.MeasureString(label).Ceil()
	left := x + max(width-adv, 0)/2
	d.Dot = fixed.P(left, y+basicfont.Face7x13.Ascent+1)
	d.DrawString(label)
}
