// Package geometry holds the pure placement math for derivatives:
// thumbnail crop rectangles and the tiled watermark layout. No I/O.
package geometry

import "image"

// Watermark layout constants. The brick pattern (odd rows shifted half
// a column) keeps the repeated text from lining up vertically, and the
// 0.5 subtracted from the grid size makes the shifted rows still reach
// the image edges.
const (
	WatermarkText     = "FIT-CREATE"
	WatermarkGridSize = 5
	WatermarkFontSize = 24
	WatermarkRotation = 45.0
	WatermarkOpacity  = 0.7
)

// Tile is the center point of one watermark stamp.
type Tile struct {
	X int
	Y int
}

// ThumbnailRect returns the square crop for a width×height source:
// side min(target, width, height), horizontally centered, anchored to
// the top edge. Subjects sit near the top in event photography, hence
// the top anchor. Sources smaller than target are never upscaled.
func ThumbnailRect(width, height, target int) image.Rectangle {
	side := target
	if width < side {
		side = width
	}
	if height < side {
		side = height
	}

	x0 := (width - side) / 2

	return image.Rect(x0, 0, x0+side, side)
}

// WatermarkLayout returns the tile centers of the 5×5 watermark grid
// for a width×height image, odd rows offset by half a column width.
func WatermarkLayout(width, height int) []Tile {
	colWidth := ceilDiv2(width)
	rowHeight := ceilDiv2(height)

	tiles := make([]Tile, 0, WatermarkGridSize*WatermarkGridSize)

	for row := 0; row < WatermarkGridSize; row++ {
		xOffset := 0
		if row%2 == 1 {
			xOffset = colWidth / 2
		}

		for col := 0; col < WatermarkGridSize; col++ {
			tiles = append(tiles, Tile{
				X: col*colWidth + xOffset + colWidth/2,
				Y: row*rowHeight + rowHeight/2,
			})
		}
	}

	return tiles
}

// ceilDiv2 computes ceil(dim / (gridSize - 0.5)) without floats:
// ceil(2*dim / (2*gridSize - 1)).
func ceilDiv2(dim int) int {
	den := 2*WatermarkGridSize - 1
	return (2*dim + den - 1) / den
}
