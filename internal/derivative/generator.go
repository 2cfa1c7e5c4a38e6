// Package derivative turns uploaded originals into the browsing
// artifacts: square thumbnails, tiled watermark copies and album
// covers. Outputs are written atomically, so a failed encode never
// leaves a half-written file behind.
package derivative

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	// Cameras and browsers hand us webp too; imaging falls back to the
	// registered stdlib decoders for formats it does not handle itself.
	_ "golang.org/x/image/webp"

	"picstore/internal/geometry"
	"picstore/internal/lib/logger/sl"
)

// DefaultThumbnailSize matches the public listing grid.
const DefaultThumbnailSize = 400

// watermarkMaxWidth bounds the working resolution of the watermark
// artifact. It is a preview, never sold, so compute cost wins over
// fidelity here.
const watermarkMaxWidth = 800

const watermarkJPEGQuality = 85

type Generator struct {
	log   *slog.Logger
	stamp *image.NRGBA
}

// New builds a Generator with the watermark text stamp pre-rendered,
// rotated once and reused for every tile of every image.
func New(log *slog.Logger) (*Generator, error) {
	const op = "derivative.New"

	stamp, err := renderStamp()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Generator{
		log:   log,
		stamp: stamp,
	}, nil
}

// Thumbnail decodes srcPath, auto-rotates it per its orientation
// metadata, crops the top-anchored square from geometry.ThumbnailRect
// and writes it to dstPath. Re-running with the same inputs overwrites
// dstPath with identical content.
func (g *Generator) Thumbnail(srcPath, dstPath string, size int) error {
	const op = "derivative.Thumbnail"

	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, srcPath, err)
	}

	bounds := src.Bounds()
	rect := geometry.ThumbnailRect(bounds.Dx(), bounds.Dy(), size)
	thumb := imaging.Crop(src, rect)

	if err = g.saveAtomic(thumb, dstPath, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	g.log.Debug("thumbnail generated",
		slog.String("src", srcPath),
		slog.String("dst", dstPath),
		slog.Int("size", size),
	)

	return nil
}

// Watermark decodes srcPath, normalizes it to at most 800px wide,
// blankets it with the rotated brand-text grid and writes a quality-85
// JPEG to dstPath.
func (g *Generator) Watermark(srcPath, dstPath string) error {
	const op = "derivative.Watermark"

	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, srcPath, err)
	}

	if src.Bounds().Dx() > watermarkMaxWidth {
		src = imaging.Resize(src, watermarkMaxWidth, 0, imaging.Lanczos)
	}

	bounds := src.Bounds()
	overlay := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	stampBounds := g.stamp.Bounds()
	for _, tile := range geometry.WatermarkLayout(bounds.Dx(), bounds.Dy()) {
		pos := image.Pt(tile.X-stampBounds.Dx()/2, tile.Y-stampBounds.Dy()/2)
		draw.Draw(overlay, stampBounds.Sub(stampBounds.Min).Add(pos), g.stamp, stampBounds.Min, draw.Over)
	}

	marked := imaging.Overlay(src, overlay, image.Pt(0, 0), geometry.WatermarkOpacity)

	quality := imaging.JPEGQuality(watermarkJPEGQuality)
	if err = g.saveAtomicAs(marked, dstPath, imaging.JPEG, quality); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	g.log.Debug("watermark generated",
		slog.String("src", srcPath),
		slog.String("dst", dstPath),
		slog.String("dims", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())),
	)

	return nil
}

// saveAtomic infers the output format from the destination extension.
func (g *Generator) saveAtomic(img image.Image, dstPath string, opts []imaging.EncodeOption) error {
	// Inputs like webp decode fine but have no encoder; JPEG is the
	// fallback output format.
	format, err := imaging.FormatFromFilename(dstPath)
	if err != nil {
		format = imaging.JPEG
	}

	return g.saveAtomicAs(img, dstPath, format, opts...)
}

// saveAtomicAs encodes into a temp file next to dstPath and renames it
// into place, so readers only ever observe complete files.
func (g *Generator) saveAtomicAs(img image.Image, dstPath string, format imaging.Format, opts ...imaging.EncodeOption) error {
	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".derivative-*")
	if err != nil {
		return err
	}

	if err = imaging.Encode(tmp, img, format, opts...); err != nil {
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			g.log.Warn("failed to remove temp derivative", sl.Err(rmErr))
		}
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dstPath)
}

// renderStamp draws the brand text in bold white and rotates it by the
// watermark angle over a transparent background.
func renderStamp() (*image.NRGBA, error) {
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    geometry.WatermarkFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, geometry.WatermarkText).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	text := image.NewNRGBA(image.Rect(0, 0, width, height))

	drawer := font.Drawer{
		Dst:  text,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(geometry.WatermarkText)

	return imaging.Rotate(text, geometry.WatermarkRotation, color.NRGBA{}), nil
}
