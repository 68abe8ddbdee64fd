package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

// maxPNGSide bounds the pixel size of either side of a raster image.
const maxPNGSide = 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes theme and sequence options through to the scene
// builder shared with SVG output.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes m. Shapes are filled by the gg software renderer;
// text is drawn with a fixed bitmap face at layout resolution and scaled up
// to match.
func RenderPNG(m Map, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, errors.New(errors.ErrCodeInvalidView, "png scale must be positive, got %g", r.scale)
	}

	s := buildScene(m, newSVGRenderer(r.svgOpts...))
	w, h := int(math.Ceil(s.Width*r.scale)), int(math.Ceil(s.Height*r.scale))
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidView, "nothing to draw: image would be %dx%d", w, h)
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidView, "image of %dx%d exceeds %d pixels per side", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(s.Background))
	for _, sh := range s.Shapes {
		if err := drawShape(dc, sh, r.scale); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "rasterize %s", sh.Class)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "flush renderer")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	drawTexts(img, s, r.scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawShape(dc *gg.Context, sh shape, scale float64) error {
	polys := sh.Path.Flatten()
	if len(polys) == 0 {
		return nil
	}
	if sh.Fill != "" {
		c := gg.Hex(sh.Fill)
		if sh.Opacity > 0 {
			c.A *= sh.Opacity
		}
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		trace(dc, polys, scale)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if sh.Stroke != "" {
		dc.SetHexColor(sh.Stroke)
		dc.SetLineWidth(math.Max(sh.StrokeWidth*scale, 1))
		trace(dc, polys, scale)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func trace(dc *gg.Context, polys [][]path.Point, scale float64) {
	for _, poly := range polys {
		for i, pt := range poly {
			if i == 0 {
				dc.MoveTo(pt.X*scale, pt.Y*scale)
				continue
			}
			dc.LineTo(pt.X*scale, pt.Y*scale)
		}
	}
}

// drawTexts renders text onto a transparent layer at scene resolution and
// composites it onto dst scaled to dst's size.
func drawTexts(dst *image.RGBA, s scene, scale float64) {
	if len(s.Texts) == 0 {
		return
	}
	layer := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(s.Width)), int(math.Ceil(s.Height))))
	d := font.Drawer{Dst: layer, Face: basicfont.Face7x13}
	for _, t := range s.Texts {
		width := float64(font.MeasureString(d.Face, t.Text).Ceil())
		x := t.X
		switch t.Anchor {
		case "middle":
			x -= width / 2
		case "end":
			x -= width
		}
		d.Src = image.NewUniform(gg.Hex(t.Fill).Color())
		d.Dot = fixed.P(int(math.Round(x)), int(math.Round(t.Y)))
		d.DrawString(t.Text)
	}
	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), layer, image.Point{}, draw.Over)
		return
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), layer, layer.Bounds(), draw.Over, nil)
}
