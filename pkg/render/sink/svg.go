package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const interactionCSS = `
    .feature { transition: stroke-width 0.2s ease; cursor: pointer; }
    .feature.highlight { stroke-width: 2; }`

const interactionJS = `
    document.querySelectorAll('.feature').forEach(el => {
      const same = () => document.querySelectorAll('.feature[data-annotation="' + el.dataset.annotation + '"]');
      el.addEventListener('mouseenter', () => same().forEach(f => f.classList.add('highlight')));
      el.addEventListener('mouseleave', () => same().forEach(f => f.classList.remove('highlight')));
    });`

// SVGOption configures SVG rendering. The same options drive the scene used
// for PNG output.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme       Theme
	sequence    string
	interactive bool
}

// WithTheme replaces the color theme.
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithColors applies color overrides on top of the current theme.
func WithColors(colors map[string]string) SVGOption {
	return func(r *svgRenderer) { r.theme = r.theme.With(colors) }
}

// WithSequence draws base letters on linear maps when bases are wide enough.
func WithSequence(seq string) SVGOption { return func(r *svgRenderer) { r.sequence = seq } }

// WithInteraction adds hover highlighting of all fragments of an annotation.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

func newSVGRenderer(opts ...SVGOption) *svgRenderer {
	r := &svgRenderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderSVG renders m as an SVG document.
func RenderSVG(m Map, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	s := buildScene(m, r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f" font-family="monospace" font-size="%s">`+"\n",
		num(s.Width), num(s.Height), s.Width, s.Height, num(fontSize))
	if s.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.Title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(s.Background))
	for _, sh := range s.Shapes {
		writeShape(&buf, sh)
	}
	for _, t := range s.Texts {
		writeText(&buf, t)
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, sh shape) {
	if sh.Path.IsEmpty() {
		return
	}
	fmt.Fprintf(buf, `  <path class="%s"`, sh.Class)
	if sh.Annotation != "" {
		fmt.Fprintf(buf, ` data-annotation="%s"`, escapeXML(sh.Annotation))
	}
	fmt.Fprintf(buf, ` d="%s"`, sh.Path.SVG())
	fill := sh.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(buf, ` fill="%s"`, escapeXML(fill))
	if sh.Opacity > 0 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(sh.Opacity))
	}
	if sh.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, escapeXML(sh.Stroke), num(sh.StrokeWidth))
	}
	if sh.Title == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></path>\n", escapeXML(sh.Title))
}

func writeText(buf *bytes.Buffer, t text) {
	fmt.Fprintf(buf, `  <text class="%s" x="%s" y="%s" text-anchor="%s" fill="%s">%s</text>`+"\n",
		t.Class, num(t.X), num(t.Y), t.Anchor, escapeXML(t.Fill), escapeXML(t.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
