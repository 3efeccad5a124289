package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"github.com/san-kum/constellation/internal/viz"
)

// FrameSVG renders the scene as the camera sees it: connection lines first,
// then nodes painted far to near. Points outside the near and far planes
// are dropped, as is any line with such an endpoint.
func FrameSVG(s *scene.Scene, cam *camera.Camera, width, height int, theme viz.Theme) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	var conns render.Connections
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1" stroke-opacity="0.6">
`, theme.Line))
	for _, seg := range conns.Rebuild(s.Nodes) {
		ax, ay, _, okA := cam.Project(seg.A)
		bx, by, _, okB := cam.Project(seg.B)
		if !okA || !okB {
			continue
		}
		x0, y0 := viz.ToPixel(ax, ay, width, height)
		x1, y1 := viz.ToPixel(bx, by, width, height)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
	}
	sb.WriteString("</g>\n")

	type mark struct {
		idx        int
		x, y, r, z float64
	}
	marks := make([]mark, 0, s.Len())
	for i := range s.Nodes {
		nx, ny, depth, ok := cam.Project(s.Nodes[i].Position)
		if !ok {
			continue
		}
		x, y := viz.ToPixel(nx, ny, width, height)
		marks = append(marks, mark{i, x, y, viz.ProjectedRadius(cam, s.ProxySize, depth, height), depth})
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].z > marks[j].z })

	sb.WriteString("<g>\n")
	for _, m := range marks {
		fill := theme.Node
		if s.Nodes[m.idx].Appearance == scene.Hover {
			fill = theme.Hover
		}
		title := escape(s.Nodes[m.idx].Payload.Title)
		if s.Proxy == scene.ProxyPlane {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s</title></rect>
`, m.x-m.r, m.y-m.r, 2*m.r, 2*m.r, fill, title))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, m.x, m.y, m.r, fill, title))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format, one dot per lit
// sub-pixel, coloured by the cell's ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Pixels()
	width, height := float64(w)*scale, float64(h)*scale

	fills := map[viz.Ink]string{
		viz.InkLine:  string(theme.Line),
		viz.InkGlobe: string(theme.Globe),
		viz.InkArc:   string(theme.Arc),
		viz.InkNode:  string(theme.Node),
		viz.InkHover: string(theme.Hover),
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fills[canvas.Inks[y/4][x/2]]))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values left to right as a polyline scaled to fit.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
