package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/shape"
)

var palette = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffcc00", "#ff4444"}

// FrameToSVG draws every mounted gear of a at its current rotation. Outlines
// are built unrotated and placed in a rotate(angle cx cy) group, the same way
// a browser would animate the source document.
func FrameToSVG(a *assembly.Assembly, padding float64) string {
	b := a.Scene.Bounds()
	minX, minY := b.X-padding, b.Y-padding
	w, h := b.Width+2*padding, b.Height+2*padding

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.2f %.2f %.2f %.2f">
<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#0a0a0a"/>
`, w, h, minX, minY, w, h, minX, minY, w, h))

	for i, m := range a.Gears {
		g, ok := a.Set.Get(m.Handle)
		if !ok {
			continue
		}
		color := m.Element.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		pivot := m.Element.Pivot()
		sb.WriteString(fmt.Sprintf(`<g id="%s" transform="rotate(%.4f %.2f %.2f)">
`, m.ID, m.Element.Rotation(), pivot.X, pivot.Y))
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, color, pathData(shape.Outline(g.Center, g.Radius, g.Teeth, 0))))
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>
`, g.Center.X, g.Center.Y, g.Center.X+g.Radius*0.6, g.Center.Y, color))
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func pathData(pts []gear.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.2f,%.2f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", p.X, p.Y))
		}
	}
	sb.WriteString(" Z")
	return sb.String()
}

// TraceToSVG plots speed over time for a recorded run.
func TraceToSVG(frames []assembly.Frame, width, height int, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}

	minT, maxT := frames[0].Time, frames[len(frames)-1].Time
	minV, maxV := frames[0].Speed, frames[0].Speed
	for _, f := range frames {
		if f.Speed < minV {
			minV = f.Speed
		}
		if f.Speed > maxV {
			maxV = f.Speed
		}
	}

	rangeT := maxT - minT
	rangeV := maxV - minV
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	rangeV *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, f := range frames {
		x := (f.Time - minT) / rangeT * float64(width)
		y := float64(height) - (f.Speed-minV)/rangeV*float64(height)
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
