package core

import (
	seMath "scene-editor/math"
)

// PolygonStyle describes how a filled polygon is drawn. A zero Border or
// BorderWidth draws no outline; Opacity is in [0, 1].
type PolygonStyle struct {
	Fill        Color
	Border      Color
	BorderWidth float64
	Opacity     float64
}

// Surface is the 2D drawing capability the renderer submits to. Coordinates
// are in pixels with the origin at the top left and y growing downward.
type Surface interface {
	DrawPolygon(points []seMath.Vec2, style PolygonStyle)
	DrawLine(x1, y1, x2, y2 float64, fill Color, width float64)
	DrawCircle(cx, cy, r float64, fill Color, opacity float64)
	DrawLabel(text string, x, y float64, fill Color, bold bool)
}
