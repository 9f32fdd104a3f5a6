package scene

import (
	"scene-editor/core"
	seMath "scene-editor/math"
)

const (
	gizmoSize    = 40.0
	gizmoMarginX = 50.0
	gizmoMarginY = 50.0
)

var gizmoAxes = []struct {
	dir   seMath.Vec3
	color core.Color
	label string
}{
	{seMath.Vec3Right, core.ColorRed, "X"},
	{seMath.Vec3Up, core.ColorGreen, "Y"},
	{seMath.Vec3Front, core.ColorBlue, "Z"},
}

// DrawGizmo draws the world axes in the top-right corner, rotated by the
// camera's view rotation with its translation removed.
func DrawGizmo(ctx *RenderContext, s core.Surface) {
	offsetX := ctx.Width - gizmoMarginX - gizmoSize
	offsetY := gizmoMarginY
	half := gizmoSize / 2

	s.DrawCircle(offsetX+half, offsetY+half, half+5, core.ColorWhite, 0.2)

	view := ctx.Camera.View()
	for _, axis := range gizmoAxes {
		end := view.MulDir(axis.dir)
		x1 := offsetX + half
		y1 := offsetY + half
		x2 := offsetX + (end.X+1)*half
		y2 := offsetY + (1-end.Y)*half

		s.DrawLine(x1, y1, x2, y2, axis.color, 2)
		s.DrawLabel(axis.label, x2, y2, axis.color, true)
	}
}
