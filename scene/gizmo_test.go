package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/core"
)

func TestDrawGizmoLayout(t *testing.T) {
	w := NewWorld(NewCamera(60, 2, 0.1, 1000), 200, 100)
	var rec core.Recorder
	DrawGizmo(w.Context(200, 100, false, nil), &rec)

	require.Len(t, rec.Calls, 7)
	bg := rec.Calls[0]
	assert.Equal(t, core.OpCircle, bg.Op)
	assert.InDelta(t, 130, bg.Points[0].X, eps)
	assert.InDelta(t, 70, bg.Points[0].Y, eps)
	assert.InDelta(t, gizmoSize/2+5, bg.Radius, eps)

	// looking down -Z, X points right and Y points up on screen
	x := rec.Calls[1]
	assert.InDelta(t, 150, x.Points[1].X, eps)
	assert.InDelta(t, 70, x.Points[1].Y, eps)
	y := rec.Calls[3]
	assert.InDelta(t, 130, y.Points[1].X, eps)
	assert.InDelta(t, 50, y.Points[1].Y, eps)
	assert.Equal(t, "Z", rec.Calls[6].Text)
}
