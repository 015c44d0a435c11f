package render

// wireframeReach bounds how far outside the framebuffer an edge endpoint may
// lie before the edge is skipped. Vertices behind the eye project to huge
// coordinates that Bresenham would walk one pixel at a time.
const wireframeReach = 4

// DrawWireframe outlines every face that survives triangle setup for cam.
// It does not depth test; lines are drawn over whatever fb already holds.
// It returns the number of faces outlined.
func DrawWireframe(fb *Framebuffer, faces []Face, cam Camera, c Color) int {
	mvp := cam.ViewProjection()
	limit := float64(wireframeReach * max(fb.Width, fb.Height))

	drawn := 0
	for i := range faces {
		t := setupTriangle(&faces[i], mvp, cam.View, fb.Width, fb.Height, ShadeNone, nil)
		if !t.renderable {
			continue
		}
		for _, e := range scanEdges {
			a, b := t.pixel[e[0]], t.pixel[e[1]]
			if !inReach(a.X, limit) || !inReach(a.Y, limit) || !inReach(b.X, limit) || !inReach(b.Y, limit) {
				continue
			}
			fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
		}
		drawn++
	}
	return drawn
}

func inReach(v, limit float64) bool {
	return v >= -limit && v <= limit
}
