package gait

import (
	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
)

// CoMReference tracks the horizontal centroid of the foot references, at the
// initial height of the centre of mass.
type CoMReference struct {
	origin math3d.Vector3
	feet   [contact.NumPoints]*FootRef
	start  [contact.NumPoints]math3d.Vector3
}

// CoMRef returns the centre of mass reference for the timeline, starting at
// com0.
func CoMRef(tl *Timeline, com0 math3d.Vector3) *CoMReference {
	c := &CoMReference{origin: com0}
	for _, p := range contact.Points() {
		c.feet[p] = SwingRef(tl, p)
		c.start[p] = c.feet[p].Position(0)
	}
	return c
}

// Foot returns the reference of a single foot.
func (c *CoMReference) Foot(p contact.Point) *FootRef {
	return c.feet[p]
}

// Position returns the reference centre of mass at time t.
func (c *CoMReference) Position(t float64) math3d.Vector3 {
	var sum math3d.Vector3
	for _, p := range contact.Points() {
		sum = sum.Add(c.feet[p].Position(t).Subtract(c.start[p]))
	}

	return c.origin.Add(sum.MultiplyByScalar(1.0 / contact.NumPoints).Horizontal())
}
