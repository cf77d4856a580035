package obj

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/sandbox/common"
)

// Positioner is anything the camera can follow.
type Positioner interface {
	Position() mgl32.Vec3
}

// Camera produces the view and projection used to draw the scene. The
// projection is orthographic: halfHeight world units above and below the
// camera position fit on screen, and the width follows the aspect ratio.
type Camera struct {
	position   mgl32.Vec3
	halfHeight float32
	aspect     float32

	// smoothing factor (0..1). higher -> faster follow. 0 snaps.
	smooth float32
	target Positioner
}

func NewCamera(pos mgl32.Vec3, halfHeight float32) *Camera {
	if halfHeight <= 0 {
		halfHeight = 5
	}
	return &Camera{position: pos, halfHeight: halfHeight, aspect: 1, smooth: 0.15}
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
}

// SetAspectRatio sets width/height of the view. Non-positive values are
// ignored.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
}

func (c *Camera) AspectRatio() float32 {
	return c.aspect
}

// SetHalfHeight sets how many world units fit above and below the center.
// Non-positive values are ignored.
func (c *Camera) SetHalfHeight(h float32) {
	if h <= 0 {
		return
	}
	c.halfHeight = h
}

func (c *Camera) HalfHeight() float32 {
	return c.halfHeight
}

func (c *Camera) SetSmooth(f float32) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Follow makes the camera track p on Update. nil stops following.
func (c *Camera) Follow(p Positioner) {
	c.target = p
}

// Unfollow stops following p if it is the current target.
func (c *Camera) Unfollow(p Positioner) {
	if c.target != nil && c.target == p {
		c.target = nil
	}
}

// Update moves the camera toward its target, if any.
func (c *Camera) Update(dt float64) {
	if c.target == nil {
		return
	}
	t := c.target.Position()
	if c.smooth <= 0 {
		c.position[0], c.position[1] = t.X(), t.Y()
		return
	}
	c.position[0] = common.Lerp(c.position.X(), t.X(), c.smooth)
	c.position[1] = common.Lerp(c.position.Y(), t.Y(), c.smooth)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Scale3D(1/(c.halfHeight*c.aspect), 1/c.halfHeight, 1)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen maps a world point to pixel coordinates on a w×h target.
func (c *Camera) WorldToScreen(p mgl32.Vec3, w, h int) (float32, float32) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	return (clip.X() + 1) * 0.5 * float32(w), (1 - clip.Y()) * 0.5 * float32(h)
}
