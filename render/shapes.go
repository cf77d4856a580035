package render

import "github.com/go-gl/mathgl/mgl32"

var (
	red   = mgl32.Vec4{1, 0, 0, 1}
	green = mgl32.Vec4{0, 1, 0, 1}
	blue  = mgl32.Vec4{0, 0, 1, 1}
	white = mgl32.Vec4{1, 1, 1, 1}
)

// TriangleMesh is a unit triangle with red, green and blue corners.
func TriangleMesh() *Mesh {
	return NewMesh([]Vertex{
		{Pos: mgl32.Vec2{0, 0.5}, UV: mgl32.Vec2{0.5, 0}, Color: red},
		{Pos: mgl32.Vec2{-0.5, -0.5}, UV: mgl32.Vec2{0, 1}, Color: green},
		{Pos: mgl32.Vec2{0.5, -0.5}, UV: mgl32.Vec2{1, 1}, Color: blue},
	}, []uint16{0, 1, 2})
}

// SquareMesh is a unit square centered on the origin.
func SquareMesh() *Mesh {
	return NewMesh([]Vertex{
		{Pos: mgl32.Vec2{-0.5, 0.5}, UV: mgl32.Vec2{0, 0}, Color: red},
		{Pos: mgl32.Vec2{0.5, 0.5}, UV: mgl32.Vec2{1, 0}, Color: green},
		{Pos: mgl32.Vec2{0.5, -0.5}, UV: mgl32.Vec2{1, 1}, Color: blue},
		{Pos: mgl32.Vec2{-0.5, -0.5}, UV: mgl32.Vec2{0, 1}, Color: white},
	}, []uint16{0, 1, 2, 0, 2, 3})
}

// SpriteMesh is a unit square whose origin sits at the bottom center, so a
// sprite stands on its position.
func SpriteMesh() *Mesh {
	return NewMesh([]Vertex{
		{Pos: mgl32.Vec2{-0.5, 1}, UV: mgl32.Vec2{0, 0}, Color: white},
		{Pos: mgl32.Vec2{0.5, 1}, UV: mgl32.Vec2{1, 0}, Color: white},
		{Pos: mgl32.Vec2{0.5, 0}, UV: mgl32.Vec2{1, 1}, Color: white},
		{Pos: mgl32.Vec2{-0.5, 0}, UV: mgl32.Vec2{0, 1}, Color: white},
	}, []uint16{0, 1, 2, 0, 2, 3})
}

// Builtin returns the named built-in mesh constructor.
func Builtin(name string) (func() *Mesh, bool) {
	switch name {
	case "Triangle":
		return TriangleMesh, true
	case "Square":
		return SquareMesh, true
	case "Sprite":
		return SpriteMesh, true
	default:
		return nil, false
	}
}
