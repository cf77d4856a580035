package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vertex is a mesh vertex in model space. UV uses image convention: (0,0) is
// the top-left texel.
type Vertex struct {
	Pos   mgl32.Vec2
	UV    mgl32.Vec2
	Color mgl32.Vec4
}

// Mesh is an indexed triangle list shared by any number of objects.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16

	scratch []ebiten.Vertex
}

func NewMesh(vertices []Vertex, indices []uint16) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices}
}

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whiteSource returns a 1x1 white region used for untextured draws.
func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw projects the mesh through viewProj*world onto dst and fills it with
// the material.
func (m *Mesh) Draw(dst *ebiten.Image, world, viewProj mgl32.Mat4, mat *Material) {
	if m == nil || dst == nil || len(m.Indices) == 0 {
		return
	}
	if mat == nil {
		mat = defaultMaterial
	}

	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	mvp := viewProj.Mul4(world)

	src := mat.Texture
	if src == nil {
		src = whiteSource()
	}
	sb := src.Bounds()
	sw, sh := float32(sb.Dx()), float32(sb.Dy())
	tint := mat.tint()

	if cap(m.scratch) < len(m.Vertices) {
		m.scratch = make([]ebiten.Vertex, len(m.Vertices))
	}
	verts := m.scratch[:len(m.Vertices)]
	for i, v := range m.Vertices {
		clip := mvp.Mul4x1(mgl32.Vec4{v.Pos.X(), v.Pos.Y(), 0, 1})
		if clip.W() != 0 {
			clip = clip.Mul(1 / clip.W())
		}

		c := tint
		if mat.VertexColor {
			c = mgl32.Vec4{c[0] * v.Color[0], c[1] * v.Color[1], c[2] * v.Color[2], c[3] * v.Color[3]}
		}

		u := v.UV.X()*mat.UVScale.X() + mat.UVOffset.X()
		t := v.UV.Y()*mat.UVScale.Y() + mat.UVOffset.Y()
		if mat.Texture == nil {
			u, t = 0.5, 0.5
		}

		verts[i] = ebiten.Vertex{
			// screen y grows downward, clip y grows upward
			DstX:   float32(b.Min.X) + (clip.X()+1)*0.5*w,
			DstY:   float32(b.Min.Y) + (1-clip.Y())*0.5*h,
			SrcX:   float32(sb.Min.X) + u*sw,
			SrcY:   float32(sb.Min.Y) + t*sh,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		}
	}

	dst.DrawTriangles(verts, m.Indices, src, &ebiten.DrawTrianglesOptions{})
}
