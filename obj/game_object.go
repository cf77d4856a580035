package obj

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/render"
)

// Object is anything the scene can hold.
type Object interface {
	ID() string
	Name() string
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Update(dt float64)
	Draw(dst *ebiten.Image, cam *Camera)
}

// Destroyer is implemented by objects that hold state to release when the
// scene drops them.
type Destroyer interface {
	Destroy()
}

// Transform is position, rotation (radians per axis) and scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the world matrix: scale, then rotate, then translate.
func (t Transform) Matrix() mgl32.Mat4 {
	s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	r := mgl32.HomogRotate3DZ(t.Rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	return tr.Mul4(r).Mul4(s)
}

// GameObject is the base object: a named transform drawn with a borrowed
// mesh and material. It does nothing on Update.
type GameObject struct {
	id            string
	name          string
	transform     Transform
	mesh          *render.Mesh
	material      *render.Material
	followPhysics bool
}

func NewGameObject(name string, pos mgl32.Vec3, mesh *render.Mesh, material *render.Material) *GameObject {
	return &GameObject{
		id:        uuid.NewString(),
		name:      name,
		transform: NewTransform(pos),
		mesh:      mesh,
		material:  material,
	}
}

func (g *GameObject) ID() string   { return g.id }
func (g *GameObject) Name() string { return g.name }

func (g *GameObject) Position() mgl32.Vec3     { return g.transform.Position }
func (g *GameObject) SetPosition(p mgl32.Vec3) { g.transform.Position = p }

func (g *GameObject) Rotation() mgl32.Vec3     { return g.transform.Rotation }
func (g *GameObject) SetRotation(r mgl32.Vec3) { g.transform.Rotation = r }

func (g *GameObject) Scale() mgl32.Vec3     { return g.transform.Scale }
func (g *GameObject) SetScale(s mgl32.Vec3) { g.transform.Scale = s }

func (g *GameObject) Transform() Transform { return g.transform }

// FollowsPhysics reports whether the game should pin this object's height to
// the physics demo body.
func (g *GameObject) FollowsPhysics() bool     { return g.followPhysics }
func (g *GameObject) SetFollowPhysics(on bool) { g.followPhysics = on }

func (g *GameObject) Update(dt float64) {}

func (g *GameObject) Draw(dst *ebiten.Image, cam *Camera) {
	if g.mesh == nil || cam == nil {
		return
	}
	g.mesh.Draw(dst, g.transform.Matrix(), cam.ViewProjection(), g.material)
}
