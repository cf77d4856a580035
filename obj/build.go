package obj

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/assets"
	"github.com/milk9111/sandbox/prefabs"
	"github.com/milk9111/sandbox/render"
)

// buildContext carries what object builders may borrow from the scene.
type buildContext struct {
	Resources  *render.Resources
	Controller *Controller
	Remover    Remover
}

type objectBuildFn func(spec prefabs.ObjectSpec, base *GameObject, ctx *buildContext) (Object, error)

var objectRegistry = map[string]objectBuildFn{
	prefabs.KindObject:   buildPlain,
	prefabs.KindPlayer:   buildPlayer,
	prefabs.KindScripted: buildScripted,
}

// BuildResources creates the built-in meshes plus the textures and materials
// named in spec.
func BuildResources(spec *prefabs.SceneSpec) (*render.Resources, error) {
	res := render.NewResources()
	for _, name := range []string{"Triangle", "Square", "Sprite"} {
		build, _ := render.Builtin(name)
		res.AddMesh(name, build())
	}
	if spec == nil {
		return res, nil
	}

	for _, t := range spec.Textures {
		img, err := assets.LoadImage(t.Path)
		if err != nil {
			res.Dispose()
			return nil, fmt.Errorf("build: texture %q: %w", t.Name, err)
		}
		res.AddTexture(t.Name, img)
	}

	for _, m := range spec.Materials {
		c, err := render.ParseColor(m.Color)
		if err != nil {
			res.Dispose()
			return nil, fmt.Errorf("build: material %q: %w", m.Name, err)
		}
		var tex *ebiten.Image
		if m.Texture != "" {
			img, ok := res.Texture(m.Texture)
			if !ok {
				res.Dispose()
				return nil, fmt.Errorf("build: material %q: %w: %q", m.Name, prefabs.ErrUnknownTexture, m.Texture)
			}
			tex = img
		}
		mat := render.NewMaterial(c, tex, m.VertexColor)
		if len(m.UVScale) > 0 {
			mat.UVScale = mgl32.Vec2(prefabs.Vec2(m.UVScale, 1))
		}
		if len(m.UVOffset) > 0 {
			mat.UVOffset = mgl32.Vec2(prefabs.Vec2(m.UVOffset, 0))
		}
		res.AddMaterial(m.Name, mat)
	}
	return res, nil
}

// BuildBindings converts key names to a binding table. Gamepad buttons keep
// their defaults; an empty key map keeps the default keys too.
func BuildBindings(spec prefabs.BindingsSpec) (Bindings, error) {
	b := DefaultBindings()
	if len(spec.Keys) == 0 {
		return b, nil
	}

	// sorted so the first bad entry reported is stable
	names := make([]string, 0, len(spec.Keys))
	for name := range spec.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	keys := make(map[ebiten.Key]Mask, len(spec.Keys))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return Bindings{}, fmt.Errorf("build: bindings: %w", err)
		}
		action := spec.Keys[name]
		m, ok := ParseMask(action)
		if !ok {
			return Bindings{}, fmt.Errorf("build: bindings: unknown action %q for key %s", action, name)
		}
		keys[k] = m
	}
	b.Keys = keys
	return b, nil
}

// BuildObject creates one object from its spec. Meshes and materials are
// borrowed from res.
func BuildObject(spec prefabs.ObjectSpec, res *render.Resources, ctrl *Controller, remover Remover) (Object, error) {
	build, ok := objectRegistry[spec.ObjectKind()]
	if !ok {
		return nil, fmt.Errorf("build: object %q: %w: %q", spec.Name, prefabs.ErrUnknownKind, spec.Kind)
	}
	if res == nil {
		res = render.NewResources()
	}

	var mesh *render.Mesh
	if spec.Mesh != "" {
		m, ok := res.Mesh(spec.Mesh)
		if !ok {
			return nil, fmt.Errorf("build: object %q: %w: %q", spec.Name, prefabs.ErrUnknownMesh, spec.Mesh)
		}
		mesh = m
	}
	var mat *render.Material
	if spec.Material != "" {
		m, ok := res.Material(spec.Material)
		if !ok {
			return nil, fmt.Errorf("build: object %q: %w: %q", spec.Name, prefabs.ErrUnknownMaterial, spec.Material)
		}
		mat = m
	}

	base := NewGameObject(spec.Name, mgl32.Vec3(prefabs.Vec3(spec.Position, 0)), mesh, mat)
	base.SetScale(mgl32.Vec3(prefabs.Vec3(spec.Scale, 1)))
	base.SetRotation(mgl32.Vec3{0, 0, mgl32.DegToRad(spec.Rotation)})
	base.SetFollowPhysics(spec.FollowPhysics)

	return build(spec, base, &buildContext{Resources: res, Controller: ctrl, Remover: remover})
}

func buildPlain(spec prefabs.ObjectSpec, base *GameObject, ctx *buildContext) (Object, error) {
	return base, nil
}

func buildPlayer(spec prefabs.ObjectSpec, base *GameObject, ctx *buildContext) (Object, error) {
	if ctx.Controller == nil {
		return nil, fmt.Errorf("build: player %q: no controller", spec.Name)
	}
	p := NewPlayer(base, ctx.Controller)
	if spec.Speed > 0 {
		p.Speed = spec.Speed
	}
	return p, nil
}

func buildScripted(spec prefabs.ObjectSpec, base *GameObject, ctx *buildContext) (Object, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("build: scripted %q: %w", spec.Name, err)
	}
	return NewScriptedObject(base, src, ctx.Remover)
}
