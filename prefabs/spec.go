package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const SceneFile = "scene.yaml"

var (
	ErrUnknownMesh     = errors.New("prefabs: unknown mesh")
	ErrUnknownMaterial = errors.New("prefabs: unknown material")
	ErrUnknownTexture  = errors.New("prefabs: unknown texture")
	ErrUnknownKind     = errors.New("prefabs: unknown object kind")
)

// Object kinds.
const (
	KindObject   = "object"
	KindPlayer   = "player"
	KindScripted = "scripted"
)

type SceneSpec struct {
	Camera    CameraSpec     `yaml:"camera"`
	Physics   PhysicsSpec    `yaml:"physics"`
	Bindings  BindingsSpec   `yaml:"bindings"`
	Textures  []TextureSpec  `yaml:"textures"`
	Materials []MaterialSpec `yaml:"materials"`
	Objects   []ObjectSpec   `yaml:"objects"`
	Spawner   *SpawnerSpec   `yaml:"spawner"`
}

type CameraSpec struct {
	Position   []float32 `yaml:"position"`
	HalfHeight float32   `yaml:"half_height"`
	Follow     string    `yaml:"follow"`
	Smooth     float32   `yaml:"smooth"`
}

type PhysicsSpec struct {
	Gravity []float32 `yaml:"gravity"`
	Box     BoxSpec   `yaml:"box"`
}

type BoxSpec struct {
	Size    []float32 `yaml:"size"`
	Density float32   `yaml:"density"`
	Spawn   []float32 `yaml:"spawn"`
	Floor   float32   `yaml:"floor"`
}

// BindingsSpec maps ebiten key names ("W", "ArrowUp") to action names
// ("up", "down", "left", "right", "action"). An empty map keeps the defaults.
type BindingsSpec struct {
	Keys map[string]string `yaml:"keys"`
}

type TextureSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type MaterialSpec struct {
	Name        string    `yaml:"name"`
	Color       string    `yaml:"color"`
	Texture     string    `yaml:"texture"`
	VertexColor bool      `yaml:"vertex_color"`
	UVScale     []float32 `yaml:"uv_scale"`
	UVOffset    []float32 `yaml:"uv_offset"`
}

type ObjectSpec struct {
	Name          string    `yaml:"name"`
	Kind          string    `yaml:"kind"`
	Position      []float32 `yaml:"position"`
	Scale         []float32 `yaml:"scale"`
	Rotation      float32   `yaml:"rotation"`
	Mesh          string    `yaml:"mesh"`
	Material      string    `yaml:"material"`
	Script        string    `yaml:"script"`
	Speed         float32   `yaml:"speed"`
	FollowPhysics bool      `yaml:"follow_physics"`
}

// SpawnerSpec adds a copy of Object every Interval seconds while fewer than
// Max objects with its name are alive.
type SpawnerSpec struct {
	Interval float64    `yaml:"interval"`
	Max      int        `yaml:"max"`
	Object   ObjectSpec `yaml:"object"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads and validates a scene file.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	if filename == "" {
		filename = SceneFile
	}
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseSceneSpec decodes and validates scene YAML.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks cross references between textures, materials and objects.
// Mesh names are checked by the builder, which knows the built-in shapes.
func (s *SceneSpec) Validate() error {
	textures := make(map[string]bool, len(s.Textures))
	for _, t := range s.Textures {
		textures[t.Name] = true
	}

	materials := make(map[string]bool, len(s.Materials))
	for _, m := range s.Materials {
		if m.Texture != "" && !textures[m.Texture] {
			return fmt.Errorf("material %q: %w: %q", m.Name, ErrUnknownTexture, m.Texture)
		}
		materials[m.Name] = true
	}

	check := func(o ObjectSpec) error {
		if o.Material != "" && !materials[o.Material] {
			return fmt.Errorf("object %q: %w: %q", o.Name, ErrUnknownMaterial, o.Material)
		}
		switch o.ObjectKind() {
		case KindObject, KindPlayer:
		case KindScripted:
			if o.Script == "" {
				return fmt.Errorf("object %q: scripted object needs a script", o.Name)
			}
		default:
			return fmt.Errorf("object %q: %w: %q", o.Name, ErrUnknownKind, o.Kind)
		}
		return nil
	}

	for _, o := range s.Objects {
		if err := check(o); err != nil {
			return err
		}
	}
	if s.Spawner != nil {
		if err := check(s.Spawner.Object); err != nil {
			return fmt.Errorf("spawner: %w", err)
		}
	}
	return nil
}

// ObjectKind returns the kind, defaulting to a plain object.
func (o ObjectSpec) ObjectKind() string {
	if o.Kind == "" {
		return KindObject
	}
	return o.Kind
}

// Vec3 pads or trims v to three components, using def for missing ones.
func Vec3(v []float32, def float32) [3]float32 {
	out := [3]float32{def, def, def}
	for i := 0; i < len(v) && i < 3; i++ {
		out[i] = v[i]
	}
	return out
}

// Vec2 pads or trims v to two components, using def for missing ones.
func Vec2(v []float32, def float32) [2]float32 {
	out := [2]float32{def, def}
	for i := 0; i < len(v) && i < 2; i++ {
		out[i] = v[i]
	}
	return out
}
