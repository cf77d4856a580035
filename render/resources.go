package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Resources owns every mesh, material and texture of a scene. Objects hold
// plain pointers into it and must be destroyed before Dispose runs.
type Resources struct {
	meshes    map[string]*Mesh
	materials map[string]*Material
	textures  map[string]*ebiten.Image
}

func NewResources() *Resources {
	return &Resources{
		meshes:    make(map[string]*Mesh),
		materials: make(map[string]*Material),
		textures:  make(map[string]*ebiten.Image),
	}
}

func (r *Resources) AddMesh(name string, m *Mesh) {
	r.meshes[name] = m
}

func (r *Resources) Mesh(name string) (*Mesh, bool) {
	m, ok := r.meshes[name]
	return m, ok
}

func (r *Resources) AddMaterial(name string, m *Material) {
	r.materials[name] = m
}

func (r *Resources) Material(name string) (*Material, bool) {
	m, ok := r.materials[name]
	return m, ok
}

func (r *Resources) AddTexture(name string, img *ebiten.Image) {
	r.textures[name] = img
}

func (r *Resources) Texture(name string) (*ebiten.Image, bool) {
	img, ok := r.textures[name]
	return img, ok
}

// MeshNames returns the registered mesh names, sorted.
func (r *Resources) MeshNames() []string {
	names := make([]string, 0, len(r.meshes))
	for name := range r.meshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispose releases GPU memory held by textures and empties the table.
func (r *Resources) Dispose() {
	if r == nil {
		return
	}
	for _, img := range r.textures {
		if img != nil {
			img.Deallocate()
		}
	}
	clear(r.meshes)
	clear(r.materials)
	clear(r.textures)
}
