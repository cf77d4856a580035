package obj

import (
	"github.com/milk9111/sandbox/prefabs"
	"github.com/milk9111/sandbox/render"
)

// Spawner adds a fresh copy of one object spec to a scene on a timer. It
// counts live copies by name, so copies that remove themselves free a slot.
type Spawner struct {
	spec    prefabs.SpawnerSpec
	res     *render.Resources
	scene   *Scene
	elapsed float64
}

func NewSpawner(spec prefabs.SpawnerSpec, res *render.Resources, scene *Scene) *Spawner {
	return &Spawner{spec: spec, res: res, scene: scene}
}

// Live returns how many copies are currently in the scene.
func (s *Spawner) Live() int {
	n := 0
	for _, o := range s.scene.Objects() {
		if o.Name() == s.spec.Object.Name {
			n++
		}
	}
	return n
}

// Tick advances the timer and queues a spawn when it fires and a slot is
// free. The returned object is nil when nothing was spawned.
func (s *Spawner) Tick(dt float64) (Object, error) {
	if s == nil || s.scene == nil || s.spec.Interval <= 0 {
		return nil, nil
	}
	s.elapsed += dt
	if s.elapsed < s.spec.Interval {
		return nil, nil
	}
	s.elapsed -= s.spec.Interval

	if s.spec.Max > 0 && s.Live() >= s.spec.Max {
		return nil, nil
	}
	o, err := BuildObject(s.spec.Object, s.res, s.scene.Controller(), s.scene)
	if err != nil {
		return nil, err
	}
	s.scene.Spawn(o)
	return o, nil
}
