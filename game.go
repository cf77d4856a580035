package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/common"
	"github.com/milk9111/sandbox/config"
	"github.com/milk9111/sandbox/event"
	"github.com/milk9111/sandbox/input"
	"github.com/milk9111/sandbox/obj"
	"github.com/milk9111/sandbox/physics"
	"github.com/milk9111/sandbox/prefabs"
	"github.com/milk9111/sandbox/render"
)

type physicsFollower interface {
	FollowsPhysics() bool
}

// Game implements ebiten.Game. The scene runs the objects; Game wires the
// scene to input, physics, the overlay and scene reloading.
type Game struct {
	cfg config.Config

	scene     *obj.Scene
	resources *render.Resources
	retired   []*render.Resources
	spawner   *obj.Spawner

	world *physics.World
	box   *physics.Body
	floor float32

	source  *input.Source
	overlay *Overlay
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	focused bool

	width  int
	height int
}

func NewGame(cfg config.Config) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(cfg.Scene)
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, spec)
	if err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir(), filepath.Join(prefabs.Dir(), "scripts"))
		if err != nil {
			log.Printf("game: watch %s: %v", prefabs.Dir(), err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func newGame(cfg config.Config, spec *prefabs.SceneSpec) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		focused: true,
		width:   common.BaseWidth,
		height:  common.BaseHeight,
	}

	events := event.NewManager(event.WithPolicy(cfg.EventPolicy()))
	g.scene = obj.NewScene(events, obj.NewController(obj.DefaultBindings()), obj.NewCamera(mgl32.Vec3{}, 5))
	g.source = input.NewSource(events)

	g.overlay = NewOverlay()
	g.scene.Forward(g.overlay)
	g.scene.Forward(g)
	g.pauseUI = NewPauseUI(PauseActions{
		Resume: func() { g.setPaused(false) },
		Quit:   func() { g.quit = true },
	})

	box := spec.Physics.Box
	gravity := physics.DefaultGravity
	if len(spec.Physics.Gravity) > 0 {
		gravity = mgl32.Vec2(prefabs.Vec2(spec.Physics.Gravity, 0))
	}
	g.world = physics.NewWorld(gravity)
	size := prefabs.Vec2(box.Size, 1)
	g.box = g.world.AddBox(size[0], size[1], box.Density, mgl32.Vec2(prefabs.Vec2(box.Spawn, 0)))
	g.floor = box.Floor

	if err := g.apply(spec, true); err != nil {
		g.scene.Close()
		return nil, err
	}
	return g, nil
}

// apply builds the objects in spec. The first load adds them directly. A
// reload queues a scene clear followed by the new objects, so anything still
// waiting to be spawned is cleared as well; the old resources are freed once
// that batch has been dispatched.
func (g *Game) apply(spec *prefabs.SceneSpec, initial bool) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	bindings, err := obj.BuildBindings(spec.Bindings)
	if err != nil {
		return err
	}
	res, err := obj.BuildResources(spec)
	if err != nil {
		return err
	}

	built := make([]obj.Object, 0, len(spec.Objects))
	for _, objSpec := range spec.Objects {
		o, err := obj.BuildObject(objSpec, res, g.scene.Controller(), g.scene)
		if err != nil {
			for _, b := range built {
				if d, ok := b.(obj.Destroyer); ok {
					d.Destroy()
				}
			}
			res.Dispose()
			return err
		}
		built = append(built, o)
	}

	g.scene.Controller().SetBindings(bindings)

	cam := g.scene.Camera()
	cam.SetPosition(mgl32.Vec3(prefabs.Vec3(spec.Camera.Position, 0)))
	cam.SetHalfHeight(spec.Camera.HalfHeight)
	if spec.Camera.Smooth > 0 {
		cam.SetSmooth(spec.Camera.Smooth)
	}
	cam.Follow(nil)

	if !initial {
		g.scene.RequestClear()
		if g.resources != nil {
			g.retired = append(g.retired, g.resources)
		}
	}
	for _, o := range built {
		if initial {
			g.scene.Add(o)
		} else {
			g.scene.Spawn(o)
		}
		if spec.Camera.Follow != "" && o.Name() == spec.Camera.Follow {
			cam.Follow(o)
		}
	}
	g.resources = res

	g.spawner = nil
	if spec.Spawner != nil {
		g.spawner = obj.NewSpawner(*spec.Spawner, res, g.scene)
	}
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.source.Poll(g.width, g.height)
	g.step(1/float64(ebiten.TPS()), ebiten.IsFocused())
	if g.paused {
		g.pauseUI.Update()
	} else {
		g.overlay.Update()
	}
	g.pollReload()
	return nil
}

// step runs one frame after input has been queued: dispatch, then objects,
// then physics.
func (g *Game) step(dt float64, focused bool) {
	g.scene.StartFrame()
	g.disposeRetired()
	g.setFocused(focused)
	if g.paused {
		return
	}

	g.scene.Update(dt)

	bodyY := g.box.Position().Y()
	g.scene.Each(func(o obj.Object) {
		if f, ok := o.(physicsFollower); ok && f.FollowsPhysics() {
			p := o.Position()
			p[1] = bodyY
			o.SetPosition(p)
		}
	})

	g.world.Step(dt)
	if g.box.ResetBelow(g.floor) && g.cfg.Debug {
		log.Printf("game: physics box reset")
	}

	if _, err := g.spawner.Tick(dt); err != nil {
		log.Printf("game: spawn: %v", err)
		g.spawner = nil
	}

	names := make([]string, 0, g.scene.Len())
	for _, o := range g.scene.Objects() {
		names = append(names, o.Name())
	}
	g.overlay.SetObjects(names)
	g.overlay.SetPosition(bodyY)
}

// OnEvent toggles the pause menu on Escape. The scene forwards every event
// here.
func (g *Game) OnEvent(e event.Event) {
	switch e.Type() {
	case event.TypeInput:
		in, ok := e.(event.InputEvent)
		if !ok || in.Device != event.DeviceKeyboard || in.State != event.StatePressed {
			return
		}
		if ebiten.Key(in.Code) == ebiten.KeyEscape {
			g.setPaused(!g.paused)
		}
	}
}

// setPaused releases every held action so keys let go while the menu was up
// do not stay held.
func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.scene.Controller().Reset()
}

func (g *Game) setFocused(focused bool) {
	if g.focused && !focused {
		g.scene.Controller().Reset()
	}
	g.focused = focused
}

func (g *Game) pollReload() {
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	if g.cfg.Debug {
		log.Printf("game: changed %v", changed)
	}
	spec, err := prefabs.LoadSceneSpec(g.cfg.Scene)
	if err != nil {
		log.Printf("game: reload: %v", err)
		return
	}
	if err := g.apply(spec, false); err != nil {
		log.Printf("game: reload: %v", err)
		return
	}
	log.Printf("game: reloaded %s", g.cfg.Scene)
}

func (g *Game) disposeRetired() {
	for _, r := range g.retired {
		r.Dispose()
	}
	g.retired = g.retired[:0]
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	g.overlay.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// Close tears the game down. Objects go first, then the resources they
// borrowed from.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("game: close watcher: %w", err))
		}
	}
	if n := g.scene.Close(); n > 0 && g.cfg.Debug {
		log.Printf("game: discarded %d queued events", n)
	}
	g.disposeRetired()
	g.resources.Dispose()
	return errors.Join(errs...)
}
