package obj

import (
	"errors"
	"log"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/event"
)

// ErrMutateDuringIteration is the panic value raised when the object list is
// changed while Update, Draw or Each is walking it.
var ErrMutateDuringIteration = errors.New("obj: scene objects mutated during iteration")

// Scene is the root of the running game. It owns the event queue, the
// controller, the camera and the ordered object list, and runs the frame in
// a fixed order: StartFrame (controller snapshot, event dispatch), Update,
// Draw.
//
// The object list only changes inside OnEvent, which only runs during
// StartFrame. Objects that want to add or remove objects while updating go
// through Spawn and RequestRemove, which queue events for the next frame.
type Scene struct {
	events     *event.Manager
	controller *Controller
	camera     *Camera
	objects    []Object
	forward    []event.Receiver
	iterating  int
}

func NewScene(events *event.Manager, controller *Controller, camera *Camera) *Scene {
	if events == nil {
		events = event.NewManager()
	}
	if controller == nil {
		controller = NewController(DefaultBindings())
	}
	if camera == nil {
		camera = NewCamera(mgl32.Vec3{}, 5)
	}
	return &Scene{events: events, controller: controller, camera: camera}
}

func (s *Scene) Events() *event.Manager  { return s.events }
func (s *Scene) Controller() *Controller { return s.controller }
func (s *Scene) Camera() *Camera         { return s.camera }

// Forward registers a secondary consumer that sees every event after the
// scene has handled it.
func (s *Scene) Forward(r event.Receiver) {
	if r == nil {
		return
	}
	s.forward = append(s.forward, r)
}

// Add appends o immediately. Use it while building the scene; during play use
// Spawn.
func (s *Scene) Add(o Object) {
	s.add(o)
}

// Spawn queues o to be added on the next dispatch.
func (s *Scene) Spawn(o Object) {
	if o == nil {
		return
	}
	s.events.Add(AddToGameEvent{Object: o})
}

// RequestRemove queues o to be removed and destroyed on the next dispatch.
func (s *Scene) RequestRemove(o Object) {
	if o == nil {
		return
	}
	s.events.Add(RemoveFromGameEvent{Object: o})
}

// RequestClear queues removal of every object in the scene at the time the
// request is dispatched. Objects spawned before the request are removed too.
func (s *Scene) RequestClear() {
	s.events.Add(ClearSceneEvent{})
}

// StartFrame snapshots the controller and dispatches every queued event to
// the scene.
func (s *Scene) StartFrame() {
	s.controller.StartFrame()
	s.events.DispatchAll(s)
}

// OnEvent handles one dispatched event. It must only be reached through
// StartFrame.
func (s *Scene) OnEvent(e event.Event) {
	if e == nil {
		return
	}

	s.controller.OnEvent(e)

	switch e.Type() {
	case TypeRemoveFromGame:
		if re, ok := e.(RemoveFromGameEvent); ok {
			s.remove(re.Object)
		}
	case TypeAddToGame:
		if ae, ok := e.(AddToGameEvent); ok {
			s.add(ae.Object)
		}
	case TypeClearScene:
		s.clear()
	case event.TypeWindowResize:
		if re, ok := e.(event.WindowResizeEvent); ok && re.Height > 0 {
			s.camera.SetAspectRatio(float32(re.Width) / float32(re.Height))
		}
	}

	for _, r := range s.forward {
		r.OnEvent(e)
	}
}

// Update advances every object in order, then the camera.
func (s *Scene) Update(dt float64) {
	s.Each(func(o Object) {
		o.Update(dt)
	})
	s.camera.Update(dt)
}

// Draw draws every object in order.
func (s *Scene) Draw(dst *ebiten.Image) {
	s.Each(func(o Object) {
		o.Draw(dst, s.camera)
	})
}

// Each calls fn for every object in order. fn must not add or remove objects
// directly.
func (s *Scene) Each(fn func(o Object)) {
	s.iterating++
	defer func() { s.iterating-- }()
	for _, o := range s.objects {
		fn(o)
	}
}

// Objects returns a copy of the object list.
func (s *Scene) Objects() []Object {
	return slices.Clone(s.objects)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (Object, bool) {
	for _, o := range s.objects {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

// Close destroys every object, then drops any events still queued without
// dispatching them. It returns the number of dropped events.
func (s *Scene) Close() int {
	if s.iterating > 0 {
		panic(ErrMutateDuringIteration)
	}
	for _, o := range s.objects {
		destroy(o)
	}
	clear(s.objects)
	s.objects = nil
	return s.events.Close()
}

func (s *Scene) add(o Object) {
	if o == nil {
		return
	}
	if s.iterating > 0 {
		panic(ErrMutateDuringIteration)
	}
	s.objects = append(s.objects, o)
}

func (s *Scene) remove(o Object) {
	if o == nil {
		return
	}
	if s.iterating > 0 {
		panic(ErrMutateDuringIteration)
	}
	i := slices.Index(s.objects, o)
	if i < 0 {
		log.Printf("scene: remove %q: not in scene", o.Name())
		return
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	s.camera.Unfollow(o)
	destroy(o)
}

func (s *Scene) clear() {
	if s.iterating > 0 {
		panic(ErrMutateDuringIteration)
	}
	objects := s.objects
	s.objects = nil
	for _, o := range objects {
		s.camera.Unfollow(o)
		destroy(o)
	}
}

func destroy(o Object) {
	if d, ok := o.(Destroyer); ok {
		d.Destroy()
	}
}
