package obj

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/event"
)

// fakeObject records how the scene drives it.
type fakeObject struct {
	*GameObject
	updates   int
	draws     int
	destroyed int
	onUpdate  func(o *fakeObject)
	log       *[]string
}

func newFake(name string, log *[]string) *fakeObject {
	return &fakeObject{GameObject: NewGameObject(name, mgl32.Vec3{}, nil, nil), log: log}
}

func (f *fakeObject) Update(dt float64) {
	f.updates++
	if f.log != nil {
		*f.log = append(*f.log, "update "+f.Name())
	}
	if f.onUpdate != nil {
		f.onUpdate(f)
	}
}

func (f *fakeObject) Draw(dst *ebiten.Image, cam *Camera) {
	f.draws++
	if f.log != nil {
		*f.log = append(*f.log, "draw "+f.Name())
	}
}

func (f *fakeObject) Destroy() {
	f.destroyed++
}

func names(objs []Object) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func runFrame(s *Scene, dt float64) {
	s.StartFrame()
	s.Update(dt)
	s.Draw(nil)
}

func TestSceneFrameOrder(t *testing.T) {
	var log []string
	s := NewScene(nil, nil, nil)
	s.Add(newFake("a", &log))
	s.Add(newFake("b", &log))

	runFrame(s, 1.0/60.0)

	want := []string{"update a", "update b", "draw a", "draw b"}
	if !equalStrings(log, want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
}

func TestSceneDeferredRemoval(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := newFake("a", nil)
	x := newFake("x", nil)
	b := newFake("b", nil)
	s.Add(a)
	s.Add(x)
	s.Add(b)

	// x asks to be removed on its second update.
	x.onUpdate = func(o *fakeObject) {
		if o.updates == 2 {
			s.RequestRemove(o)
		}
	}

	runFrame(s, 0.1)
	runFrame(s, 0.1)

	// Requested during frame 2: still present and iterated this frame.
	if s.Len() != 3 || x.updates != 2 || x.draws != 2 || x.destroyed != 0 {
		t.Fatalf("x should survive the frame it asked to leave: len=%d updates=%d draws=%d destroyed=%d",
			s.Len(), x.updates, x.draws, x.destroyed)
	}

	runFrame(s, 0.1)

	if got := names(s.Objects()); !equalStrings(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}
	if x.updates != 2 || x.draws != 2 {
		t.Fatalf("removed object must not be iterated again: updates=%d draws=%d", x.updates, x.draws)
	}
	if x.destroyed != 1 {
		t.Fatalf("expected x destroyed once, got %d", x.destroyed)
	}
	if a.updates != 3 || b.updates != 3 {
		t.Fatalf("other objects keep updating: a=%d b=%d", a.updates, b.updates)
	}
}

func TestSceneRemoveUnknownAndTwice(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := newFake("a", nil)
	s.Add(a)

	s.RequestRemove(a)
	s.RequestRemove(a)
	s.RequestRemove(newFake("stranger", nil))
	s.StartFrame()

	if s.Len() != 0 {
		t.Fatalf("expected empty scene, got %v", names(s.Objects()))
	}
	if a.destroyed != 1 {
		t.Fatalf("expected one destroy, got %d", a.destroyed)
	}
}

func TestSceneRemovesFirstMatchOnly(t *testing.T) {
	s := NewScene(nil, nil, nil)
	dup := newFake("dup", nil)
	other := newFake("dup", nil)
	s.Add(dup)
	s.Add(other)

	s.RequestRemove(other)
	s.StartFrame()

	objs := s.Objects()
	if len(objs) != 1 || objs[0] != Object(dup) {
		t.Fatalf("removal must match identity, not name")
	}
}

func TestSceneSpawn(t *testing.T) {
	s := NewScene(nil, nil, nil)
	spawner := newFake("spawner", nil)
	s.Add(spawner)

	spawned := newFake("child", nil)
	spawner.onUpdate = func(o *fakeObject) {
		if o.updates == 1 {
			s.Spawn(spawned)
		}
	}

	runFrame(s, 0.1)
	if s.Len() != 1 || spawned.updates != 0 {
		t.Fatalf("spawned object must wait for the next dispatch")
	}

	runFrame(s, 0.1)
	if got := names(s.Objects()); !equalStrings(got, []string{"spawner", "child"}) {
		t.Fatalf("expected [spawner child], got %v", got)
	}
	if spawned.updates != 1 {
		t.Fatalf("spawned object should update once, got %d", spawned.updates)
	}
}

func TestSceneMutationDuringIterationPanics(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *Scene, o Object)
	}{
		{"add", func(s *Scene, o Object) { s.Add(newFake("late", nil)) }},
		{"dispatch_remove", func(s *Scene, o Object) { s.OnEvent(RemoveFromGameEvent{Object: o}) }},
		{"dispatch_add", func(s *Scene, o Object) { s.OnEvent(AddToGameEvent{Object: newFake("late", nil)}) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScene(nil, nil, nil)
			a := newFake("a", nil)
			s.Add(a)
			a.onUpdate = func(o *fakeObject) { c.mutate(s, o) }

			func() {
				defer func() {
					if v := recover(); v != ErrMutateDuringIteration {
						t.Fatalf("expected ErrMutateDuringIteration, got %v", v)
					}
				}()
				s.Update(0.1)
			}()

			if s.Len() != 1 {
				t.Fatalf("object list must be unchanged, got %v", names(s.Objects()))
			}
			// The guard is released after the panic.
			a.onUpdate = nil
			s.Add(newFake("b", nil))
			if s.Len() != 2 {
				t.Fatalf("expected Add to work after the panic")
			}
		})
	}
}

func TestSceneResizeSetsAspect(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Events().Add(event.WindowResizeEvent{Width: 1600, Height: 800})
	s.StartFrame()
	if got := s.Camera().AspectRatio(); got != 2 {
		t.Fatalf("expected aspect 2, got %v", got)
	}

	s.Events().Add(event.WindowResizeEvent{Width: 1600, Height: 0})
	s.StartFrame()
	if got := s.Camera().AspectRatio(); got != 2 {
		t.Fatalf("zero height must be ignored, got %v", got)
	}
}

func TestSceneForwardsAfterHandling(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := newFake("a", nil)
	s.Add(a)

	var seen []event.Type
	var lenAtRemove int
	s.Forward(event.ReceiverFunc(func(e event.Event) {
		seen = append(seen, e.Type())
		if e.Type() == TypeRemoveFromGame {
			lenAtRemove = s.Len()
		}
	}))
	s.Forward(nil)

	s.Events().Add(event.CharEvent{Char: 'h'})
	s.RequestRemove(a)
	s.Events().Add(event.KeyDown(int(ebiten.KeyZ)))
	s.StartFrame()

	want := []event.Type{event.TypeChar, TypeRemoveFromGame, event.TypeInput}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
	if lenAtRemove != 0 {
		t.Fatalf("forwarded consumers should see the removal already applied")
	}
	if !s.Controller().WasPressed(MaskAction) {
		t.Fatalf("scene should feed the controller")
	}
}

func TestSceneCloseDestroysAndDiscards(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := newFake("a", nil)
	b := newFake("b", nil)
	s.Add(a)
	s.Add(b)

	received := 0
	s.Forward(event.ReceiverFunc(func(event.Event) { received++ }))
	s.RequestRemove(a)
	s.Events().Add(event.CharEvent{Char: 'x'})

	if n := s.Close(); n != 2 {
		t.Fatalf("expected 2 discarded events, got %d", n)
	}
	if a.destroyed != 1 || b.destroyed != 1 {
		t.Fatalf("expected every object destroyed once: a=%d b=%d", a.destroyed, b.destroyed)
	}
	if received != 0 {
		t.Fatalf("discarded events must not be delivered")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty scene after Close")
	}
}

func TestSceneFind(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Add(newFake("a", nil))
	s.Add(newFake("b", nil))
	if o, ok := s.Find("b"); !ok || o.Name() != "b" {
		t.Fatalf("expected to find b")
	}
	if _, ok := s.Find("c"); ok {
		t.Fatalf("unexpected c")
	}
}

func TestSceneRemovalStopsCameraFollow(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := newFake("a", nil)
	a.SetPosition(mgl32.Vec3{3, 4, 0})
	s.Add(a)
	s.Camera().SetSmooth(0)
	s.Camera().Follow(a)

	s.Update(0.1)
	if p := s.Camera().Position(); p.X() != 3 || p.Y() != 4 {
		t.Fatalf("camera should snap to target, got %v", p)
	}

	s.RequestRemove(a)
	s.StartFrame()
	a.SetPosition(mgl32.Vec3{9, 9, 0})
	s.Update(0.1)
	if p := s.Camera().Position(); p.X() != 3 || p.Y() != 4 {
		t.Fatalf("camera should stop following a removed object, got %v", p)
	}
}

func TestSceneClearIncludesPendingSpawns(t *testing.T) {
	s := NewScene(nil, nil, nil)
	kept := newFake("old", nil)
	s.Add(kept)
	s.Camera().Follow(kept)

	// spawned before the clear is queued: added, then cleared in the same
	// dispatch
	pending := newFake("pending", nil)
	s.Spawn(pending)
	s.RequestClear()
	fresh := newFake("fresh", nil)
	s.Spawn(fresh)

	s.StartFrame()

	if got := names(s.Objects()); !equalStrings(got, []string{"fresh"}) {
		t.Fatalf("objects after clear = %v, want [fresh]", got)
	}
	if kept.destroyed != 1 || pending.destroyed != 1 {
		t.Fatalf("destroyed old=%d pending=%d, want 1 each", kept.destroyed, pending.destroyed)
	}
	if fresh.destroyed != 0 {
		t.Fatalf("fresh object destroyed")
	}
	s.Camera().SetSmooth(0)
	s.Camera().SetPosition(mgl32.Vec3{1, 1, 0})
	s.Update(1)
	if s.Camera().Position() != (mgl32.Vec3{1, 1, 0}) {
		t.Fatalf("camera still follows a cleared object")
	}
}

func TestSceneClearDuringIterationPanics(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Add(newFake("a", nil))
	defer func() {
		if r := recover(); r != ErrMutateDuringIteration {
			t.Fatalf("recovered %v, want ErrMutateDuringIteration", r)
		}
	}()
	s.Each(func(Object) {
		s.OnEvent(ClearSceneEvent{})
	})
}
