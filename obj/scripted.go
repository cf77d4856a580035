package obj

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Remover queues an object for removal.
type Remover interface {
	RequestRemove(o Object)
}

// ScriptedObject runs a tengo script every Update. The script sees dt, age,
// x, y and rotation as globals and may assign x, y, rotation and remove.
// Setting remove to true queues the object for removal; it keeps updating
// until the scene drops it on a later frame.
type ScriptedObject struct {
	*GameObject

	compiled *tengo.Compiled
	remover  Remover
	age      float64

	removeRequested bool
	failed          bool
}

func NewScriptedObject(base *GameObject, src []byte, remover Remover) (*ScriptedObject, error) {
	script := tengo.NewScript(src)
	for _, name := range []string{"dt", "age", "x", "y", "rotation"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("scripted: add %s: %w", name, err)
		}
	}
	if err := script.Add("remove", false); err != nil {
		return nil, fmt.Errorf("scripted: add remove: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripted: compile %s: %w", base.Name(), err)
	}

	return &ScriptedObject{GameObject: base, compiled: compiled, remover: remover}, nil
}

// Age is the number of seconds this object has been updated for.
func (s *ScriptedObject) Age() float64 {
	return s.age
}

// RemoveRequested reports whether the script has asked to be removed.
func (s *ScriptedObject) RemoveRequested() bool {
	return s.removeRequested
}

func (s *ScriptedObject) Update(dt float64) {
	if s.failed || s.compiled == nil {
		return
	}
	s.age += dt

	pos := s.Position()
	rot := s.Rotation()
	vars := map[string]any{
		"dt":       dt,
		"age":      s.age,
		"x":        float64(pos.X()),
		"y":        float64(pos.Y()),
		"rotation": float64(rot.Z()),
	}
	for name, v := range vars {
		if err := s.compiled.Set(name, v); err != nil {
			s.fail(err)
			return
		}
	}
	if err := s.compiled.Run(); err != nil {
		s.fail(err)
		return
	}

	pos[0] = float32(s.compiled.Get("x").Float())
	pos[1] = float32(s.compiled.Get("y").Float())
	rot[2] = float32(s.compiled.Get("rotation").Float())
	s.SetPosition(pos)
	s.SetRotation(rot)

	if s.compiled.Get("remove").Bool() && !s.removeRequested && s.remover != nil {
		s.removeRequested = true
		s.remover.RequestRemove(s)
	}
}

func (s *ScriptedObject) Destroy() {
	s.compiled = nil
}

func (s *ScriptedObject) fail(err error) {
	s.failed = true
	log.Printf("scripted: %s: %v", s.Name(), err)
}
