package obj

import "github.com/milk9111/sandbox/event"

const (
	TypeRemoveFromGame event.Type = "remove_from_game"
	TypeAddToGame      event.Type = "add_to_game"
	TypeClearScene     event.Type = "clear_scene"
)

// RemoveFromGameEvent asks the scene to drop Object during the next dispatch.
type RemoveFromGameEvent struct {
	Object Object
}

func (RemoveFromGameEvent) Type() event.Type { return TypeRemoveFromGame }

// AddToGameEvent asks the scene to append Object during the next dispatch.
type AddToGameEvent struct {
	Object Object
}

func (AddToGameEvent) Type() event.Type { return TypeAddToGame }

// ClearSceneEvent asks the scene to drop every object it holds when the
// event is dispatched, including objects added earlier in the same batch.
type ClearSceneEvent struct{}

func (ClearSceneEvent) Type() event.Type { return TypeClearScene }
