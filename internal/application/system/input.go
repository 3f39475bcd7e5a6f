package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// Action names understood by every InputSource.
const (
	ActionMove    = "Move"
	ActionJump    = "Jump"
	ActionGrapple = "Grapple"
)

// InputSource is a device-agnostic view of the controls for one frame.
// ButtonDown and ButtonUp are true only on the frame the edge happened.
type InputSource interface {
	Axis(name string) entity.Vec2
	ButtonDown(name string) bool
	ButtonUp(name string) bool
	Button(name string) bool
}

// InputState holds the current input state
type InputState struct {
	Move entity.Vec2

	Jump         bool
	JumpPressed  bool
	JumpReleased bool

	Grapple         bool
	GrapplePressed  bool
	GrappleReleased bool
}

// Sample reads one frame of input from src.
func Sample(src InputSource) InputState {
	return InputState{
		Move:            src.Axis(ActionMove),
		Jump:            src.Button(ActionJump),
		JumpPressed:     src.ButtonDown(ActionJump),
		JumpReleased:    src.ButtonUp(ActionJump),
		Grapple:         src.Button(ActionGrapple),
		GrapplePressed:  src.ButtonDown(ActionGrapple),
		GrappleReleased: src.ButtonUp(ActionGrapple),
	}
}

// InputSystem handles player input
type InputSystem struct {
	source InputSource
}

// NewInputSystem creates a new input system
func NewInputSystem(src InputSource) *InputSystem {
	return &InputSystem{source: src}
}

// Source returns the device currently feeding the system.
func (s *InputSystem) Source() InputSource {
	return s.source
}

// SetSource swaps the input device, e.g. to start a replay.
func (s *InputSystem) SetSource(src InputSource) {
	s.source = src
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	if s.source == nil {
		return InputState{}
	}
	return Sample(s.source)
}

// KeyBindings maps actions to keyboard keys.
type KeyBindings struct {
	Left, Right, Up, Down []ebiten.Key
	Jump, Grapple         []ebiten.Key
}

// DefaultKeyBindings returns arrows/WASD movement, Z/Space jump and
// X/Shift grapple.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:    []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:   []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Up:      []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Down:    []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Jump:    []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace},
		Grapple: []ebiten.Key{ebiten.KeyX, ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	}
}

// KeyboardInput reads the ebiten keyboard.
type KeyboardInput struct {
	Bindings KeyBindings
}

// NewKeyboardInput creates a keyboard source with the default bindings.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{Bindings: DefaultKeyBindings()}
}

func (k *KeyboardInput) Axis(name string) entity.Vec2 {
	if name != ActionMove {
		return entity.Vec2{}
	}
	return entity.Vec2{
		X: axisValue(anyPressed(k.Bindings.Left), anyPressed(k.Bindings.Right)),
		Y: axisValue(anyPressed(k.Bindings.Down), anyPressed(k.Bindings.Up)),
	}
}

func (k *KeyboardInput) ButtonDown(name string) bool {
	for _, key := range k.keys(name) {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (k *KeyboardInput) ButtonUp(name string) bool {
	for _, key := range k.keys(name) {
		if inpututil.IsKeyJustReleased(key) {
			return true
		}
	}
	return false
}

func (k *KeyboardInput) Button(name string) bool {
	return anyPressed(k.keys(name))
}

func (k *KeyboardInput) keys(name string) []ebiten.Key {
	switch name {
	case ActionJump:
		return k.Bindings.Jump
	case ActionGrapple:
		return k.Bindings.Grapple
	default:
		return nil
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// axisValue folds two opposing buttons into -1, 0 or 1.
func axisValue(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}
