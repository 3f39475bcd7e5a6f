package replay

import (
	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// Version is written into every saved replay.
const Version = "2"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	X  float64 `json:"x,omitempty"`  // Move axis X
	Y  float64 `json:"y,omitempty"`  // Move axis Y
	J  bool    `json:"j,omitempty"`  // Jump held
	JP bool    `json:"jp,omitempty"` // JumpPressed
	JR bool    `json:"jr,omitempty"` // JumpReleased
	G  bool    `json:"g,omitempty"`  // Grapple held
	GP bool    `json:"gp,omitempty"` // GrapplePressed
	GR bool    `json:"gr,omitempty"` // GrappleReleased
}

// ReplayData contains all data needed to replay a session in one room
type ReplayData struct {
	Version   string       `json:"version"`
	Room      string       `json:"room"`
	Dt        float64      `json:"dt"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrameInput converts a sampled input state into its recorded form.
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		X:  in.Move.X,
		Y:  in.Move.Y,
		J:  in.Jump,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
		G:  in.Grapple,
		GP: in.GrapplePressed,
		GR: in.GrappleReleased,
	}
}

// InputState converts the recorded frame back into an input state.
func (fi FrameInput) InputState() system.InputState {
	return system.InputState{
		Move:            entity.Vec2{X: fi.X, Y: fi.Y},
		Jump:            fi.J,
		JumpPressed:     fi.JP,
		JumpReleased:    fi.JR,
		Grapple:         fi.G,
		GrapplePressed:  fi.GP,
		GrappleReleased: fi.GR,
	}
}
