package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// Replayer plays recorded frames back as an input source. It starts
// before the first frame; call Advance once per simulated frame before
// sampling.
type Replayer struct {
	data  ReplayData
	frame int
}

var _ system.InputSource = (*Replayer)(nil)

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data, frame: -1}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Dt <= 0 {
		return nil, fmt.Errorf("invalid replay %s: dt must be positive", filename)
	}

	return &data, nil
}

// Advance moves to the next recorded frame. It reports false once the
// recording is exhausted; the source then reads as idle.
func (r *Replayer) Advance() bool {
	if r.frame < len(r.data.Frames) {
		r.frame++
	}
	return r.frame < len(r.data.Frames)
}

func (r *Replayer) current() FrameInput {
	if r.frame < 0 || r.frame >= len(r.data.Frames) {
		return FrameInput{}
	}
	return r.data.Frames[r.frame]
}

// Axis implements system.InputSource.
func (r *Replayer) Axis(name string) entity.Vec2 {
	if name != system.ActionMove {
		return entity.Vec2{}
	}
	fi := r.current()
	return entity.Vec2{X: fi.X, Y: fi.Y}
}

// ButtonDown implements system.InputSource.
func (r *Replayer) ButtonDown(name string) bool {
	fi := r.current()
	switch name {
	case system.ActionJump:
		return fi.JP
	case system.ActionGrapple:
		return fi.GP
	}
	return false
}

// ButtonUp implements system.InputSource.
func (r *Replayer) ButtonUp(name string) bool {
	fi := r.current()
	switch name {
	case system.ActionJump:
		return fi.JR
	case system.ActionGrapple:
		return fi.GR
	}
	return false
}

// Button implements system.InputSource.
func (r *Replayer) Button(name string) bool {
	fi := r.current()
	switch name {
	case system.ActionJump:
		return fi.J
	case system.ActionGrapple:
		return fi.G
	}
	return false
}

// CurrentFrame returns the index of the frame being played, -1 before
// the first Advance.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Room returns the room the session was recorded in.
func (r *Replayer) Room() string {
	return r.data.Room
}

// Dt returns the fixed step the session was recorded with.
func (r *Replayer) Dt() float64 {
	return r.data.Dt
}

// Reset rewinds to before the first frame
func (r *Replayer) Reset() {
	r.frame = -1
}
