package state

// GameState represents the current state of a room scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateRoomClear
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateRoomClear:
		return "RoomClear"
	default:
		return "Unknown"
	}
}

// ID identifies a player state
type ID int

const (
	Normal ID = iota
	Swing
	Zip
	Bonk
	Death
	GoalReached
)

// String returns the string representation of the player state
func (id ID) String() string {
	switch id {
	case Normal:
		return "Normal"
	case Swing:
		return "Swing"
	case Zip:
		return "Zip"
	case Bonk:
		return "Bonk"
	case Death:
		return "Death"
	case GoalReached:
		return "GoalReached"
	default:
		return "Unknown"
	}
}
