package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player PlayerConfig `json:"player"`
}

type PlayerConfig struct {
	ID         string                     `json:"id"`
	Body       XY                         `json:"body"` // box size in world units
	Animations map[string]AnimationConfig `json:"animations"`
	HookColor  string                     `json:"hookColor"`
}

type AnimationConfig struct {
	Color  string `json:"color"` // debug fill, "#rrggbb"
	Row    int    `json:"row"`
	Frames int    `json:"frames"`
	FPS    int    `json:"fps"`
}
