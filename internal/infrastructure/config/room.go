package config

// RoomConfig is the root config for rooms/<name>.yaml
type RoomConfig struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Next        string                       `yaml:"next"`
	FlipX       bool                         `yaml:"flipX"`
	Layers      LayersConfig                 `yaml:"layers"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
	Spinners    []SpinnerConfig              `yaml:"spinners"`
}

type LayersConfig struct {
	Collision []string `yaml:"collision"`
}

type TileMappingConfig struct {
	Type string `yaml:"type"`
}

// SpinnerConfig places a rotating hook target. X and Y are world units
// measured from the room's bottom-left corner.
type SpinnerConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Radius    float64 `yaml:"radius"`
	Clockwise bool    `yaml:"clockwise"`
	Speed     float64 `yaml:"speed"`
}
