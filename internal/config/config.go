// Package config handles simulation configuration loading and management.
package config

// Config holds all softmesh settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Body       BodyConfig       `yaml:"body"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the driver loop settings.
type SimulationConfig struct {
	FrameRate int     `yaml:"frame_rate"` // rendered frames per second
	Substeps  int     `yaml:"substeps"`   // integrator substeps per frame
	Gravity   float32 `yaml:"gravity"`    // world gravity along -Y
	Ticks     int     `yaml:"ticks"`      // headless run length in frames
	Mesh      string  `yaml:"mesh"`       // OBJ file path; empty uses a builtin shape
	Shape     string  `yaml:"shape"`      // builtin shape: "cube" or "sphere"
}

// BodyConfig holds the soft-body model options. Every recognized option
// is enumerated here; Default documents each option's default value.
type BodyConfig struct {
	Type              string  `yaml:"type"`               // mass_spring | pressure | hybrid_shell
	Pressure          float32 `yaml:"pressure"`           // pressure coefficient
	Stiffness         float32 `yaml:"stiffness"`          // structural spring stiffness
	Damping           float32 `yaml:"damping"`            // structural spring damping
	PointMass         float32 `yaml:"point_mass"`         // mass per particle
	PointRadius       float32 `yaml:"point_radius"`       // collider radius per particle
	PointDamping      float32 `yaml:"point_damping"`      // linear damping per particle
	Offset            float32 `yaml:"offset"`             // inner shell offset (hybrid only)
	CouplingStiffness float32 `yaml:"coupling_stiffness"` // inner/outer coupling spring stiffness
	CouplingDamping   float32 `yaml:"coupling_damping"`   // inner/outer coupling spring damping
	PressureMode      string  `yaml:"pressure_mode"`      // legacy | distributed
}

// ViewerConfig holds wireframe viewer settings.
type ViewerConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			FrameRate: 60,
			Substeps:  2,
			Gravity:   0,
			Ticks:     600,
			Mesh:      "",
			Shape:     "cube",
		},
		Body: BodyConfig{
			Type:              "pressure",
			Pressure:          50,
			Stiffness:         200,
			Damping:           0.4,
			PointMass:         0.05,
			PointRadius:       0.01,
			PointDamping:      0.3,
			Offset:            0.2,
			CouplingStiffness: 200,
			CouplingDamping:   0.4,
			PressureMode:      "legacy",
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
