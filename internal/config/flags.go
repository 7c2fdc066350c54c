package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMesh     = flag.String("mesh", "", "Path to an OBJ mesh")
	flagShape    = flag.String("shape", "", "Builtin shape (cube, sphere)")
	flagType     = flag.String("type", "", "Body type (mass_spring, pressure, hybrid_shell)")
	flagTicks    = flag.Int("ticks", 0, "Number of frames to simulate (headless)")
	flagPressure = flag.Float64("pressure", -1, "Pressure coefficient override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Simulation.Mesh = *flagMesh
	}
	if *flagShape != "" {
		cfg.Simulation.Shape = *flagShape
	}
	if *flagType != "" {
		cfg.Body.Type = *flagType
	}
	if *flagTicks > 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagPressure >= 0 {
		cfg.Body.Pressure = float32(*flagPressure)
	}
}
