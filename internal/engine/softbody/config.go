package softbody

import (
	"fmt"

	"github.com/Faultbox/softmesh/internal/config"
)

// Type selects the structural model of a body.
type Type int

// Body types.
const (
	// MassSpring connects every vertex pair within each face and applies
	// no pressure force.
	MassSpring Type = iota
	// Pressure connects only face perimeters on quads and resists
	// compression with an internal pressure force.
	Pressure
	// HybridShell nests two pressurized shells joined by coupling
	// springs; construct it with NewHybrid.
	HybridShell
)

// String returns the config-file name of the type.
func (t Type) String() string {
	switch t {
	case MassSpring:
		return "mass_spring"
	case Pressure:
		return "pressure"
	case HybridShell:
		return "hybrid_shell"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps a config string onto a body type.
func ParseType(s string) (Type, error) {
	switch s {
	case "mass_spring":
		return MassSpring, nil
	case "pressure", "":
		return Pressure, nil
	case "hybrid_shell":
		return HybridShell, nil
	default:
		return Pressure, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// PressureMode selects how a triangle's pressure force is distributed
// over its vertices.
type PressureMode int

const (
	// PressureLegacy applies each triangle's full force vector to all
	// three of its vertices, triple-weighting the contribution. This is
	// the default.
	PressureLegacy PressureMode = iota
	// PressureDistributed applies one third of the triangle's force to
	// each vertex, the physically literal area-weighted distribution.
	PressureDistributed
)

// String returns the config-file name of the mode.
func (m PressureMode) String() string {
	if m == PressureDistributed {
		return "distributed"
	}
	return "legacy"
}

// ParsePressureMode maps a config string onto a pressure mode.
func ParsePressureMode(s string) (PressureMode, error) {
	switch s {
	case "legacy", "":
		return PressureLegacy, nil
	case "distributed":
		return PressureDistributed, nil
	default:
		return PressureLegacy, fmt.Errorf("%w: %q", ErrUnknownPressureMode, s)
	}
}

// Config is the explicit configuration record of a body. Every option is
// enumerated; DefaultConfig documents the defaults.
type Config struct {
	Type     Type
	Pressure float32

	Stiffness float32 // structural springs
	Damping   float32

	PointMass    float32 // per particle
	PointRadius  float32
	PointDamping float32

	Offset            float32 // hybrid shells only
	CouplingStiffness float32
	CouplingDamping   float32

	PressureMode PressureMode
}

// DefaultConfig returns the documented default options.
func DefaultConfig() Config {
	return Config{
		Type:              Pressure,
		Pressure:          50,
		Stiffness:         200,
		Damping:           0.4,
		PointMass:         0.05,
		PointRadius:       0.01,
		PointDamping:      0.3,
		Offset:            0.2,
		CouplingStiffness: 200,
		CouplingDamping:   0.4,
		PressureMode:      PressureLegacy,
	}
}

// FromBodyConfig converts the yaml configuration section into a typed
// Config, validating the enumerated options.
func FromBodyConfig(c config.BodyConfig) (Config, error) {
	typ, err := ParseType(c.Type)
	if err != nil {
		return Config{}, err
	}
	mode, err := ParsePressureMode(c.PressureMode)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Type:              typ,
		Pressure:          c.Pressure,
		Stiffness:         c.Stiffness,
		Damping:           c.Damping,
		PointMass:         c.PointMass,
		PointRadius:       c.PointRadius,
		PointDamping:      c.PointDamping,
		Offset:            c.Offset,
		CouplingStiffness: c.CouplingStiffness,
		CouplingDamping:   c.CouplingDamping,
		PressureMode:      mode,
	}, nil
}
