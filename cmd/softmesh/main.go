// Package main is the headless softmesh simulation driver.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/config"
	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/internal/engine/softbody"
	"github.com/Faultbox/softmesh/internal/logger"
	"github.com/Faultbox/softmesh/pkg/formats"
	"github.com/Faultbox/softmesh/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== softmesh ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("simulation finished")
}

func run(cfg *config.Config) error {
	vertices, faces, err := loadGeometry(cfg.Simulation)
	if err != nil {
		return err
	}

	bodyCfg, err := softbody.FromBodyConfig(cfg.Body)
	if err != nil {
		return err
	}

	body, err := softbody.Build(vertices, faces, bodyCfg)
	if err != nil {
		return err
	}

	world := rigid.NewWorld(math.Vec3{Y: -cfg.Simulation.Gravity})
	if err := body.Attach(world); err != nil {
		return err
	}
	defer body.Detach()

	logger.Info("body attached",
		zap.String("type", bodyCfg.Type.String()),
		zap.Int("particles", world.Count()),
		zap.Int("triangles", len(body.Triangles())),
	)

	substeps := cfg.Simulation.Substeps
	if substeps < 1 {
		substeps = 1
	}
	dt := 1.0 / (float32(cfg.Simulation.FrameRate) * float32(substeps))

	logEvery := cfg.Simulation.FrameRate
	if logEvery < 1 {
		logEvery = 60
	}

	for tick := 0; tick < cfg.Simulation.Ticks; tick++ {
		for s := 0; s < substeps; s++ {
			world.Step(dt)
		}
		body.Sync()

		if (tick+1)%logEvery == 0 || tick == cfg.Simulation.Ticks-1 {
			logShells(tick+1, body)
		}
	}

	return nil
}

// loadGeometry returns the initial vertex coordinates and 1-based face
// index lists, either from an OBJ file or a builtin shape.
func loadGeometry(sim config.SimulationConfig) ([]float32, [][]int, error) {
	if sim.Mesh != "" {
		obj, err := formats.LoadOBJ(sim.Mesh)
		if err != nil {
			return nil, nil, fmt.Errorf("load mesh %q: %w", sim.Mesh, err)
		}
		logger.Info("mesh loaded",
			zap.String("path", sim.Mesh),
			zap.Int("vertices", obj.VertexCount()),
			zap.Int("faces", len(obj.Faces)),
		)
		return obj.Vertices, obj.Faces, nil
	}

	switch sim.Shape {
	case "", "cube":
		v, f := mesh.UnitCube()
		return v, f, nil
	case "sphere":
		v, f := mesh.Icosphere(0.5, 2)
		return v, f, nil
	default:
		return nil, nil, fmt.Errorf("unknown shape %q", sim.Shape)
	}
}

func logShells(tick int, body softbody.Body) {
	for i, shell := range body.Shells() {
		logger.Info("state",
			zap.Int("tick", tick),
			zap.Int("shell", i),
			zap.Float32("volume", shell.Volume()),
			zap.Float32("area", shell.Area()),
		)
	}
}
