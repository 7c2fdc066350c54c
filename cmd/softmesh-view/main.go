// Package main is the interactive wireframe viewer for soft bodies.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/config"
	"github.com/Faultbox/softmesh/internal/engine/camera"
	"github.com/Faultbox/softmesh/internal/engine/debug"
	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/internal/engine/shader"
	"github.com/Faultbox/softmesh/internal/engine/softbody"
	"github.com/Faultbox/softmesh/internal/engine/window"
	"github.com/Faultbox/softmesh/internal/logger"
	"github.com/Faultbox/softmesh/pkg/formats"
	"github.com/Faultbox/softmesh/pkg/math"
)

const lineVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
    gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `#version 410 core
uniform vec3 uColor;

out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
`

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== softmesh viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
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

	win, err := window.New(window.Config{
		Title:  "softmesh",
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init failed: %w", err)
	}

	program, err := shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)

	locView := shader.Uniform(program, "uView")
	locProjection := shader.Uniform(program, "uProjection")
	locColor := shader.Uniform(program, "uColor")

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)

	gl.Enable(gl.DEPTH_TEST)
	gl.LineWidth(1)

	cam := camera.New(body.Bounds().Center(), 3)

	substeps := cfg.Simulation.Substeps
	if substeps < 1 {
		substeps = 1
	}
	dt := 1.0 / (float32(cfg.Simulation.FrameRate) * float32(substeps))

	paused := false
	leftMouseDown := false

	running := true
	for running {
		stepOnce := false

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					running = false
				case sdl.K_SPACE:
					paused = !paused
				case sdl.K_n:
					stepOnce = true
				}

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					leftMouseDown = e.Type == sdl.MOUSEBUTTONDOWN
				}

			case *sdl.MouseMotionEvent:
				if leftMouseDown {
					cam.Rotate(float32(e.XRel)*0.01, float32(e.YRel)*0.01)
				}

			case *sdl.MouseWheelEvent:
				cam.Zoom(float32(e.Y) * -0.2)
			}
		}

		if !paused || stepOnce {
			for s := 0; s < substeps; s++ {
				world.Step(dt)
			}
			body.Sync()
		}

		width, height := win.GetSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.08, 0.08, 0.1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		gl.UseProgram(program)
		view := cam.View()
		projection := math.Perspective(0.9, float32(width)/float32(height), 0.01, 100)
		gl.UniformMatrix4fv(locView, 1, false, view.Ptr())
		gl.UniformMatrix4fv(locProjection, 1, false, projection.Ptr())

		lines := debug.LineVertices(body.SpringSegments())
		drawLines(vao, vbo, lines, locColor, math.Vec3{X: 0.4, Y: 0.9, Z: 0.5})

		box := debug.BoundsWireframe(body.Bounds(), 0.02)
		drawLines(vao, vbo, box, locColor, math.Vec3{X: 0.6, Y: 0.6, Z: 0.6})

		win.SetTitle(shellTitle(body, paused))
		win.SwapBuffers()
	}

	return nil
}

// drawLines streams a flat xyz line list into the shared VBO and draws it.
func drawLines(vao, vbo uint32, verts []float32, locColor int32, color math.Vec3) {
	if len(verts) == 0 {
		return
	}
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.Uniform3f(locColor, color.X, color.Y, color.Z)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindVertexArray(0)
}

func shellTitle(body softbody.Body, paused bool) string {
	title := "softmesh"
	for i, shell := range body.Shells() {
		title += fmt.Sprintf("  shell%d vol=%.4f", i, shell.Volume())
	}
	if paused {
		title += "  [paused]"
	}
	return title
}

func loadGeometry(sim config.SimulationConfig) ([]float32, [][]int, error) {
	if sim.Mesh != "" {
		obj, err := formats.LoadOBJ(sim.Mesh)
		if err != nil {
			return nil, nil, fmt.Errorf("load mesh %q: %w", sim.Mesh, err)
		}
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
