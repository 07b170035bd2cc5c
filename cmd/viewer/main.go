package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/graphics"
	"voxmesh/internal/logging"
	"voxmesh/internal/meshing"
	"voxmesh/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	winW = 900
	winH = 600
)

func init() {
	runtime.LockOSThread()
}

// viewerState is shared between the render loop and GLFW callbacks, all on the main thread.
type viewerState struct {
	camera    *graphics.Camera
	meshes    map[meshing.Strategy]*graphics.GPUMesh
	buffers   map[meshing.Strategy]*meshing.MeshBuffer
	strategy  meshing.Strategy
	wireframe bool
	dragging  bool
	lastX     float64
	lastY     float64
}

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Apply(*settings)
	if lvl, err := logging.ParseLevel(settings.LogLevel); err == nil {
		logging.SetLevel(lvl)
	}

	if err := run(config.Current()); err != nil {
		logging.LogError("viewer: %v", err)
		os.Exit(1)
	}
}

func run(s config.Settings) error {
	strategy, err := meshing.ParseStrategy(s.Strategy)
	if err != nil {
		return err
	}
	gen, err := world.NewGenerator(s.Generator, s.Seed, s.Density)
	if err != nil {
		return err
	}
	// Generation completes before any meshing starts.
	chunk, err := world.Generate(world.ChunkCoord{}, s.ChunkSize, gen)
	if err != nil {
		return err
	}
	logging.LogInfo("generated chunk D=%d with %d blocks (%s)", s.ChunkSize, chunk.Grid.Count(), s.Generator)

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return err
	}

	shader, err := graphics.NewShader(graphics.ChunkVertexShader, graphics.ChunkFragmentShader)
	if err != nil {
		return err
	}
	defer shader.Delete()

	center := float32(s.ChunkSize) / 2
	state := &viewerState{
		camera:   graphics.NewCamera(winW, winH, mgl32.Vec3{center, center / 2, center}, float32(s.ChunkSize)*2),
		meshes:   make(map[meshing.Strategy]*graphics.GPUMesh),
		buffers:  make(map[meshing.Strategy]*meshing.MeshBuffer),
		strategy: strategy,
	}
	for _, st := range []meshing.Strategy{meshing.StrategyNaive, meshing.StrategyCulled, meshing.StrategyGreedy} {
		m, _ := meshing.New(st)
		buf := m.Mesh(chunk.Grid)
		state.buffers[st] = buf
		state.meshes[st] = graphics.UploadMesh(buf)
		logging.LogInfo("%-6s %7d vertices %7d indices %6d quads", st, buf.VertexCount(), buf.IndexCount(), buf.QuadCount())
	}
	defer func() {
		for _, m := range state.meshes {
			m.Delete()
		}
	}()

	setupInputHandlers(window, state)
	runLoop(window, shader, state)
	return nil
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "voxmesh", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}
	glfw.SwapInterval(1)

	return window, nil
}

func runLoop(window *glfw.Window, shader *graphics.Shader, state *viewerState) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.35, 0.35, 0.35, 1.0)

	lastTitle := time.Now()
	for !window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if state.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}

		shader.Use()
		shader.SetMatrix4("projection", state.camera.GetProjectionMatrix())
		shader.SetMatrix4("view", state.camera.GetViewMatrix())
		shader.SetMatrix4("model", mgl32.Ident4())
		shader.SetVector3("lightDir", mgl32.Vec3{-0.4, -1.0, -0.3})
		shader.SetVector3("baseColor", mgl32.Vec3{0.2, 0.5, 0.2})
		if state.strategy == meshing.StrategyGreedy {
			shader.SetFloat("gridLines", 1)
		} else {
			shader.SetFloat("gridLines", 0)
		}
		state.meshes[state.strategy].Draw()

		if time.Since(lastTitle) > 250*time.Millisecond {
			buf := state.buffers[state.strategy]
			window.SetTitle(fmt.Sprintf("voxmesh - %s - %d vertices, %d triangles", state.strategy, buf.VertexCount(), buf.TriangleCount()))
			lastTitle = time.Now()
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
}
