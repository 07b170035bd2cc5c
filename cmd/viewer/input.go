package main

import (
	"voxmesh/internal/logging"
	"voxmesh/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const orbitSensitivity = 0.3

func setupInputHandlers(window *glfw.Window, state *viewerState) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		state.dragging = action == glfw.Press
		state.lastX, state.lastY = w.GetCursorPos()
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !state.dragging {
			return
		}
		dx := float32(xpos - state.lastX)
		dy := float32(ypos - state.lastY)
		state.lastX, state.lastY = xpos, ypos
		state.camera.Orbit(dx*orbitSensitivity, dy*orbitSensitivity)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff > 0 {
			state.camera.Zoom(0.9)
		} else if yoff < 0 {
			state.camera.Zoom(1.1)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF:
			state.wireframe = !state.wireframe
		case glfw.Key1:
			selectStrategy(state, meshing.StrategyNaive)
		case glfw.Key2:
			selectStrategy(state, meshing.StrategyCulled)
		case glfw.Key3:
			selectStrategy(state, meshing.StrategyGreedy)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if height > 0 {
			state.camera.AspectRatio = float32(width) / float32(height)
		}
	})
}

func selectStrategy(state *viewerState, s meshing.Strategy) {
	state.strategy = s
	logging.LogDebug("strategy -> %s", s)
}
