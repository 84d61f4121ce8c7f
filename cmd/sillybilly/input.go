package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// keyTilt is the tilt in degrees while an arrow key is held.
	keyTilt = 30
	// stickTilt is the tilt in degrees at full gamepad stick deflection.
	stickTilt = 45

	stickDeadZone = 0.15
)

var actionKeys = map[int32]string{
	rl.KeyR: "reset",
	rl.KeyT: "throw",
	rl.KeyP: "punch",
	rl.KeyK: "kick",
	rl.KeyS: "squeeze",
}

var presetKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree}

func retryPressed() bool {
	return rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)
}

// handleInput maps keys, mouse and gamepad to actions. The console takes the keyboard while open.
func (a *App) handleInput() {
	if a.term.IsOpen() {
		return
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		a.dbg.Toggle()
	}
	for key, action := range actionKeys {
		if rl.IsKeyPressed(key) {
			a.do(action)
		}
	}
	presets := a.sim.Controller.Presets()
	for i, key := range presetKeys {
		if i < len(presets) && rl.IsKeyPressed(key) {
			if err := a.applyPreset(presets[i].Name); err != nil {
				a.log.Log(err.Error())
			}
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.click(rl.GetMousePosition())
	}
	if beta, gamma := tiltInput(); beta != 0 || gamma != 0 {
		a.sim.Controller.Tilt(beta, gamma)
	}
	a.scene.HandleInput()
}

// click presses a HUD button if one is under pos, else arms tilt and taps the doll.
func (a *App) click(pos rl.Vector2) {
	target, ok := a.hud.Click(pos.X, pos.Y, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	if ok {
		switch {
		case target.Action != "":
			a.do(target.Action)
		case target.Preset != "":
			if err := a.applyPreset(target.Preset); err != nil {
				a.log.Log(err.Error())
			}
		}
		return
	}
	a.sim.Controller.ArmTilt()
	a.sim.Controller.Tap(pos.X, pos.Y)
}

// tiltInput returns front-back (beta) and left-right (gamma) tilt in degrees from the arrow keys
// or the first gamepad's left stick.
func tiltInput() (beta, gamma float32) {
	if rl.IsKeyDown(rl.KeyUp) {
		beta += keyTilt
	}
	if rl.IsKeyDown(rl.KeyDown) {
		beta -= keyTilt
	}
	if rl.IsKeyDown(rl.KeyRight) {
		gamma += keyTilt
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		gamma -= keyTilt
	}
	if rl.IsGamepadAvailable(0) {
		x := rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftX)
		y := rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftY)
		gamma += stick(x)
		beta -= stick(y)
	}
	return beta, gamma
}

func stick(v float32) float32 {
	if v > -stickDeadZone && v < stickDeadZone {
		return 0
	}
	return v * stickTilt
}
