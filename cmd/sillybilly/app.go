package main

import (
	"context"
	"fmt"
	"time"

	"silly-billy/internal/agent"
	"silly-billy/internal/commands"
	"silly-billy/internal/debug"
	"silly-billy/internal/engineconfig"
	"silly-billy/internal/fonts"
	"silly-billy/internal/interact"
	"silly-billy/internal/llm"
	"silly-billy/internal/logger"
	"silly-billy/internal/scene"
	"silly-billy/internal/sim"
	"silly-billy/internal/terminal"
	"silly-billy/internal/tuning"
	"silly-billy/internal/ui"
)

const (
	// directorTimeout bounds one natural-language request.
	directorTimeout = 30 * time.Second
	// fontInstallTimeout bounds a Google Fonts lookup plus download.
	fontInstallTimeout = 2 * time.Minute
)

// actionOrder is the order of the HUD buttons.
var actionOrder = []string{"reset", "throw", "punch", "kick", "squeeze"}

// App wires the simulation to the window: input, HUD, console and overlays.
// Everything except the director and the tuning watcher runs on the main goroutine.
type App struct {
	log       *logger.Logger
	prefs     engineconfig.EnginePrefs
	prefsPath string
	tuning    tuning.Tuning
	random    interact.Random

	sim   *sim.Simulation
	scene *scene.Scene
	ui    *ui.Engine
	hud   *ui.HUD
	term  *terminal.Terminal
	dbg   *debug.Debug
	reg   *commands.Registry
	fonts *fonts.Installer

	// loadingFrames counts frames drawn on the loading screen; loading starts once it has been shown.
	loadingFrames int
	fontLoaded    bool
}

func newApp(log *logger.Logger, prefs engineconfig.EnginePrefs, tun tuning.Tuning, random interact.Random) *App {
	a := &App{
		log:       log,
		prefs:     prefs,
		prefsPath: engineconfig.EngineConfigPath,
		tuning:    tun,
		random:    random,
		sim:       sim.New(),
		scene:     scene.New(tun.Camera),
		ui:        ui.New(),
		dbg:       debug.New(),
		reg:       commands.NewRegistry(),
		fonts:     fonts.NewInstaller(),
	}
	a.hud = ui.NewHUD(a.ui, actionOrder)
	a.term = terminal.New(log, a.reg)
	a.term.GetViewContext = a.scene.ViewContext
	a.scene.SetGridVisible(prefs.GridVisible)
	a.dbg.SetShowFPS(prefs.ShowFPS)
	a.dbg.SetShowMemAlloc(prefs.ShowMemAlloc)
	a.dbg.Stats = a.sim.Stats
	registerCommands(a)
	return a
}

// connectDirector sends console free text to client. A nil client leaves the director off.
// The model is read on the main goroutine when the line is entered; the request runs in its own.
func (a *App) connectDirector(client llm.Client) {
	if client == nil {
		a.log.Log("no LLM key in environment; type help for commands")
		return
	}
	dir := agent.New(client)
	agent.RegisterSimHandlers(dir, a.sim, func(_ *sim.Simulation, name string) error {
		return a.applyPreset(name)
	}, a.reg, a.log)
	a.term.OnNaturalLanguage = func(line, view string) {
		model := a.prefs.AIModel
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), directorTimeout)
			defer cancel()
			summary, err := dir.Run(ctx, model, line, view)
			if err != nil {
				a.log.Logf("director: %v", err)
				return
			}
			a.log.Log(summary)
		}()
	}
}

// postTuning runs on the watcher goroutine and hands the new tuning to the frame loop.
func (a *App) postTuning(t tuning.Tuning) {
	ok := a.sim.Post(func(s *sim.Simulation) {
		if err := s.ApplyTuning(t); err != nil {
			a.log.Logf("tuning: %v", err)
			return
		}
		a.tuning = t
		a.scene.ApplyCamera(t.Camera)
		a.log.Log("tuning reloaded")
	})
	if !ok {
		a.log.Log("tuning: reload dropped, simulation busy")
	}
}

// load builds the simulation. On failure the HUD shows the error until Enter retries.
func (a *App) load() {
	a.loadFont()
	preset := a.prefs.Preset
	if _, ok := a.tuning.Preset(preset); !ok {
		a.log.Logf("preset %q not in tuning; using %s", preset, interact.DefaultPreset)
		preset = ""
	}
	err := a.sim.Load(sim.Options{
		Random: a.random,
		Picker: a.scene,
		Log:    a.log,
		Tuning: a.tuning,
		Preset: preset,
	})
	if err != nil {
		a.log.Logf("load failed: %v", err)
		a.hud.ShowError(err)
		return
	}
	a.hud.ShowRunning()
}

// loadFont loads the preferred HUD font once the window exists. A missing font keeps raylib's default.
func (a *App) loadFont() {
	if a.fontLoaded || a.prefs.Font == "" {
		return
	}
	if err := a.setFont(a.prefs.Font); err != nil {
		a.log.Logf("font: %v", err)
	}
	a.fontLoaded = true
}

func (a *App) setFont(name string) error {
	path, err := fonts.Resolve(fonts.BaseDirs(), name)
	if err != nil {
		return err
	}
	return a.loadFontFile(path)
}

func (a *App) loadFontFile(path string) error {
	if err := a.ui.LoadFont(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	a.term.SetFont(a.ui.Font())
	a.dbg.SetFont(a.ui.Font())
	return nil
}

// installFont fetches nameOrURL off the frame goroutine and switches to it on the next frame.
// pref is what gets saved to the preferences once the font is in place.
func (a *App) installFont(nameOrURL, pref string) {
	a.log.Logf("fetching font %s...", nameOrURL)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fontInstallTimeout)
		defer cancel()
		path, err := a.fonts.Install(ctx, nameOrURL)
		if err != nil {
			a.log.Logf("font: %v", err)
			return
		}
		ok := a.sim.Post(func(*sim.Simulation) {
			if err := a.loadFontFile(path); err != nil {
				a.log.Logf("font: %v", err)
				return
			}
			a.prefs.Font = pref
			a.savePrefs()
			a.log.Logf("font installed: %s", path)
		})
		if !ok {
			a.log.Log("font: installed but simulation busy; run font again")
		}
	}()
}

// do runs a named action and logs a failure.
func (a *App) do(action string) {
	if !a.sim.Loaded() {
		return
	}
	if err := a.sim.Controller.Do(action); err != nil {
		a.log.Log(err.Error())
	}
}

// applyPreset switches preset and saves it as the starting preset. Keys, HUD, console and
// director all come through here.
func (a *App) applyPreset(name string) error {
	if !a.sim.Loaded() {
		return errNotLoaded
	}
	if err := a.sim.Controller.ApplyPreset(name); err != nil {
		return err
	}
	a.prefs.Preset = name
	a.savePrefs()
	return nil
}

func (a *App) savePrefs() {
	if err := engineconfig.SaveTo(a.prefsPath, a.prefs); err != nil {
		a.log.Logf("save preferences: %v", err)
	}
}

// update handles input for the current screen. Called once per frame before draw.
func (a *App) update() {
	a.term.Update()
	switch a.hud.Mode() {
	case ui.ModeLoading:
		a.loadingFrames++
		if a.loadingFrames > 1 {
			a.load()
		}
		return
	case ui.ModeError:
		if !a.term.IsOpen() && retryPressed() {
			a.hud.ShowLoading()
			a.loadingFrames = 0
		}
		return
	}
	a.handleInput()
}

// draw runs one simulation frame (which renders the 3D scene), then the 2D overlays.
func (a *App) draw() {
	a.sim.Frame(a.scene)
	if a.sim.Loaded() {
		a.syncHUD()
	}
	a.hud.Draw()
	a.dbg.Draw()
	a.term.Draw()
}

func (a *App) syncHUD() {
	ctrl := a.sim.Controller
	presets := ctrl.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	a.hud.SetPresets(names, ctrl.ActivePreset())
	a.hud.SetStatus(fmt.Sprintf("%s   Preset: %s", ctrl.TiltStatus(), ctrl.ActivePreset()))

	part, ok := ctrl.LastTapped()
	if !ok || part.Body == nil {
		a.hud.Inspect(ui.Selection{}, false)
		return
	}
	a.hud.Inspect(ui.Selection{
		Name:     part.Label,
		Position: [3]float32(part.Body.Position),
		Velocity: [3]float32(part.Body.Velocity),
		Mass:     part.Body.Mass,
	}, true)
}

func (a *App) close() {
	a.scene.Unload()
	a.ui.Unload()
}
