package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"silly-billy/internal/commands"
	"silly-billy/internal/engineconfig"
	"silly-billy/internal/fonts"
	"silly-billy/internal/tuning"
)

var errNotLoaded = errors.New("still loading")

// showHide defines --show and --hide on fs and returns a getter for the chosen state.
func showHide(fs *flag.FlagSet) func() (bool, error) {
	show := fs.Bool("show", false, "show")
	hide := fs.Bool("hide", false, "hide")
	return func() (bool, error) {
		defer func() { *show, *hide = false, false }()
		if *show == *hide {
			return false, errors.New("use exactly one of --show or --hide")
		}
		return *show, nil
	}
}

// registerCommands adds the console commands. They run on the frame goroutine, either from the
// console or posted by the director.
func registerCommands(a *App) {
	for _, name := range actionOrder {
		a.reg.Register(name, "apply "+name, nil, func([]string) error {
			if !a.sim.Loaded() {
				return errNotLoaded
			}
			return a.sim.Controller.Do(name)
		})
	}

	presetFS := commands.NewFlagSet("preset")
	presetName := presetFS.String("name", "", "preset name")
	a.reg.Register("preset", "--name NAME switches gravity and damping", presetFS, func(args []string) error {
		name := *presetName
		*presetName = ""
		if name == "" && len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			return errors.New("preset: missing --name")
		}
		return a.applyPreset(name)
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsShown := showHide(fpsFS)
	a.reg.Register("fps", "--show|--hide the FPS counter", fpsFS, func([]string) error {
		on, err := fpsShown()
		if err != nil {
			return err
		}
		a.dbg.SetShowFPS(on)
		a.prefs.ShowFPS = on
		a.savePrefs()
		return nil
	})

	memFS := commands.NewFlagSet("memalloc")
	memShown := showHide(memFS)
	a.reg.Register("memalloc", "--show|--hide heap usage", memFS, func([]string) error {
		on, err := memShown()
		if err != nil {
			return err
		}
		a.dbg.SetShowMemAlloc(on)
		a.prefs.ShowMemAlloc = on
		a.savePrefs()
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	gridShown := showHide(gridFS)
	a.reg.Register("grid", "--show|--hide the ground grid", gridFS, func([]string) error {
		on, err := gridShown()
		if err != nil {
			return err
		}
		a.scene.SetGridVisible(on)
		a.prefs.GridVisible = on
		a.savePrefs()
		return nil
	})

	ballsFS := commands.NewFlagSet("balls")
	ballCount := ballsFS.Int("count", -1, "number of balls")
	a.reg.Register("balls", "--count N respawns the free balls", ballsFS, func([]string) error {
		n := *ballCount
		*ballCount = -1
		if n < 0 || n > tuning.MaxBalls {
			return fmt.Errorf("balls: --count must be 0..%d", tuning.MaxBalls)
		}
		if !a.sim.Loaded() {
			return errNotLoaded
		}
		a.sim.SpawnBalls(n)
		a.log.Logf("%d balls", n)
		return nil
	})

	a.reg.Register("model", "NAME sets the director's model", nil, func(args []string) error {
		if len(args) == 0 {
			if a.prefs.AIModel == "" {
				a.log.Log("model: provider default")
				return nil
			}
			a.log.Logf("model: %s", a.prefs.AIModel)
			return nil
		}
		a.prefs.AIModel = args[0]
		a.savePrefs()
		a.log.Logf("model set to %s", args[0])
		return nil
	})

	fontFS := commands.NewFlagSet("font")
	fontURL := fontFS.String("url", "", "font or zip URL to install")
	a.reg.Register("font", "NAME loads a HUD font, fetching it from Google Fonts if missing; --url URL installs a .ttf/.otf/.zip", fontFS, func(args []string) error {
		u := *fontURL
		*fontURL = ""
		if u != "" {
			a.installFont(u, fonts.FamilyFromURL(u))
			return nil
		}
		if len(args) == 0 {
			return errors.New("font: missing name")
		}
		name := strings.Join(args, " ")
		if err := a.setFont(name); err != nil {
			if !errors.Is(err, fonts.ErrNotFound) {
				return err
			}
			a.installFont(name, name)
			return nil
		}
		a.prefs.Font = name
		a.savePrefs()
		return nil
	})

	a.reg.Register("save", "writes preferences to "+a.prefsPath, nil, func([]string) error {
		if err := engineconfig.SaveTo(a.prefsPath, a.prefs); err != nil {
			return err
		}
		a.log.Logf("saved %s", a.prefsPath)
		return nil
	})
}
