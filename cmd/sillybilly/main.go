package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"silly-billy/internal/engineconfig"
	"silly-billy/internal/env"
	"silly-billy/internal/graphics"
	"silly-billy/internal/llm"
	"silly-billy/internal/logger"
	"silly-billy/internal/scene"
	"silly-billy/internal/tuning"
)

func main() {
	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	}
	prefs, _ := engineconfig.Load()
	tun, err := tuning.Load(tuning.TuningPath)
	if err != nil {
		log.Logf("%v; using defaults", err)
	}
	if _, statErr := os.Stat(tuning.TuningPath); errors.Is(statErr, os.ErrNotExist) {
		if err := tuning.Save(tuning.TuningPath, tun); err != nil {
			log.Logf("write default tuning: %v", err)
		}
	}

	app := newApp(log, prefs, tun, rand.New(rand.NewSource(time.Now().UnixNano())))
	app.connectDirector(llm.FromEnv(os.Getenv))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := tuning.Watch(ctx, tuning.TuningPath, app.postTuning, func(err error) {
			log.Logf("tuning: %v", err)
		})
		if err != nil {
			log.Logf("tuning watch: %v", err)
		}
	}()

	graphics.Run(graphics.Window{
		Title:      "Silly Billy",
		Width:      1280,
		Height:     720,
		Background: scene.Sky,
	}, app.update, app.draw, app.close)
}
