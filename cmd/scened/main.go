package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scenelink/scenelink/internal/core/assets"
	"github.com/scenelink/scenelink/internal/core/config"
	"github.com/scenelink/scenelink/internal/core/debug"
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/engine/enginemem"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/render"
	"github.com/scenelink/scenelink/internal/core/sim"
	"github.com/scenelink/scenelink/internal/core/world"
	"github.com/scenelink/scenelink/internal/injector"
	"github.com/scenelink/scenelink/internal/server"
	"github.com/scenelink/scenelink/pkg/vec"
)

// mover keeps an entity drifting so the dirty-bit paths have work every tick.
type mover struct {
	id       sim.SimID
	velocity vec.Vector3
	spin     float64
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "scenario file to run")
	listenAddr := flag.String("listen", "127.0.0.1:8090", "viewer listen address, empty to disable")
	fontPath := flag.String("font", "fonts/default.png", "font used for entity labels")
	rate := flag.Int("rate", 30, "ticks per second")
	seed := flag.Int64("seed", time.Now().UnixNano(), "footprint placement seed")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger := injector.ProvideLogger(parseLevel(*logLevel))

	scn, err := config.OpenScenario(*scenarioPath)
	if err != nil {
		logger.Error("Failed to load scenario", log.Err(err))
		os.Exit(1)
	}

	eng := enginemem.New()
	cache := assets.NewCache(eng, logger)
	lines := debug.NewLineSet(4096)

	w := world.New(world.Config{
		Scene: eng,
		Lines: lines,
		Log:   logger,
		Rand:  rand.New(rand.NewSource(*seed)),
	})
	defer w.Close()

	for _, ref := range scn.Templates {
		props, err := config.Load(ref.File)
		if err != nil {
			logger.Error("Failed to load template properties",
				log.String("kind", ref.Kind), log.String("file", ref.File), log.Err(err))
			os.Exit(1)
		}
		tpl, err := render.BuildTemplate(props, cache, logger)
		if err != nil {
			logger.Error("Failed to build template",
				log.String("kind", ref.Kind), log.Err(err))
			os.Exit(1)
		}
		defer tpl.Close()
		w.RegisterTemplate(ref.Kind, sim.EntityType(ref.Type), tpl)
	}

	cam := eng.AddCamera()
	cam.SetFunctionality(engine.FuncFirstPerson)
	w.SetActiveCamera(cam)
	if font, err := cache.Font(*fontPath); err != nil {
		logger.Warn("Labels disabled, font unavailable", log.String("path", *fontPath), log.Err(err))
	} else {
		w.SetFont(font)
	}

	var movers []mover
	for _, ent := range scn.Entities {
		id, err := w.AddEntity(ent.Kind, vecFrom(ent.Position), vecFrom(ent.Rotation))
		if err != nil {
			logger.Warn("Skipping entity", log.String("kind", ent.Kind), log.Err(err))
			continue
		}
		state, _ := w.State(id)
		if len(ent.Scale) == 3 {
			state.SetScale(vecFrom(ent.Scale))
		}
		if ent.Label != "" {
			state.SetLabel(ent.Label)
		}
		if len(ent.Velocity) == 3 || ent.Spin != 0 {
			movers = append(movers, mover{id: id, velocity: vecFrom(ent.Velocity), spin: ent.Spin})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var viewer *server.Viewer
	if *listenAddr != "" {
		cfg := server.DefaultConfig()
		cfg.ListenAddr = *listenAddr
		viewer = server.NewViewer(cfg, logger)
		if err := viewer.Start(ctx); err != nil {
			logger.Error("Failed to start viewer", log.Err(err))
			os.Exit(1)
		}
		defer func() { _ = viewer.Close() }()
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	dt := 1.0 / float64(*rate)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	logger.Info("Scenario running",
		log.String("name", scn.Name),
		log.Int("entities", w.Len()),
		log.Int("rate", *rate))

	for {
		select {
		case <-ticker.C:
			step(w, movers, dt)
			w.Tick(dt)
			if viewer != nil {
				_ = viewer.Publish(server.Frame{Snapshot: w.Snapshot(), Lines: lines.Drain()})
			}
		case <-stopCh:
			logger.Info("Shutting down")
			return
		}
	}
}

func step(w *world.World, movers []mover, dt float64) {
	for _, m := range movers {
		state, ok := w.State(m.id)
		if !ok {
			continue
		}
		state.SetPosition(state.Position().Add(m.velocity.Scale(dt)))
		if m.spin != 0 {
			rot := state.Rotation()
			rot.Z += m.spin * dt
			state.SetRotation(rot)
		}
	}
}

func vecFrom(v []float64) vec.Vector3 {
	if len(v) != 3 {
		return vec.Vector3{}
	}
	return vec.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
