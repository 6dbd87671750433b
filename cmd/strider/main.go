package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/strider/internal/camera"
	"github.com/Versifine/strider/internal/collision"
	"github.com/Versifine/strider/internal/config"
	"github.com/Versifine/strider/internal/debug"
	"github.com/Versifine/strider/internal/logger"
	"github.com/Versifine/strider/internal/sim"
)

const configPath = "configs/config.yaml"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world := buildWorld(cfg.World)
	actor := sim.New(world, cfg.Motion, mgl64.Vec3(cfg.World.Spawn))
	cam := camera.NewFollowCamera(cfg.Camera, world)
	cam.SetFollowTarget(actor)

	logger.L().Info("actor spawned", "pos", cfg.World.Spawn, "boxes", len(cfg.World.Boxes))

	go watchConfig(ctx, actor, cam)

	console := debug.NewConsole(actor, cam)
	if err := console.Start(ctx); err != nil {
		slog.Error("Console exited", "error", err)
		os.Exit(1)
	}
}

func buildWorld(wc config.WorldConfig) *collision.BoxWorld {
	boxes := make([]collision.Box, 0, len(wc.Boxes))
	for _, b := range wc.Boxes {
		boxes = append(boxes, collision.Box{
			Min: mgl64.Vec3(b.Min),
			Max: mgl64.Vec3(b.Max),
		})
	}
	return collision.NewBoxWorld(boxes)
}

// watchConfig reapplies tuning when the config file changes on disk. World
// geometry is not reloaded; that needs a restart.
func watchConfig(ctx context.Context, actor *sim.Actor, cam *camera.FollowCamera) {
	watcher, err := config.NewWatcher("configs")
	if err != nil {
		logger.L().Warn("config watch disabled", "error", err)
		return
	}
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			cfg, err := config.Load(path)
			if err != nil {
				logger.L().Warn("config reload failed", "path", path, "error", err)
				continue
			}
			actor.ApplyTuning(cfg.Motion)
			cam.SetTuning(cfg.Camera)
			logger.L().Info("tuning reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.L().Warn("config watch error", "error", err)
		}
	}
}
