package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"mini-vox/internal/config"
	"mini-vox/internal/game"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := log.New(os.Stderr, "[vox] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("config: %v", err)
		}
	}
	cfg.Apply()

	if err := glfw.Init(); err != nil {
		logger.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		logger.Fatalf("window: %v", err)
	}
	defer window.Destroy()

	logger.Printf("OpenGL %s", game.GLVersion())

	app, err := game.NewApp(window, cfg, logger)
	if err != nil {
		logger.Fatalf("init: %v", err)
	}
	defer app.Close()

	logger.Printf("chunks %v margin %d, render distance %d, generator %s",
		cfg.Chunk.Size, cfg.Chunk.Margin, cfg.Terrain.RenderDistance, cfg.Terrain.Generator)

	if err := app.Run(); err != nil {
		logger.Printf("stopped: %v", err)
	}
}
